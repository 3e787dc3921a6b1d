package videos

import (
	"github.com/JaimeStill/reel/internal/users"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
)

// Join adds the videos table under alias on the given condition, followed by
// its owner, and projects every Video field. Scan reads the projected columns.
func Join(p *query.ProjectionMap, alias, ownerAlias, joinType, on string) *query.ProjectionMap {
	return project(p.Join("public", "videos", alias, joinType, on), alias, ownerAlias)
}

func project(p *query.ProjectionMap, alias, ownerAlias string) *query.ProjectionMap {
	p.
		Project("id", "ID").
		Project("title", "Title").
		Project("description", "Description").
		Project("video_file", "VideoFile").
		Project("thumbnail", "Thumbnail").
		Project("duration", "Duration").
		Project("views", "Views").
		Project("is_published", "IsPublished").
		Project("owner_id", "OwnerID").
		Project("created_at", "CreatedAt").
		Project("updated_at", "UpdatedAt")

	return users.JoinOwner(p, ownerAlias, ownerAlias+".id = "+alias+".owner_id")
}

var projection = project(query.NewProjectionMap("public", "videos", "v"), "v", "o")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Scan reads a Video projected by Join. lead receives any columns projected
// before the join.
func Scan(s repository.Scanner, lead ...any) (Video, error) {
	var (
		v     Video
		owner users.OwnerColumns
	)

	dest := append(lead,
		&v.ID,
		&v.Title,
		&v.Description,
		&v.VideoFile,
		&v.Thumbnail,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.OwnerID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)

	if err := s.Scan(append(dest, owner.Dest()...)...); err != nil {
		return v, err
	}

	v.Owner = owner.Owner()
	return v, nil
}

func scanVideo(s repository.Scanner) (Video, error) {
	return Scan(s)
}
