package comments

import (
	"github.com/JaimeStill/reel/internal/users"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
)

var projection = users.JoinOwner(
	query.
		NewProjectionMap("public", "comments", "c").
		Project("id", "ID").
		Project("content", "Content").
		Project("video_id", "VideoID").
		Project("owner_id", "OwnerID").
		Project("created_at", "CreatedAt").
		Project("updated_at", "UpdatedAt"),
	"o", "o.id = c.owner_id",
)

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanComment(s repository.Scanner) (Comment, error) {
	var (
		c     Comment
		owner users.OwnerColumns
	)

	dest := []any{
		&c.ID,
		&c.Content,
		&c.VideoID,
		&c.OwnerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	}

	if err := s.Scan(append(dest, owner.Dest()...)...); err != nil {
		return c, err
	}

	c.Owner = owner.Owner()
	return c, nil
}
