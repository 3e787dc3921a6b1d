package users

import (
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
)

var profileProjection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("full_name", "FullName").
	Project("avatar", "Avatar").
	Project("cover_image", "CoverImage").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var historyProjection = JoinOwner(
	query.
		NewProjectionMap("public", "watch_history", "w").
		Project("watched_at", "WatchedAt").
		Join("public", "videos", "v", "JOIN", "v.id = w.video_id").
		Project("id", "ID").
		Project("title", "Title").
		Project("description", "Description").
		Project("video_file", "VideoFile").
		Project("thumbnail", "Thumbnail").
		Project("duration", "Duration").
		Project("views", "Views").
		Project("is_published", "IsPublished").
		Project("created_at", "CreatedAt"),
	"o", "o.id = v.owner_id",
)

var historySort = query.SortField{
	Field:      "WatchedAt",
	Descending: true,
}

const profileColumns = "id, username, email, full_name, avatar, cover_image, created_at, updated_at"

func scanProfile(s repository.Scanner) (Profile, error) {
	var p Profile
	err := s.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.FullName,
		&p.Avatar,
		&p.CoverImage,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type credentials struct {
	Profile
	PasswordHash string
	RefreshToken *string
}

func scanCredentials(s repository.Scanner) (credentials, error) {
	var c credentials
	err := s.Scan(
		&c.ID,
		&c.Username,
		&c.Email,
		&c.FullName,
		&c.Avatar,
		&c.CoverImage,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.PasswordHash,
		&c.RefreshToken,
	)
	return c, err
}

func scanChannel(s repository.Scanner) (Channel, error) {
	var c Channel
	err := s.Scan(
		&c.ID,
		&c.Username,
		&c.Email,
		&c.FullName,
		&c.Avatar,
		&c.CoverImage,
		&c.CreatedAt,
		&c.SubscribersCount,
		&c.ChannelsSubscribedToCount,
		&c.IsSubscribed,
	)
	return c, err
}

func scanWatched(s repository.Scanner) (WatchedVideo, error) {
	var (
		w     WatchedVideo
		owner OwnerColumns
	)

	dest := []any{
		&w.WatchedAt,
		&w.ID,
		&w.Title,
		&w.Description,
		&w.VideoFile,
		&w.Thumbnail,
		&w.Duration,
		&w.Views,
		&w.IsPublished,
		&w.CreatedAt,
	}

	if err := s.Scan(append(dest, owner.Dest()...)...); err != nil {
		return w, err
	}

	w.Owner = owner.Owner()
	return w, nil
}
