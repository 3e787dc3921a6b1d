package tweets

import (
	"github.com/JaimeStill/reel/internal/users"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
)

var projection = users.JoinOwner(
	query.
		NewProjectionMap("public", "tweets", "t").
		Project("id", "ID").
		Project("content", "Content").
		Project("owner_id", "OwnerID").
		Project("created_at", "CreatedAt").
		Project("updated_at", "UpdatedAt"),
	"o", "o.id = t.owner_id",
)

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanTweet(s repository.Scanner) (Tweet, error) {
	var (
		t     Tweet
		owner users.OwnerColumns
	)

	dest := []any{
		&t.ID,
		&t.Content,
		&t.OwnerID,
		&t.CreatedAt,
		&t.UpdatedAt,
	}

	if err := s.Scan(append(dest, owner.Dest()...)...); err != nil {
		return t, err
	}

	t.Owner = owner.Owner()
	return t, nil
}
