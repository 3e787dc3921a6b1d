// Package tweets implements short text posts published on a user's channel.
package tweets

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/users"
)

// Tweet is a short post with its author enriched.
type Tweet struct {
	ID        uuid.UUID    `json:"_id"`
	Content   string       `json:"content"`
	OwnerID   uuid.UUID    `json:"ownerId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Owner     *users.Owner `json:"owner"`
}

// ContentCommand carries the text of a new or edited tweet.
type ContentCommand struct {
	Content string `json:"content" validate:"notblank,max=280"`
}
