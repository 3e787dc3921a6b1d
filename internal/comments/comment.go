// Package comments implements discussion threads attached to videos.
package comments

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/users"
)

// Comment is a video comment with its author enriched.
type Comment struct {
	ID        uuid.UUID    `json:"_id"`
	Content   string       `json:"content"`
	VideoID   uuid.UUID    `json:"video"`
	OwnerID   uuid.UUID    `json:"ownerId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Owner     *users.Owner `json:"owner"`
}

// ContentCommand carries the text of a new or edited comment.
type ContentCommand struct {
	Content string `json:"content" validate:"notblank,max=2000"`
}
