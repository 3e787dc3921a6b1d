// Package videos implements video publishing, the public listing, and viewing.
package videos

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/users"
	"github.com/JaimeStill/reel/pkg/media"
)

// Video is a published or draft video with its owner enriched.
type Video struct {
	ID          uuid.UUID    `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	OwnerID     uuid.UUID    `json:"ownerId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Owner       *users.Owner `json:"owner"`
}

// Filter narrows a video listing.
type Filter struct {
	OwnerID     *uuid.UUID
	IsPublished *bool
}

// PublishCommand carries the fields of a new video. Video and Thumbnail are
// staged uploads; IsPublished defaults to true when nil.
type PublishCommand struct {
	Title       string `validate:"notblank,max=200"`
	Description string `validate:"notblank,max=5000"`
	IsPublished *bool
	Video       *media.Staged
	Thumbnail   *media.Staged
}

// UpdateCommand replaces any subset of title, description, and thumbnail.
type UpdateCommand struct {
	Title       *string `validate:"omitempty,notblank,max=200"`
	Description *string `validate:"omitempty,notblank,max=5000"`
	Thumbnail   *media.Staged
}

func (c UpdateCommand) empty() bool {
	return c.Title == nil && c.Description == nil && c.Thumbnail == nil
}
