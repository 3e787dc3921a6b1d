package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/videos"
	"github.com/JaimeStill/reel/pkg/pagination"
)

// System defines the public contract for dashboard operations.
type System interface {
	Handler() *Handler

	Stats(ctx context.Context, channelID uuid.UUID) (*Stats, error)
	Videos(
		ctx context.Context,
		channelID uuid.UUID,
		isPublished *bool,
		page pagination.PageRequest,
	) (*pagination.PageResult[videos.Video], error)
}
