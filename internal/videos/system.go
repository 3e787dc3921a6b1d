package videos

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
)

// System defines the public contract for video operations.
type System interface {
	Handler(uploads *media.Config) *Handler

	List(ctx context.Context, filter Filter, page pagination.PageRequest) (*pagination.PageResult[Video], error)
	Channel(
		ctx context.Context,
		ownerID uuid.UUID,
		isPublished *bool,
		page pagination.PageRequest,
	) (*pagination.PageResult[Video], error)

	View(ctx context.Context, viewerID, id uuid.UUID) (*Video, error)
	Find(ctx context.Context, id uuid.UUID) (*Video, error)
	Publish(ctx context.Context, ownerID uuid.UUID, cmd PublishCommand) (*Video, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, cmd UpdateCommand) (*Video, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	TogglePublish(ctx context.Context, ownerID, id uuid.UUID) (*Video, error)
}
