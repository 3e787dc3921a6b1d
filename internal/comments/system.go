package comments

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/pagination"
)

// System defines the public contract for comment operations.
type System interface {
	Handler() *Handler

	// List pages the comments on videoID. Another owner's unpublished video
	// reads as ErrVideoNotFound, as it does for Add.
	List(ctx context.Context, viewerID, videoID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[Comment], error)
	Add(ctx context.Context, ownerID, videoID uuid.UUID, cmd ContentCommand) (*Comment, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, cmd ContentCommand) (*Comment, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
