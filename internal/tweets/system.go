package tweets

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/pagination"
)

// System defines the public contract for tweet operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, ownerID uuid.UUID, cmd ContentCommand) (*Tweet, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[Tweet], error)
	Update(ctx context.Context, ownerID, id uuid.UUID, cmd ContentCommand) (*Tweet, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
