package likes

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/pagination"
)

// System defines the public contract for like operations.
type System interface {
	Handler() *Handler

	Toggle(ctx context.Context, userID uuid.UUID, kind Target, id uuid.UUID) (Status, error)
	Status(ctx context.Context, userID uuid.UUID, kind Target, id uuid.UUID) (Status, error)
	LikedVideos(ctx context.Context, userID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[LikedVideo], error)
}
