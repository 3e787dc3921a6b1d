package subscriptions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/pagination"
)

// System defines the public contract for subscription operations.
type System interface {
	Handler() *Handler

	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (State, error)
	Subscribers(
		ctx context.Context,
		channelID uuid.UUID,
		page pagination.PageRequest,
	) (*pagination.PageResult[Subscriber], error)
	Subscribed(
		ctx context.Context,
		callerID, subscriberID uuid.UUID,
		page pagination.PageRequest,
	) (*pagination.PageResult[Subscribed], error)
}
