package subscriptions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
)

type repo struct {
	db         *sql.DB
	recorder   Recorder
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a subscription repository implementing the System interface.
// recorder may be nil.
func New(db *sql.DB, recorder Recorder, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		recorder:   recorder,
		logger:     logger.With("system", "subscriptions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Toggle subscribes or unsubscribes in a single statement.
func (r *repo) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (State, error) {
	if subscriberID == channelID {
		return State{}, ErrSelf
	}

	var found, subscribed bool
	if err := r.db.QueryRowContext(ctx, toggleSQL, subscriberID, channelID).Scan(&found, &subscribed); err != nil {
		return State{}, fmt.Errorf("toggle subscription: %w", err)
	}
	if !found {
		return State{}, ErrChannelNotFound
	}

	if r.recorder != nil {
		r.recorder.RecordToggle("subscription", subscribed)
	}

	r.logger.Debug("subscription toggled", "subscriber", subscriberID, "channel", channelID, "subscribed", subscribed)
	return State{Subscribed: subscribed}, nil
}

func (r *repo) Subscribers(
	ctx context.Context,
	channelID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[Subscriber], error) {
	page.Normalize(r.pagination)

	if err := r.userExists(ctx, channelID, ErrChannelNotFound); err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(subscriberProjection, defaultSort).
		WhereEquals("s.channel_id", channelID).
		TieBreak("ID", true)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.Paginate(ctx, r.db, qb, page, scanSubscriber)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return result, nil
}

func (r *repo) Subscribed(
	ctx context.Context,
	callerID, subscriberID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[Subscribed], error) {
	page.Normalize(r.pagination)

	if err := r.userExists(ctx, subscriberID, ErrUserNotFound); err != nil {
		return nil, err
	}
	if callerID != subscriberID {
		return nil, ErrForbidden
	}

	qb := query.
		NewBuilder(channelProjection, defaultSort).
		WhereEquals("s.subscriber_id", subscriberID).
		TieBreak("ID", true)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.Paginate(ctx, r.db, qb, page, scanSubscribed)
	if err != nil {
		return nil, fmt.Errorf("list subscribed channels: %w", err)
	}
	return result, nil
}

func (r *repo) userExists(ctx context.Context, id uuid.UUID, missing error) error {
	found, err := repository.Exists(ctx, r.db, "users", id)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !found {
		return missing
	}
	return nil
}
