package likes

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

// New creates a like repository implementing the System interface.
// recorder may be nil.
func New(db *sql.DB, recorder Recorder, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		recorder:   recorder,
		logger:     logger.With("system", "likes"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Toggle flips the like between userID and the target in one round trip.
// Two concurrent toggles by the same user may both delete or both insert;
// the partial unique indexes keep at most one row either way.
func (r *repo) Toggle(ctx context.Context, userID uuid.UUID, kind Target, id uuid.UUID) (Status, error) {
	t, ok := targets[kind]
	if !ok {
		return Status{}, ErrUnknownTarget
	}

	var found, liked bool
	if err := r.db.QueryRowContext(ctx, toggleSQL(t), userID, id).Scan(&found, &liked); err != nil {
		return Status{}, fmt.Errorf("toggle %s like: %w", kind, err)
	}
	if !found {
		return Status{}, ErrNotFound
	}

	if r.recorder != nil {
		r.recorder.RecordToggle(string(kind)+"_like", liked)
	}

	r.logger.Debug("like toggled", "target", kind, "id", id, "user", userID, "liked", liked)
	return Status{IsLiked: liked}, nil
}

func (r *repo) Status(ctx context.Context, userID uuid.UUID, kind Target, id uuid.UUID) (Status, error) {
	t, ok := targets[kind]
	if !ok {
		return Status{}, ErrUnknownTarget
	}

	var found, liked bool
	if err := r.db.QueryRowContext(ctx, statusSQL(t), userID, id).Scan(&found, &liked); err != nil {
		return Status{}, fmt.Errorf("%s like status: %w", kind, err)
	}
	if !found {
		return Status{}, ErrNotFound
	}
	return Status{IsLiked: liked}, nil
}

// LikedVideos lists the published videos userID likes, most recent like first.
// The count and the page share the same join and predicates.
func (r *repo) LikedVideos(
	ctx context.Context,
	userID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[LikedVideo], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(likedProjection, likedSort).
		WhereEquals("l.liked_by", userID).
		WhereNotNull("l.video_id").
		WhereEquals("IsPublished", true).
		WhereSearch(page.Query, "Title", "Description").
		TieBreak("ID", true)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.Paginate(ctx, r.db, qb, page, scanLiked)
	if err != nil {
		return nil, fmt.Errorf("liked videos: %w", err)
	}
	return result, nil
}
