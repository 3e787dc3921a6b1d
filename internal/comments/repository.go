package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
	"github.com/JaimeStill/reel/pkg/validation"
)

var errMap = repository.ErrorMap{
	NotFound:   ErrNotFound,
	ForeignKey: ErrVideoNotFound,
}

// visibleVideoSQL reports whether video $1 exists and user $2 may see it.
const visibleVideoSQL = "SELECT EXISTS (SELECT 1 FROM videos WHERE id = $1 AND (is_published OR owner_id = $2))"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a comment repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "comments"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	viewerID, videoID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[Comment], error) {
	page.Normalize(r.pagination)

	found, err := repository.Scalar[bool](ctx, r.db, visibleVideoSQL, videoID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("check video: %w", err)
	}
	if !found {
		return nil, ErrVideoNotFound
	}

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("VideoID", videoID).
		WhereContains("Content", page.Query).
		TieBreak("ID", true)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.Paginate(ctx, r.db, qb, page, scanComment)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return result, nil
}

func (r *repo) Add(ctx context.Context, ownerID, videoID uuid.UUID, cmd ContentCommand) (*Comment, error) {
	cmd.Content = strings.TrimSpace(cmd.Content)
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Comment, error) {
		id, err := repository.Scalar[uuid.UUID](
			ctx, tx, `
			INSERT INTO comments (content, video_id, owner_id)
			SELECT $1, v.id, $3 FROM videos v
			WHERE v.id = $2 AND (v.is_published OR v.owner_id = $3)
			RETURNING id`,
			cmd.Content, videoID, ownerID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		if err != nil {
			return nil, errMap.Map(err)
		}
		return r.find(ctx, tx, id)
	})
}

func (r *repo) Update(ctx context.Context, ownerID, id uuid.UUID, cmd ContentCommand) (*Comment, error) {
	cmd.Content = strings.TrimSpace(cmd.Content)
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Comment, error) {
		if err := authorize(ctx, tx, ownerID, id); err != nil {
			return nil, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE comments SET content = $2, updated_at = now() WHERE id = $1",
			id, cmd.Content,
		); err != nil {
			return nil, errMap.Map(err)
		}
		return r.find(ctx, tx, id)
	})
}

func (r *repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := authorize(ctx, tx, ownerID, id); err != nil {
			return struct{}{}, err
		}

		if err := repository.ExecExpectOne(ctx, tx, "DELETE FROM comments WHERE id = $1", id); err != nil {
			return struct{}{}, errMap.Map(err)
		}
		return struct{}{}, nil
	})
	return err
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Comment, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, q, stmt, args, scanComment)
	if err != nil {
		return nil, errMap.Map(err)
	}
	return &c, nil
}

func authorize(ctx context.Context, q repository.Querier, ownerID, id uuid.UUID) error {
	owner, err := repository.Scalar[uuid.UUID](ctx, q, "SELECT owner_id FROM comments WHERE id = $1 FOR UPDATE", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load comment: %w", err)
	}
	if owner != ownerID {
		return ErrForbidden
	}
	return nil
}
