package tweets

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
	ForeignKey: ErrUserNotFound,
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tweet repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tweets"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Create(ctx context.Context, ownerID uuid.UUID, cmd ContentCommand) (*Tweet, error) {
	cmd.Content = strings.TrimSpace(cmd.Content)
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Tweet, error) {
		id, err := repository.Scalar[uuid.UUID](
			ctx, tx,
			"INSERT INTO tweets (content, owner_id) VALUES ($1, $2) RETURNING id",
			cmd.Content, ownerID,
		)
		if err != nil {
			return nil, errMap.Map(err)
		}
		return r.find(ctx, tx, id)
	})
}

func (r *repo) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[Tweet], error) {
	page.Normalize(r.pagination)

	found, err := repository.Exists(ctx, r.db, "users", userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OwnerID", userID).
		WhereContains("Content", page.Query).
		TieBreak("ID", true)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.Paginate(ctx, r.db, qb, page, scanTweet)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return result, nil
}

func (r *repo) Update(ctx context.Context, ownerID, id uuid.UUID, cmd ContentCommand) (*Tweet, error) {
	cmd.Content = strings.TrimSpace(cmd.Content)
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Tweet, error) {
		if err := authorize(ctx, tx, ownerID, id); err != nil {
			return nil, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE tweets SET content = $2, updated_at = now() WHERE id = $1",
			id, cmd.Content,
		); err != nil {
			return nil, errMap.Map(err)
		}
		return r.find(ctx, tx, id)
	})
}

// Delete removes the tweet in one statement. When nothing matched, a second
// read tells a missing tweet apart from one owned by someone else.
func (r *repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM tweets WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete tweet: %w", err)
	}

	found, err := repository.Exists(ctx, r.db, "tweets", id)
	if err != nil {
		return fmt.Errorf("check tweet: %w", err)
	}
	if found {
		return ErrForbidden
	}
	return ErrNotFound
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Tweet, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, q, stmt, args, scanTweet)
	if err != nil {
		return nil, errMap.Map(err)
	}
	return &t, nil
}

func authorize(ctx context.Context, q repository.Querier, ownerID, id uuid.UUID) error {
	owner, err := repository.Scalar[uuid.UUID](ctx, q, "SELECT owner_id FROM tweets WHERE id = $1 FOR UPDATE", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load tweet: %w", err)
	}
	if owner != ownerID {
		return ErrForbidden
	}
	return nil
}
