package videos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
	"github.com/JaimeStill/reel/pkg/storage"
	"github.com/JaimeStill/reel/pkg/validation"
)

var errMap = repository.ErrorMap{
	NotFound:   ErrNotFound,
	ForeignKey: ErrNotFound,
}

type repo struct {
	db         *sql.DB
	store      storage.System
	prober     media.Prober
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a video repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	prober media.Prober,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		store:      store,
		prober:     prober,
		logger:     logger.With("system", "videos"),
		pagination: pagination,
	}
}

func (r *repo) Handler(uploads *media.Config) *Handler {
	return NewHandler(r, r.logger, r.pagination, uploads)
}

func (r *repo) List(
	ctx context.Context,
	filter Filter,
	page pagination.PageRequest,
) (*pagination.PageResult[Video], error) {
	published := true
	filter.IsPublished = &published
	return r.page(ctx, filter, page)
}

func (r *repo) Channel(
	ctx context.Context,
	ownerID uuid.UUID,
	isPublished *bool,
	page pagination.PageRequest,
) (*pagination.PageResult[Video], error) {
	return r.page(ctx, Filter{OwnerID: &ownerID, IsPublished: isPublished}, page)
}

func (r *repo) page(
	ctx context.Context,
	filter Filter,
	page pagination.PageRequest,
) (*pagination.PageResult[Video], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("IsPublished", filter.IsPublished).
		WhereEquals("OwnerID", filter.OwnerID).
		WhereSearch(page.Query, "Title", "Description").
		TieBreak("ID", true)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.Paginate(ctx, r.db, qb, page, scanVideo)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Video, error) {
	return r.find(ctx, r.db, id)
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Video, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, q, stmt, args, scanVideo)
	if err != nil {
		return nil, errMap.Map(err)
	}
	return &v, nil
}

// View counts one view and records the video in the viewer's watch history.
// Drafts are visible only to their owner.
func (r *repo) View(ctx context.Context, viewerID, id uuid.UUID) (*Video, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Video, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE videos SET views = views + 1 WHERE id = $1 AND (is_published OR owner_id = $2)",
			id, viewerID,
		)
		if err != nil {
			return nil, errMap.Map(err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO watch_history (user_id, video_id) VALUES ($1, $2)
			ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()`,
			viewerID, id,
		); err != nil {
			return nil, fmt.Errorf("record watch history: %w", err)
		}

		return r.find(ctx, tx, id)
	})
}

func (r *repo) Publish(ctx context.Context, ownerID uuid.UUID, cmd PublishCommand) (*Video, error) {
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Description = strings.TrimSpace(cmd.Description)

	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	if cmd.Video == nil || cmd.Thumbnail == nil {
		return nil, ErrFilesRequired
	}

	published := true
	if cmd.IsPublished != nil {
		published = *cmd.IsPublished
	}

	duration, err := r.prober.Duration(ctx, cmd.Video.Path)
	if err != nil {
		r.logger.Warn("video duration probe failed", "file", cmd.Video.Filename, "error", err)
		duration = 0
	}

	id := uuid.New()
	uploads := media.NewUploads(r.store)

	videoURL, err := uploads.Put(ctx, media.ObjectKey("videos", ownerID, cmd.Video), cmd.Video)
	if err != nil {
		return nil, fmt.Errorf("upload video file: %w", err)
	}

	thumbURL, err := uploads.Put(ctx, media.ObjectKey("thumbnails", ownerID, cmd.Thumbnail), cmd.Thumbnail)
	if err != nil {
		uploads.Rollback(context.WithoutCancel(ctx), r.logger)
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Video, error) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO videos (id, owner_id, title, description, video_file, thumbnail, duration, is_published)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, ownerID, cmd.Title, cmd.Description, videoURL, thumbURL, duration, published,
		); err != nil {
			return nil, errMap.Map(err)
		}
		return r.find(ctx, tx, id)
	})
	if err != nil {
		uploads.Rollback(context.WithoutCancel(ctx), r.logger)
		return nil, err
	}

	r.logger.Info("video published", "id", id, "owner", ownerID, "published", published)
	return v, nil
}

func (r *repo) Update(ctx context.Context, ownerID, id uuid.UUID, cmd UpdateCommand) (*Video, error) {
	if cmd.Title != nil {
		t := strings.TrimSpace(*cmd.Title)
		cmd.Title = &t
	}
	if cmd.Description != nil {
		d := strings.TrimSpace(*cmd.Description)
		cmd.Description = &d
	}

	if cmd.empty() {
		return nil, ErrNothingToUpdate
	}
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	current, err := r.authorize(ctx, r.db, ownerID, id)
	if err != nil {
		return nil, err
	}

	uploads := media.NewUploads(r.store)

	var thumbURL *string
	if cmd.Thumbnail != nil {
		url, err := uploads.Put(ctx, media.ObjectKey("thumbnails", ownerID, cmd.Thumbnail), cmd.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
		thumbURL = &url
	}

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Video, error) {
		err := repository.ExecExpectOne(ctx, tx, `
			UPDATE videos SET
				title = COALESCE($3, title),
				description = COALESCE($4, description),
				thumbnail = COALESCE($5, thumbnail),
				updated_at = now()
			WHERE id = $1 AND owner_id = $2`,
			id, ownerID, cmd.Title, cmd.Description, thumbURL,
		)
		if err != nil {
			return nil, errMap.Map(err)
		}
		return r.find(ctx, tx, id)
	})
	if err != nil {
		uploads.Rollback(context.WithoutCancel(ctx), r.logger)
		return nil, err
	}

	if thumbURL != nil {
		storage.Release(context.WithoutCancel(ctx), r.store, r.logger, current.Thumbnail)
	}

	return v, nil
}

// Delete removes the video and every watch history entry that references it,
// then releases its media. Likes and comments cascade with the row.
func (r *repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	current, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*stored, error) {
		current, err := r.authorize(ctx, tx, ownerID, id)
		if err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM watch_history WHERE video_id = $1", id); err != nil {
			return nil, fmt.Errorf("clear watch history: %w", err)
		}

		if err := repository.ExecExpectOne(ctx, tx, "DELETE FROM videos WHERE id = $1", id); err != nil {
			return nil, errMap.Map(err)
		}
		return current, nil
	})
	if err != nil {
		return err
	}

	storage.Release(context.WithoutCancel(ctx), r.store, r.logger, current.VideoFile, current.Thumbnail)

	r.logger.Info("video deleted", "id", id, "owner", ownerID)
	return nil
}

func (r *repo) TogglePublish(ctx context.Context, ownerID, id uuid.UUID) (*Video, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Video, error) {
		if _, err := r.authorize(ctx, tx, ownerID, id); err != nil {
			return nil, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE videos SET is_published = NOT is_published, updated_at = now() WHERE id = $1",
			id,
		); err != nil {
			return nil, errMap.Map(err)
		}

		return r.find(ctx, tx, id)
	})
}

type stored struct {
	OwnerID   uuid.UUID
	VideoFile string
	Thumbnail string
}

// authorize locks the video row and confirms ownerID owns it.
func (r *repo) authorize(ctx context.Context, q repository.Querier, ownerID, id uuid.UUID) (*stored, error) {
	var s stored
	err := q.QueryRowContext(
		ctx,
		"SELECT owner_id, video_file, thumbnail FROM videos WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&s.OwnerID, &s.VideoFile, &s.Thumbnail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}

	if s.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return &s, nil
}
