package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
	"github.com/JaimeStill/reel/pkg/storage"
	"github.com/JaimeStill/reel/pkg/validation"
)

var errMap = repository.ErrorMap{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
}

type repo struct {
	db         *sql.DB
	store      storage.System
	tokens     *auth.Tokens
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a user repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	tokens *auth.Tokens,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		store:      store,
		tokens:     tokens,
		logger:     logger.With("system", "users"),
		pagination: pagination,
	}
}

func (r *repo) Handler(uploads *media.Config, cookies auth.Cookies) *Handler {
	return NewHandler(r, r.logger, r.pagination, uploads, cookies)
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*Profile, error) {
	cmd.FullName = strings.TrimSpace(cmd.FullName)
	cmd.Email = normalize(cmd.Email)
	cmd.Username = normalize(cmd.Username)

	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	if cmd.Avatar == nil {
		return nil, ErrAvatarRequired
	}

	taken, err := repository.Scalar[bool](
		ctx, r.db,
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		cmd.Username, cmd.Email,
	)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if taken {
		return nil, ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id := uuid.New()
	uploads := media.NewUploads(r.store)

	avatarURL, err := uploads.Put(ctx, media.ObjectKey("avatars", id, cmd.Avatar), cmd.Avatar)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	var coverURL *string
	if cmd.Cover != nil {
		url, err := uploads.Put(ctx, media.ObjectKey("covers", id, cmd.Cover), cmd.Cover)
		if err != nil {
			uploads.Rollback(context.WithoutCancel(ctx), r.logger)
			return nil, fmt.Errorf("upload cover image: %w", err)
		}
		coverURL = &url
	}

	q := `
		INSERT INTO users (id, username, email, full_name, avatar, cover_image, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + profileColumns

	p, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{id, cmd.Username, cmd.Email, cmd.FullName, avatarURL, coverURL, string(hash)},
		scanProfile,
	)
	if err != nil {
		uploads.Rollback(context.WithoutCancel(ctx), r.logger)
		return nil, errMap.Map(err)
	}

	r.logger.Info("user registered", "id", p.ID, "username", p.Username)
	return &p, nil
}

func (r *repo) Login(ctx context.Context, cmd LoginCommand) (*Session, error) {
	cmd.Username = normalize(cmd.Username)
	cmd.Email = normalize(cmd.Email)

	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	q := "SELECT " + profileColumns + ", password_hash, refresh_token FROM users WHERE username = $1 OR email = $2"
	c, err := repository.QueryOne(ctx, r.db, q, []any{cmd.Username, cmd.Email}, scanCredentials)
	if err != nil {
		return nil, errMap.Map(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := r.issue(c.Profile)
	if err != nil {
		return nil, err
	}

	if err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE users SET refresh_token = $2 WHERE id = $1",
		c.ID, session.RefreshToken,
	); err != nil {
		return nil, errMap.Map(err)
	}

	r.logger.Info("user logged in", "id", c.ID)
	return session, nil
}

func (r *repo) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE users SET refresh_token = NULL WHERE id = $1",
		userID,
	); err != nil {
		return errMap.Map(err)
	}
	return nil
}

// Refresh rotates the session. The stored token is swapped only if it still
// matches the presented one, so a refresh token is usable exactly once.
func (r *repo) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, auth.ErrUnauthenticated
	}

	userID, err := r.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := r.Current(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	session, err := r.issue(*profile)
	if err != nil {
		return nil, err
	}

	err = repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE users SET refresh_token = $3 WHERE id = $1 AND refresh_token = $2",
		userID, refreshToken, session.RefreshToken,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidRefresh
	}
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return session, nil
}

func (r *repo) Current(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	q, args := query.NewBuilder(profileProjection).BuildSingle("ID", userID)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, errMap.Map(err)
	}
	return &p, nil
}

func (r *repo) ChangePassword(ctx context.Context, userID uuid.UUID, cmd ChangePasswordCommand) error {
	if err := validation.Struct(cmd); err != nil {
		return err
	}

	hash, err := repository.Scalar[string](ctx, r.db, "SELECT password_hash FROM users WHERE id = $1", userID)
	if err != nil {
		return errMap.Map(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(cmd.OldPassword)); err != nil {
		return ErrInvalidPassword
	}

	next, err := bcrypt.GenerateFromPassword([]byte(cmd.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1",
		userID, string(next),
	); err != nil {
		return errMap.Map(err)
	}

	r.logger.Info("password changed", "id", userID)
	return nil
}

func (r *repo) UpdateAccount(ctx context.Context, userID uuid.UUID, cmd UpdateAccountCommand) (*Profile, error) {
	cmd.FullName = strings.TrimSpace(cmd.FullName)
	cmd.Email = normalize(cmd.Email)

	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	q := `
		UPDATE users SET full_name = $2, email = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	p, err := repository.QueryOne(ctx, r.db, q, []any{userID, cmd.FullName, cmd.Email}, scanProfile)
	if err != nil {
		return nil, errMap.Map(err)
	}
	return &p, nil
}

func (r *repo) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar *media.Staged) (*Profile, error) {
	if avatar == nil {
		return nil, ErrAvatarRequired
	}
	return r.replaceImage(ctx, userID, "avatar", "avatars", avatar)
}

func (r *repo) UpdateCover(ctx context.Context, userID uuid.UUID, cover *media.Staged) (*Profile, error) {
	if cover == nil {
		return nil, ErrCoverRequired
	}
	return r.replaceImage(ctx, userID, "cover_image", "covers", cover)
}

// replaceImage uploads staged, points column at it, then deletes the previous object.
// column must be a trusted identifier.
func (r *repo) replaceImage(
	ctx context.Context,
	userID uuid.UUID,
	column, kind string,
	staged *media.Staged,
) (*Profile, error) {
	previous, err := repository.Scalar[*string](ctx, r.db, "SELECT "+column+" FROM users WHERE id = $1", userID)
	if err != nil {
		return nil, errMap.Map(err)
	}

	uploads := media.NewUploads(r.store)
	url, err := uploads.Put(ctx, media.ObjectKey(kind, userID, staged), staged)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", column, err)
	}

	q := "UPDATE users SET " + column + " = $2, updated_at = now() WHERE id = $1 RETURNING " + profileColumns

	p, err := repository.QueryOne(ctx, r.db, q, []any{userID, url}, scanProfile)
	if err != nil {
		uploads.Rollback(context.WithoutCancel(ctx), r.logger)
		return nil, errMap.Map(err)
	}

	if previous != nil {
		storage.Release(context.WithoutCancel(ctx), r.store, r.logger, *previous)
	}

	return &p, nil
}

func (r *repo) Channel(ctx context.Context, viewerID uuid.UUID, username string) (*Channel, error) {
	username = normalize(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	q := `
		SELECT
			u.id, u.username, u.email, u.full_name, u.avatar, u.cover_image, u.created_at,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2)
		FROM users u
		WHERE u.username = $1`

	c, err := repository.QueryOne(ctx, r.db, q, []any{username, viewerID}, scanChannel)
	if err != nil {
		return nil, errMap.Map(err)
	}
	return &c, nil
}

func (r *repo) WatchHistory(
	ctx context.Context,
	userID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[WatchedVideo], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(historyProjection, historySort).
		WhereEquals("w.user_id", userID).
		Where("(v.is_published OR v.owner_id = ?)", userID).
		TieBreak("ID", true)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.Paginate(ctx, r.db, qb, page, scanWatched)
	if err != nil {
		return nil, fmt.Errorf("watch history: %w", err)
	}
	return result, nil
}

func (r *repo) ResolveIdentity(ctx context.Context, id uuid.UUID) (auth.Identity, error) {
	p, err := r.Current(ctx, id)
	if err != nil {
		return auth.Identity{}, err
	}
	return p.Identity(), nil
}

func (r *repo) ResolveEmail(ctx context.Context, email string) (auth.Identity, error) {
	q, args := query.
		NewBuilder(profileProjection).
		WhereEquals("Email", normalize(email)).
		BuildFirst()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return auth.Identity{}, errMap.Map(err)
	}
	return p.Identity(), nil
}

func (r *repo) issue(p Profile) (*Session, error) {
	access, err := r.tokens.IssueAccess(p.Identity())
	if err != nil {
		return nil, err
	}

	refresh, err := r.tokens.IssueRefresh(p.ID)
	if err != nil {
		return nil, err
	}

	return &Session{User: p, AccessToken: access, RefreshToken: refresh}, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
