package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
)

// System defines the public contract for user domain operations.
// It also resolves authenticated subjects to identities for the auth gate.
type System interface {
	auth.Resolver

	Handler(uploads *media.Config, cookies auth.Cookies) *Handler

	Register(ctx context.Context, cmd RegisterCommand) (*Profile, error)
	Login(ctx context.Context, cmd LoginCommand) (*Session, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	Current(ctx context.Context, userID uuid.UUID) (*Profile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, cmd ChangePasswordCommand) error
	UpdateAccount(ctx context.Context, userID uuid.UUID, cmd UpdateAccountCommand) (*Profile, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar *media.Staged) (*Profile, error)
	UpdateCover(ctx context.Context, userID uuid.UUID, cover *media.Staged) (*Profile, error)

	Channel(ctx context.Context, viewerID uuid.UUID, username string) (*Channel, error)
	// WatchHistory lists what userID watched, most recent first. Videos other
	// owners have unpublished are left out.
	WatchHistory(
		ctx context.Context,
		userID uuid.UUID,
		page pagination.PageRequest,
	) (*pagination.PageResult[WatchedVideo], error)
}
