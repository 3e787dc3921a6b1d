// Package users implements accounts, sessions, channel profiles, and watch history.
// It also supplies the owner projection embedded by every listing that references a user.
package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/media"
)

// Profile is the safe view of a user. Credential fields are never included.
type Profile struct {
	ID         uuid.UUID `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage *string   `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Identity converts the profile to an auth identity.
func (p Profile) Identity() auth.Identity {
	return auth.Identity{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		FullName: p.FullName,
		Avatar:   p.Avatar,
	}
}

// Channel is a user's public channel profile as seen by a viewer.
type Channel struct {
	ID                        uuid.UUID `json:"_id"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	FullName                  string    `json:"fullName"`
	Avatar                    string    `json:"avatar"`
	CoverImage                *string   `json:"coverImage"`
	CreatedAt                 time.Time `json:"createdAt"`
	SubscribersCount          int       `json:"subscribersCount"`
	ChannelsSubscribedToCount int       `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}

// Session is the result of a login or token refresh.
type Session struct {
	User         Profile `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

// WatchedVideo is one watch history entry with its owner enriched.
type WatchedVideo struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	WatchedAt   time.Time `json:"watchedAt"`
	Owner       *Owner    `json:"owner"`
}

// RegisterCommand carries the fields of a registration form.
// Avatar is required; Cover is optional.
type RegisterCommand struct {
	FullName string        `json:"fullName" validate:"notblank,max=120"`
	Email    string        `json:"email" validate:"required,email"`
	Username string        `json:"username" validate:"notblank,min=3,max=40,handle"`
	Password string        `json:"password" validate:"required,min=8,max=72"`
	Avatar   *media.Staged `json:"-"`
	Cover    *media.Staged `json:"-"`
}

// LoginCommand authenticates by username or email.
type LoginCommand struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordCommand replaces the caller's password.
type ChangePasswordCommand struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// UpdateAccountCommand replaces the caller's name and email.
type UpdateAccountCommand struct {
	FullName string `json:"fullName" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
}

// RefreshCommand carries a refresh token supplied in the request body.
type RefreshCommand struct {
	RefreshToken string `json:"refreshToken"`
}
