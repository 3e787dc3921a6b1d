package api

import (
	"github.com/JaimeStill/reel/internal/comments"
	"github.com/JaimeStill/reel/internal/dashboard"
	"github.com/JaimeStill/reel/internal/likes"
	"github.com/JaimeStill/reel/internal/subscriptions"
	"github.com/JaimeStill/reel/internal/tweets"
	"github.com/JaimeStill/reel/internal/users"
	"github.com/JaimeStill/reel/internal/videos"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Users         users.System
	Videos        videos.System
	Comments      comments.System
	Likes         likes.System
	Subscriptions subscriptions.System
	Tweets        tweets.System
	Dashboard     dashboard.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	usersSystem := users.New(
		db,
		runtime.Storage,
		runtime.Tokens,
		runtime.Logger,
		runtime.Pagination,
	)

	videosSystem := videos.New(
		db,
		runtime.Storage,
		runtime.Prober,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Users:         usersSystem,
		Videos:        videosSystem,
		Comments:      comments.New(db, runtime.Logger, runtime.Pagination),
		Likes:         likes.New(db, runtime.Metrics, runtime.Logger, runtime.Pagination),
		Subscriptions: subscriptions.New(db, runtime.Metrics, runtime.Logger, runtime.Pagination),
		Tweets:        tweets.New(db, runtime.Logger, runtime.Pagination),
		Dashboard: dashboard.New(
			db,
			videosSystem,
			runtime.Cache,
			runtime.StatsTTL,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
