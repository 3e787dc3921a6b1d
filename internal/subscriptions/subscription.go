// Package subscriptions implements channel subscriptions between users.
package subscriptions

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/users"
)

// Subscriber is one subscription seen from the channel side.
type Subscriber struct {
	ID         uuid.UUID    `json:"_id"`
	Subscriber *users.Owner `json:"subscriber"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Subscribed is one subscription seen from the subscriber side.
type Subscribed struct {
	ID        uuid.UUID    `json:"_id"`
	Channel   *users.Owner `json:"channel"`
	CreatedAt time.Time    `json:"createdAt"`
}

// State is the result of a toggle.
type State struct {
	Subscribed bool `json:"subscribed"`
}

// Recorder receives toggle outcomes.
type Recorder interface {
	RecordToggle(kind string, state bool)
}
