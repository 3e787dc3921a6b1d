package subscriptions

import (
	"github.com/JaimeStill/reel/internal/users"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
)

var subscriberProjection = users.JoinOwner(
	query.
		NewProjectionMap("public", "subscriptions", "s").
		Project("id", "ID").
		Project("created_at", "CreatedAt"),
	"o", "o.id = s.subscriber_id",
)

var channelProjection = users.JoinOwner(
	query.
		NewProjectionMap("public", "subscriptions", "s").
		Project("id", "ID").
		Project("created_at", "CreatedAt"),
	"o", "o.id = s.channel_id",
)

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanSubscriber(s repository.Scanner) (Subscriber, error) {
	var (
		sub   Subscriber
		owner users.OwnerColumns
	)
	if err := s.Scan(append([]any{&sub.ID, &sub.CreatedAt}, owner.Dest()...)...); err != nil {
		return sub, err
	}
	sub.Subscriber = owner.Owner()
	return sub, nil
}

func scanSubscribed(s repository.Scanner) (Subscribed, error) {
	var (
		sub   Subscribed
		owner users.OwnerColumns
	)
	if err := s.Scan(append([]any{&sub.ID, &sub.CreatedAt}, owner.Dest()...)...); err != nil {
		return sub, err
	}
	sub.Channel = owner.Owner()
	return sub, nil
}

const toggleSQL = `
	WITH channel AS (
		SELECT id FROM users WHERE id = $2
	), deleted AS (
		DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2 RETURNING id
	), inserted AS (
		INSERT INTO subscriptions (subscriber_id, channel_id)
		SELECT $1, id FROM channel
		WHERE NOT EXISTS (SELECT 1 FROM deleted)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
		RETURNING id
	)
	SELECT EXISTS (SELECT 1 FROM channel), EXISTS (SELECT 1 FROM inserted)`
