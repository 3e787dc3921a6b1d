package users

import (
	"github.com/JaimeStill/reel/pkg/query"
)

// Owner is the embedded projection of a referenced user.
// It never carries credentials; a nil Owner means the user no longer exists.
type Owner struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// JoinOwner left-joins users under alias on the given condition and projects the
// owner fields. Columns are projected as OwnerFullName, OwnerUsername, OwnerAvatar.
func JoinOwner(p *query.ProjectionMap, alias, on string) *query.ProjectionMap {
	return p.
		Join("public", "users", alias, "LEFT JOIN", on).
		Project("full_name", "OwnerFullName").
		Project("username", "OwnerUsername").
		Project("avatar", "OwnerAvatar")
}

// OwnerColumns receives the nullable columns projected by JoinOwner.
type OwnerColumns struct {
	FullName *string
	Username *string
	Avatar   *string
}

// Dest returns scan destinations in JoinOwner projection order.
func (c *OwnerColumns) Dest() []any {
	return []any{&c.FullName, &c.Username, &c.Avatar}
}

// Owner returns the enriched owner, or nil when the join found no user.
func (c *OwnerColumns) Owner() *Owner {
	if c.Username == nil {
		return nil
	}

	o := &Owner{Username: *c.Username}
	if c.FullName != nil {
		o.FullName = *c.FullName
	}
	if c.Avatar != nil {
		o.Avatar = *c.Avatar
	}
	return o
}
