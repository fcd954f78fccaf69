// Package storage is the client's durable key/value storage: a single SQLite
// table standing in for browser local storage.
package storage

import "context"

// Well-known keys.
const (
	KeyToken                = "token"
	KeyUser                 = "user"
	KeyNotifications        = "notifications"
	KeyNotificationSettings = "notificationSettings"
)

// Repository reads and writes raw values by key.
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is not an
// error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Store is a Repository that can also run several operations atomically.
// The Repository handed to fn must be the only one used inside fn.
type Store interface {
	Repository
	Update(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
