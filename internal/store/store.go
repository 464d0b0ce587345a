// Package store defines the flat key-value persistence the storefront uses
// for its durable client state: the persisted identity under "userInfo" and
// one serialized cart per scope key ("cart_guest", "cart_<actorID>").
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written or
// was deleted.
var ErrKeyNotFound = errors.New("store: key not found")

// KV is the storage contract. Values are opaque byte payloads; callers own
// serialization.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
