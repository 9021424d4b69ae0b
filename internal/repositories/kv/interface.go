// Package kv implements the flat key→blob substrate underneath the entity
// store. Each entity collection is serialized as a whole into a single blob
// addressed by a fixed key; there are no partial updates at this level.
package kv

import (
	"context"
)

// Repository is a key→blob store. Get returns (nil, nil) for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
