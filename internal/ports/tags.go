package ports

import "context"

// TagStore persists user tags keyed by craft reference key.
// See domain.Craft.RefKey for the key format.
type TagStore interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	// Queries
	Tags(ctx context.Context, key string) ([]string, error)
	AllTags(ctx context.Context) ([]string, error)
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Updates
	AddTag(ctx context.Context, key, tag string) error
	RemoveTag(ctx context.Context, key, tag string) error

	// Batch updates
	BeginTx(ctx context.Context) (TagTx, error)
}

// TagTx applies several tag changes atomically
type TagTx interface {
	AddTag(key, tag string) error
	RemoveTag(key, tag string) error
	DeleteKey(key string) error

	Commit() error
	Rollback() error
}
