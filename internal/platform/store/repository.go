package store

import "context"

// Repository is the record-level surface of a Collection. Domain services
// depend on it rather than on the concrete generic type.
type Repository[E any] interface {
	Add(ctx context.Context, rec E) (E, error)
	Update(ctx context.Context, id string, patch Patch) (E, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(id string) (E, error)
	All() []E
	Filter(pred func(E) bool) []E
	Len() int
}
