package repository

import "context"

// Store is what entity services need from a collection. *Collection[T]
// implements it.
type Store[T any] interface {
	List(ctx context.Context, query QueryBuilder) ([]T, error)
	ListAll(ctx context.Context, query QueryBuilder) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, body interface{}) (*T, error)
	Update(ctx context.Context, id string, changes interface{}) (*T, error)
	Archive(ctx context.Context, id, reason string) error
	Unarchive(ctx context.Context, id, reason string) error
	Action(ctx context.Context, id, action string, body, out interface{}) error
	CollectionAction(ctx context.Context, action string, body, out interface{}) error
}

var _ Store[struct{}] = (*Collection[struct{}])(nil)
