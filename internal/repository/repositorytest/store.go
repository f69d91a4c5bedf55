// Package repositorytest holds a testify mock of repository.Store.
package repositorytest

import (
	"context"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockStore[T any] struct {
	mock.Mock
}

var _ repository.Store[struct{}] = (*MockStore[struct{}])(nil)

func (m *MockStore[T]) List(ctx context.Context, query repository.QueryBuilder) ([]T, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) ListAll(ctx context.Context, query repository.QueryBuilder) ([]T, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) Create(ctx context.Context, body interface{}) (*T, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) Update(ctx context.Context, id string, changes interface{}) (*T, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) Archive(ctx context.Context, id, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *MockStore[T]) Unarchive(ctx context.Context, id, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *MockStore[T]) Action(ctx context.Context, id, action string, body, out interface{}) error {
	return m.Called(ctx, id, action, body, out).Error(0)
}

func (m *MockStore[T]) CollectionAction(ctx context.Context, action string, body, out interface{}) error {
	return m.Called(ctx, action, body, out).Error(0)
}
