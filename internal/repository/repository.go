package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jayeuse/Inventory-System-sub000/internal/apiclient"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
)

// Repository is the REST backend seen as a set of collections.
type Repository struct {
	Client *apiclient.Client
}

func NewRepository(client *apiclient.Client) *Repository {
	return &Repository{Client: client}
}

// Collection is one REST collection, e.g. /api/products/.
type Collection[T any] struct {
	client *apiclient.Client
	path   string
}

func NewCollection[T any](r *Repository, path string) *Collection[T] {
	return &Collection[T]{client: r.Client, path: "/" + strings.Trim(path, "/") + "/"}
}

func (c *Collection[T]) Path() string {
	return c.path
}

func (c *Collection[T]) item(id string) string {
	return c.path + url.PathEscape(id) + "/"
}

func (c *Collection[T]) List(ctx context.Context, query QueryBuilder) ([]T, error) {
	return apiclient.List[T](ctx, c.client, c.path, build(query))
}

func (c *Collection[T]) ListAll(ctx context.Context, query QueryBuilder) ([]T, error) {
	return apiclient.ListAll[T](ctx, c.client, c.path, build(query))
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	var record T
	if err := c.client.Get(ctx, c.item(id), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Collection[T]) Create(ctx context.Context, body interface{}) (*T, error) {
	var record T
	if err := c.client.Post(ctx, c.path, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, changes interface{}) (*T, error) {
	var record T
	if err := c.client.Patch(ctx, c.item(id), changes, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Action posts to a detail route such as /api/users/{id}/activate/.
func (c *Collection[T]) Action(ctx context.Context, id, action string, body, out interface{}) error {
	return c.client.Post(ctx, c.item(id)+strings.Trim(action, "/")+"/", body, out)
}

// CollectionAction posts to a list route such as /api/receive-orders/bulk_receive/.
func (c *Collection[T]) CollectionAction(ctx context.Context, action string, body, out interface{}) error {
	return c.client.Post(ctx, c.path+strings.Trim(action, "/")+"/", body, out)
}

// Archive marks a record Archived with the given reason.
func (c *Collection[T]) Archive(ctx context.Context, id, reason string) error {
	reason, err := requireReason(reason, "archiving")
	if err != nil {
		return err
	}
	return c.client.Patch(ctx, c.item(id), models.NewArchiveRequest(reason), nil)
}

// Unarchive restores a record. Archived rows are only reachable with show_archived.
func (c *Collection[T]) Unarchive(ctx context.Context, id, reason string) error {
	reason, err := requireReason(reason, "unarchiving")
	if err != nil {
		return err
	}
	return c.client.Patch(ctx, c.item(id)+"?"+ShowArchived().Encode(), models.NewUnarchiveRequest(reason), nil)
}

func requireReason(reason, action string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", fmt.Errorf("%w: please provide a reason for %s", ErrInvalidInput, action)
	}
	return reason, nil
}
