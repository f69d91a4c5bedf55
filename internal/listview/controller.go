package listview

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrStale is returned by a refresh that was superseded by a newer one; its
// result was discarded.
var ErrStale = errors.New("stale fetch discarded")

// FetchFunc loads the full collection for a list.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Controller owns the fetched records and the view state of one list page.
// Each Refresh takes a new generation and cancels the previous in-flight
// fetch, so only the latest response is ever kept.
type Controller[T any] struct {
	mu         sync.Mutex
	spec       Spec[T]
	fetch      FetchFunc[T]
	state      *State
	records    []T
	err        error
	generation uint64
	cancel     context.CancelFunc
	logger     *zap.Logger
	name       string
}

func NewController[T any](name string, spec Spec[T], fetch FetchFunc[T], state *State, logger *zap.Logger) *Controller[T] {
	if state == nil {
		state = NewState()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller[T]{
		name:   name,
		spec:   spec,
		fetch:  fetch,
		state:  state,
		logger: logger,
	}
}

// Refresh re-fetches the collection. A failed fetch leaves an empty list and
// the error is kept for the error-state render.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	generation := c.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	records, err := c.fetch(fetchCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if generation != c.generation {
		c.logger.Debug("Discarding stale fetch", zap.String("list", c.name), zap.Uint64("generation", generation))
		return ErrStale
	}
	c.cancel = nil

	if err != nil {
		c.logger.Error("Failed to load list", zap.String("list", c.name), zap.Error(err))
		c.records = nil
		c.err = err
		return err
	}
	if records == nil {
		records = []T{}
	}
	c.records = records
	c.err = nil
	return nil
}

// View applies the current state and returns the visible page.
func (c *Controller[T]) View() Page[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller[T]) viewLocked() Page[T] {
	q := c.state.Query()
	page := Paginate(c.spec.Apply(c.records, q), q.Page, c.pageSize())
	c.state.clamp(page.TotalPages)
	return page
}

func (c *Controller[T]) pageSize() int {
	if c.spec.PageSize > 0 {
		return c.spec.PageSize
	}
	return 1
}

// Err is the last fetch error, nil after a successful refresh.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Filtered returns every record matching the current search and filters.
func (c *Controller[T]) Filtered() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec.Apply(c.records, c.state.Query())
}

func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Query()
}

func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetSearch(term)
}

func (c *Controller[T]) SetFilter(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetFilter(name, value)
}

func (c *Controller[T]) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ClearFilters()
}

func (c *Controller[T]) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Next(c.viewLocked().TotalPages)
}

func (c *Controller[T]) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Prev()
}

func (c *Controller[T]) Goto(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Goto(page)
	c.viewLocked()
}
