package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Envelope is the paginated response shape. Bare arrays decode into Results
// with no Next link.
type Envelope[T any] struct {
	Results  []T     `json:"results"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Count    *int    `json:"count,omitempty"`
}

// envelopeBody has Envelope's fields without its UnmarshalJSON method.
type envelopeBody[T any] struct {
	Results  []T     `json:"results"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Count    *int    `json:"count,omitempty"`
}

func (e *Envelope[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		e.Results = []T{}
		return nil
	}

	if trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		e.Results = list
		return nil
	}

	var decoded envelopeBody[T]
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*e = Envelope[T](decoded)
	if e.Results == nil {
		e.Results = []T{}
	}
	return nil
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// List issues one GET and normalizes the envelope into a slice.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var env Envelope[T]
	if err := c.Get(ctx, withQuery(path, query), &env); err != nil {
		return nil, err
	}
	if env.Results == nil {
		return []T{}, nil
	}
	return env.Results, nil
}

// ListAll follows next links until the backend reports none.
func ListAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	all := []T{}
	next := withQuery(path, query)
	seen := map[string]bool{}

	for next != "" {
		if seen[next] {
			return nil, fmt.Errorf("pagination loop detected at %s", next)
		}
		seen[next] = true

		var env Envelope[T]
		if err := c.Get(ctx, next, &env); err != nil {
			return nil, err
		}
		all = append(all, env.Results...)

		next = ""
		if env.Next != nil {
			next = *env.Next
		}
	}
	return all, nil
}
