package repository

import (
	"net/url"

	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
)

// ErrInvalidInput marks client side validation failures; no request was sent.
var ErrInvalidInput = validator.ErrInvalidInput

// QueryBuilder produces the query string of a list request.
type QueryBuilder interface {
	BuildQuery() url.Values
}

// Params is the plain QueryBuilder.
type Params map[string]string

func (p Params) BuildQuery() url.Values {
	values := url.Values{}
	for key, value := range p {
		if value != "" {
			values.Set(key, value)
		}
	}
	return values
}

func ShowArchived() url.Values {
	return url.Values{"show_archived": []string{"true"}}
}

func build(query QueryBuilder) url.Values {
	if query == nil {
		return nil
	}
	return query.BuildQuery()
}
