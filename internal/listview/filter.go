package listview

import (
	"strings"

	"github.com/jayeuse/Inventory-System-sub000/pkg/metadata"
)

// FilterAll is the select value that disables a filter.
const FilterAll = "all"

// Query is the input of one list view pass.
type Query struct {
	Search  string
	Filters map[string]string
	Page    int
}

func (q Query) Filter(name string) string {
	if q.Filters == nil {
		return ""
	}
	return q.Filters[name]
}

// Active reports whether a filter value restricts the list.
func Active(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && !strings.EqualFold(value, FilterAll)
}

// Field extracts one searchable string from a record.
type Field[T any] func(T) string

// Matcher compares a record value against the selected filter value.
type Matcher func(value, selected string) bool

type Filter[T any] struct {
	Name  string
	Label string
	Value func(T) string
	Match Matcher
	// Options lists the selectable values, for help output and select boxes.
	Options []string
}

func Equal(value, selected string) bool {
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(selected))
}

// NormalizedEqual compares "Low Stock" and "low-stock" as the same status.
func NormalizedEqual(value, selected string) bool {
	return metadata.Normalize(value) == metadata.Normalize(selected)
}

// PartialOrEqual matches the "partial" token by substring and anything else
// by equality. "partial" therefore matches "partially received" but
// "received" does not.
func PartialOrEqual(value, selected string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	s := strings.ToLower(strings.TrimSpace(selected))
	if s == "partial" {
		return strings.Contains(v, "partial")
	}
	return v == s
}

// Spec describes how one entity list is searched, filtered and paged.
type Spec[T any] struct {
	PageSize int
	Search   []Field[T]
	Filters  []Filter[T]
}

func (s Spec[T]) FilterNames() []string {
	names := make([]string, len(s.Filters))
	for i, filter := range s.Filters {
		names[i] = filter.Name
	}
	return names
}

func (s Spec[T]) matchesSearch(record T, term string) bool {
	if term == "" || len(s.Search) == 0 {
		return true
	}
	for _, field := range s.Search {
		if strings.Contains(strings.ToLower(field(record)), term) {
			return true
		}
	}
	return false
}

func (s Spec[T]) matchesFilters(record T, q Query) bool {
	for _, filter := range s.Filters {
		selected := q.Filter(filter.Name)
		if !Active(selected) {
			continue
		}
		match := filter.Match
		if match == nil {
			match = Equal
		}
		if !match(filter.Value(record), selected) {
			return false
		}
	}
	return true
}

// Apply returns the records matching the query search term (substring, case
// insensitive, any field) and every active filter. Order is preserved and the
// input slice is not modified.
func (s Spec[T]) Apply(records []T, q Query) []T {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]T, 0, len(records))
	for _, record := range records {
		if s.matchesSearch(record, term) && s.matchesFilters(record, q) {
			out = append(out, record)
		}
	}
	return out
}
