package listview

import "strings"

// State is the view state of one list: the search term, the selected filters
// and the current page. It is owned by a single controller.
type State struct {
	search  string
	filters map[string]string
	page    int
}

func NewState() *State {
	return &State{filters: map[string]string{}, page: 1}
}

// StateFromQuery seeds a state, e.g. from CLI flags.
func StateFromQuery(q Query) *State {
	s := NewState()
	s.search = strings.TrimSpace(q.Search)
	for name, value := range q.Filters {
		s.filters[name] = value
	}
	if q.Page > 0 {
		s.page = q.Page
	}
	return s
}

func (s *State) Query() Query {
	filters := make(map[string]string, len(s.filters))
	for name, value := range s.filters {
		filters[name] = value
	}
	return Query{Search: s.search, Filters: filters, Page: s.page}
}

func (s *State) Search() string { return s.search }
func (s *State) Page() int      { return s.page }

// SetSearch changes the term and returns to the first page.
func (s *State) SetSearch(term string) {
	s.search = strings.TrimSpace(term)
	s.page = 1
}

// SetFilter changes one filter and returns to the first page. "" and "all" clear it.
func (s *State) SetFilter(name, value string) {
	if Active(value) {
		s.filters[name] = value
	} else {
		delete(s.filters, name)
	}
	s.page = 1
}

// ClearFilters drops the search term and every filter.
func (s *State) ClearFilters() {
	s.filters = map[string]string{}
	s.search = ""
	s.page = 1
}

func (s *State) Goto(page int) {
	s.page = page
}

func (s *State) Next(totalPages int) {
	s.page = ClampPage(s.page+1, totalPages)
}

func (s *State) Prev() {
	if s.page > 1 {
		s.page--
	}
}

// clamp syncs the stored page with the one actually shown.
func (s *State) clamp(totalPages int) {
	s.page = ClampPage(s.page, totalPages)
}
