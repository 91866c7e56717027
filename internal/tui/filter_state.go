package tui

import (
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/popfocus/internal/popoverlist"
)

// FilterState holds the fuzzy filter applied to the popover rows
type FilterState struct {
	mu sync.RWMutex

	query string
}

// NewFilterState creates a new filter state
func NewFilterState() *FilterState {
	return &FilterState{}
}

// GetQuery returns the current query
func (s *FilterState) GetQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery replaces the query
func (s *FilterState) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// IsActive reports whether a non-empty query is set
func (s *FilterState) IsActive() bool {
	return s.GetQuery() != ""
}

// Reset clears the query
func (s *FilterState) Reset() {
	s.SetQuery("")
}

// Apply returns the rows matching the query, best match first. With no
// query every row is returned in list order.
func (s *FilterState) Apply(items popoverlist.Items) popoverlist.Items {
	query := s.GetQuery()
	if query == "" {
		return items
	}

	matches := fuzzy.Find(query, items.Texts())
	out := make(popoverlist.Items, 0, len(matches))
	for _, match := range matches {
		out = append(out, items[match.Index])
	}
	return out
}
