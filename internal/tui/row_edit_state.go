package tui

import (
	"sync"

	"github.com/google/uuid"
)

// RowEditState encapsulates the row being edited in the popover
type RowEditState struct {
	mu sync.RWMutex

	id       uuid.UUID
	original string
	active   bool
}

// NewRowEditState creates a new row edit state
func NewRowEditState() *RowEditState {
	return &RowEditState{}
}

// GetID returns the id of the row being edited
func (s *RowEditState) GetID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// GetOriginal returns the row text before editing started
func (s *RowEditState) GetOriginal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.original
}

// IsActive reports whether a row is being edited
func (s *RowEditState) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Initialize starts editing a row
func (s *RowEditState) Initialize(id uuid.UUID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.original = text
	s.active = true
}

// Reset resets all row edit state
func (s *RowEditState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.Nil
	s.original = ""
	s.active = false
}
