package popoverlist

import (
	"github.com/google/uuid"
	"github.com/studiowebux/popfocus/internal/store"
)

// State is the selection list shown inside the popover
type State struct {
	Items         Items
	SelectedIDs   map[uuid.UUID]struct{}
	FocusedItemID *uuid.UUID
}

// New creates list state from a snapshot of items. Later edits to the list do
// not reach the caller's slice.
func New(items Items) State {
	return State{
		Items:       items.Clone(),
		SelectedIDs: map[uuid.UUID]struct{}{},
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	c := State{Items: s.Items.Clone()}
	if s.SelectedIDs != nil {
		c.SelectedIDs = make(map[uuid.UUID]struct{}, len(s.SelectedIDs))
		for id := range s.SelectedIDs {
			c.SelectedIDs[id] = struct{}{}
		}
	}
	if s.FocusedItemID != nil {
		id := *s.FocusedItemID
		c.FocusedItemID = &id
	}
	return c
}

// IsSelected reports whether id is in the selection set
func (s State) IsSelected(id uuid.UUID) bool {
	_, ok := s.SelectedIDs[id]
	return ok
}

// Selected returns the selected items in list order
func (s State) Selected() Items {
	var out Items
	for _, it := range s.Items {
		if s.IsSelected(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

// IsFocused reports whether id is the focused row
func (s State) IsFocused(id uuid.UUID) bool {
	return s.FocusedItemID != nil && *s.FocusedItemID == id
}

// Action is implemented by every selection list action
type Action interface {
	store.Named
	isPopoverListAction()
}

// SetItems replaces the rows
type SetItems struct{ Items Items }

// SetSelectedIDs replaces the selection set
type SetSelectedIDs struct{ IDs []uuid.UUID }

// SetFocusedItemID moves row focus; nil clears it
type SetFocusedItemID struct{ ID *uuid.UUID }

// SetItemText edits a single row's text
type SetItemText struct {
	ID   uuid.UUID
	Text string
}

// ToggleSelected adds or removes one id from the selection set
type ToggleSelected struct{ ID uuid.UUID }

func (SetItems) ActionName() string         { return "set_items" }
func (SetSelectedIDs) ActionName() string   { return "set_selected_ids" }
func (SetFocusedItemID) ActionName() string { return "set_focused_item_id" }
func (SetItemText) ActionName() string      { return "set_item_text" }
func (ToggleSelected) ActionName() string   { return "toggle_selected" }

func (SetItems) isPopoverListAction()         {}
func (SetSelectedIDs) isPopoverListAction()   {}
func (SetFocusedItemID) isPopoverListAction() {}
func (SetItemText) isPopoverListAction()      {}
func (ToggleSelected) isPopoverListAction()   {}

// Reduce applies a selection list action. All actions are direct field
// updates; invariants across fields are left to the owner.
func Reduce(state *State, action Action) {
	switch a := action.(type) {
	case SetItems:
		state.Items = a.Items.Clone()

	case SetSelectedIDs:
		state.SelectedIDs = make(map[uuid.UUID]struct{}, len(a.IDs))
		for _, id := range a.IDs {
			state.SelectedIDs[id] = struct{}{}
		}

	case SetFocusedItemID:
		if a.ID == nil {
			state.FocusedItemID = nil
			return
		}
		id := *a.ID
		state.FocusedItemID = &id

	case SetItemText:
		if i := state.Items.Index(a.ID); i >= 0 {
			state.Items[i].Text = a.Text
		}

	case ToggleSelected:
		if state.SelectedIDs == nil {
			state.SelectedIDs = map[uuid.UUID]struct{}{}
		}
		if _, ok := state.SelectedIDs[a.ID]; ok {
			delete(state.SelectedIDs, a.ID)
		} else {
			state.SelectedIDs[a.ID] = struct{}{}
		}
	}
}

// NewReducer returns Reduce as a store reducer
func NewReducer() store.Reducer[State, Action] {
	return Reduce
}

// NextID returns the id after current, wrapping. With no current focus it
// returns the first row.
func NextID(items Items, current *uuid.UUID) *uuid.UUID {
	if len(items) == 0 {
		return nil
	}
	idx := -1
	if current != nil {
		idx = items.Index(*current)
	}
	id := items[(idx+1)%len(items)].ID
	return &id
}

// PrevID returns the id before current, wrapping. With no current focus it
// returns the last row.
func PrevID(items Items, current *uuid.UUID) *uuid.UUID {
	if len(items) == 0 {
		return nil
	}
	idx := len(items)
	if current != nil {
		if i := items.Index(*current); i >= 0 {
			idx = i
		}
	}
	id := items[(idx-1+len(items))%len(items)].ID
	return &id
}
