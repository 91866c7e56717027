package child

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/studiowebux/popfocus/internal/popoverlist"
	"github.com/studiowebux/popfocus/internal/store"
)

// EditingState names the editing surface that is currently open.
// The zero value means nothing is being edited.
type EditingState string

const (
	EditingNone    EditingState = ""
	EditingPopover EditingState = "popover"
)

// String returns a display name
func (e EditingState) String() string {
	if e == EditingNone {
		return "none"
	}
	return string(e)
}

// ParseEditingState converts a display name back to an EditingState
func ParseEditingState(s string) (EditingState, bool) {
	switch s {
	case "", "none":
		return EditingNone, true
	case string(EditingPopover):
		return EditingPopover, true
	}
	return EditingNone, false
}

// State holds the child rows and the optional popover session
type State struct {
	Items   popoverlist.Items
	Popover *popoverlist.State
	Editing EditingState
}

// Clone returns a deep copy
func (s State) Clone() State {
	c := State{
		Items:   s.Items.Clone(),
		Editing: s.Editing,
	}
	if s.Popover != nil {
		p := s.Popover.Clone()
		c.Popover = &p
	}
	return c
}

// IsEditing reports whether the popover session is open
func (s State) IsEditing() bool {
	return s.Popover != nil
}

// Action is implemented by every child action
type Action interface {
	store.Named
	isChildAction()
}

// GearTapped opens the popover editing session
type GearTapped struct{}

// Popover forwards an action into the open popover session
type Popover struct{ Action popoverlist.Action }

// PopoverDismissed is sent when the presentation closes the popover
type PopoverDismissed struct{}

// SetEditing is the binding setter for Editing
type SetEditing struct{ Value EditingState }

// SetItems is the binding setter for Items
type SetItems struct{ Items popoverlist.Items }

func (GearTapped) ActionName() string       { return "gear_tapped" }
func (a Popover) ActionName() string        { return "popover." + store.NameOf(a.Action) }
func (PopoverDismissed) ActionName() string { return "popover_dismissed" }
func (SetEditing) ActionName() string       { return "set_editing" }
func (SetItems) ActionName() string         { return "set_items" }

func (GearTapped) isChildAction()       {}
func (Popover) isChildAction()          {}
func (PopoverDismissed) isChildAction() {}
func (SetEditing) isChildAction()       {}
func (SetItems) isChildAction()         {}

// EndEditing closes the popover session. Rows edited in the session are
// written back to Items before the session is dropped.
func EndEditing(state *State) {
	if state.Popover != nil {
		state.Items = state.Popover.Items.Clone()
		state.Popover = nil
	}
	state.Editing = EditingNone
}

// NewReducer builds the child reducer. Popover actions that arrive with no
// open session are logged and dropped.
func NewReducer(logger *slog.Logger) store.Reducer[State, Action] {
	if logger == nil {
		logger = slog.Default()
	}

	popover := store.IfLet(
		func(s *State) **popoverlist.State { return &s.Popover },
		func(a Action) (popoverlist.Action, bool) {
			p, ok := a.(Popover)
			if !ok || p.Action == nil {
				return nil, false
			}
			return p.Action, true
		},
		popoverlist.NewReducer(),
		func(a popoverlist.Action) {
			logger.Warn("popover action received with no open session", "action", store.NameOf(a))
		},
	)

	return store.Combine(coreReducer(logger), popover, enforceSelection)
}

// coreReducer handles the child's own actions. Rows are kept unique by id
// here so a session never starts from a list that enforceSelection would
// later have to shrink.
func coreReducer(logger *slog.Logger) store.Reducer[State, Action] {
	unique := func(items popoverlist.Items, action Action) popoverlist.Items {
		deduped := items.Dedupe()
		dropped := len(items) - len(deduped)
		if dropped == 0 {
			return items.Clone()
		}
		logger.Warn("dropped rows with duplicate ids", "action", action.ActionName(), "dropped", dropped)
		return deduped
	}

	return func(state *State, action Action) {
		switch a := action.(type) {
		case GearTapped:
			state.Items = unique(state.Items, a)
			state.Editing = EditingPopover
			p := popoverlist.New(state.Items)
			state.Popover = &p

		case PopoverDismissed:
			EndEditing(state)

		case SetEditing:
			state.Editing = a.Value

		case SetItems:
			state.Items = unique(a.Items, a)
		}
	}
}

// enforceSelection keeps the session's selection and focus pointing at rows
// that still exist.
func enforceSelection(state *State, action Action) {
	if _, ok := action.(Popover); !ok || state.Popover == nil {
		return
	}
	p := state.Popover

	if deduped := p.Items.Dedupe(); len(deduped) != len(p.Items) {
		p.Items = deduped
	}

	for id := range p.SelectedIDs {
		if !p.Items.Contains(id) {
			delete(p.SelectedIDs, id)
		}
	}
	if p.FocusedItemID != nil && !p.Items.Contains(*p.FocusedItemID) {
		p.FocusedItemID = nil
	}
}

// SelectedIDs returns the ids selected in the open session, if any
func (s State) SelectedIDs() []uuid.UUID {
	if s.Popover == nil {
		return nil
	}
	var ids []uuid.UUID
	for _, it := range s.Popover.Items {
		if s.Popover.IsSelected(it.ID) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
