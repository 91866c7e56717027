package app

import (
	"log/slog"

	"github.com/studiowebux/popfocus/internal/child"
	"github.com/studiowebux/popfocus/internal/store"
)

// Field is the root focus target. The zero value means nothing is focused;
// otherwise it names the child editing surface that holds focus.
type Field struct {
	Child child.EditingState
}

// FieldNone is the unfocused target
var FieldNone = Field{}

// ChildField builds the target that mirrors a child editing state
func ChildField(e child.EditingState) Field {
	return Field{Child: e}
}

// IsNone reports whether nothing is focused
func (f Field) IsNone() bool {
	return f.Child == child.EditingNone
}

// String returns "none" or "child(<state>)"
func (f Field) String() string {
	if f.IsNone() {
		return "none"
	}
	return "child(" + f.Child.String() + ")"
}

// ParseField is the inverse of Field.String
func ParseField(s string) (Field, bool) {
	if s == "" || s == "none" {
		return FieldNone, true
	}
	const prefix, suffix = "child(", ")"
	if len(s) > len(prefix)+len(suffix) && s[:len(prefix)] == prefix && s[len(s)-1:] == suffix {
		e, ok := child.ParseEditingState(s[len(prefix) : len(s)-1])
		if !ok || e == child.EditingNone {
			return FieldNone, false
		}
		return ChildField(e), true
	}
	return FieldNone, false
}

// State is the root application state
type State struct {
	Child child.State
	Focus Field
}

// Clone returns a deep copy
func (s State) Clone() State {
	return State{Child: s.Child.Clone(), Focus: s.Focus}
}

// Action is implemented by every root action
type Action interface {
	store.Named
	isAppAction()
}

// SetFocus is the binding setter for Focus
type SetFocus struct{ Field Field }

// Child forwards an action to the child reducer
type Child struct{ Action child.Action }

// WholeViewTapped is sent when the user taps outside any editing surface
type WholeViewTapped struct{}

func (SetFocus) ActionName() string        { return "set_focus" }
func (a Child) ActionName() string         { return "child." + store.NameOf(a.Action) }
func (WholeViewTapped) ActionName() string { return "whole_view_tapped" }

func (SetFocus) isAppAction()        {}
func (Child) isAppAction()           {}
func (WholeViewTapped) isAppAction() {}

// NewReducer builds the root reducer: child delegation and root actions run
// first, then a relay mirrors a newly set child editing state into Focus.
// Focus changes never flow back into the child.
func NewReducer(logger *slog.Logger) store.Reducer[State, Action] {
	scoped := store.Scope(
		func(s *State) *child.State { return &s.Child },
		func(a Action) (child.Action, bool) {
			c, ok := a.(Child)
			if !ok || c.Action == nil {
				return nil, false
			}
			return c.Action, true
		},
		child.NewReducer(logger),
	)

	return store.OnChange(
		store.Combine(scoped, core),
		func(s *State) child.EditingState { return s.Child.Editing },
		relayEditingToFocus,
	)
}

func core(state *State, action Action) {
	switch a := action.(type) {
	case SetFocus:
		state.Focus = a.Field

	case WholeViewTapped:
		state.Focus = FieldNone
		child.EndEditing(&state.Child)
	}
}

func relayEditingToFocus(state *State, _, next child.EditingState) {
	if next == child.EditingNone {
		return
	}
	state.Focus = ChildField(next)
}

// NewStore creates a store for the root state
func NewStore(initial State, logger *slog.Logger) *store.Store[State, Action] {
	return store.New(initial, NewReducer(logger))
}

// Send is shorthand for wrapping a child action
func Send(s *store.Store[State, Action], a child.Action) {
	s.Send(Child{Action: a})
}
