package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/child"
	"github.com/studiowebux/popfocus/internal/popoverlist"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownAction is returned for a step whose action name is not recognised
	ErrUnknownAction = errors.New("unknown action")

	// ErrIndexOutOfRange is returned when a step's index does not name a row
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Step names one action to dispatch. Index refers to the rows of the open
// popover session, or to the child rows when no session is open.
type Step struct {
	Action string  `json:"action" yaml:"action"`
	Index  *int    `json:"index,omitempty" yaml:"index,omitempty"`
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Value  string  `json:"value,omitempty" yaml:"value,omitempty"`
	Expect *Expect `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Expect holds optional assertions checked after a step
type Expect struct {
	Editing *string `json:"editing,omitempty" yaml:"editing,omitempty"`
	Focus   *string `json:"focus,omitempty" yaml:"focus,omitempty"`
	Session *bool   `json:"session,omitempty" yaml:"session,omitempty"`
}

// Script is a scripted headless session
type Script struct {
	Items []ItemSpec `json:"items,omitempty" yaml:"items,omitempty"`
	Steps []Step     `json:"steps" yaml:"steps"`
}

// ParseScript parses a YAML or JSON script file
func ParseScript(filePath string) (*Script, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var script Script
	if isJSON(filePath) {
		err = json.Unmarshal(data, &script)
	} else {
		err = yaml.Unmarshal(data, &script)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(filePath), err)
	}

	for i, step := range script.Steps {
		if _, ok := stepKinds[step.Action]; !ok {
			return nil, fmt.Errorf("step %d: %w %q", i+1, ErrUnknownAction, step.Action)
		}
	}

	return &script, nil
}

var stepKinds = map[string]struct{}{
	"gear_tapped":       {},
	"whole_view_tapped": {},
	"set_focus":         {},
	"popover_dismissed": {},
	"set_editing":       {},
	"set_item_text":     {},
	"toggle_selected":   {},
	"set_focused_item":  {},
	"add_item":          {},
	"remove_item":       {},
}

// rows returns the rows a step index refers to
func rows(state app.State) popoverlist.Items {
	if state.Child.Popover != nil {
		return state.Child.Popover.Items
	}
	return state.Child.Items
}

func (s Step) resolveID(state app.State) (uuid.UUID, error) {
	r := rows(state)
	if s.Index == nil {
		return uuid.Nil, fmt.Errorf("%s: %w: index is required", s.Action, ErrIndexOutOfRange)
	}
	if *s.Index < 0 || *s.Index >= len(r) {
		return uuid.Nil, fmt.Errorf("%s: %w: %d (have %d rows)", s.Action, ErrIndexOutOfRange, *s.Index, len(r))
	}
	return r[*s.Index].ID, nil
}

// ToAction resolves a step against the current state
func ToAction(step Step, state app.State) (app.Action, error) {
	popover := func(a popoverlist.Action) app.Action {
		return app.Child{Action: child.Popover{Action: a}}
	}

	switch step.Action {
	case "gear_tapped":
		return app.Child{Action: child.GearTapped{}}, nil

	case "whole_view_tapped":
		return app.WholeViewTapped{}, nil

	case "popover_dismissed":
		return app.Child{Action: child.PopoverDismissed{}}, nil

	case "set_focus":
		f, ok := app.ParseField(step.Value)
		if !ok {
			return nil, fmt.Errorf("set_focus: invalid value %q", step.Value)
		}
		return app.SetFocus{Field: f}, nil

	case "set_editing":
		e, ok := child.ParseEditingState(step.Value)
		if !ok {
			return nil, fmt.Errorf("set_editing: invalid value %q", step.Value)
		}
		return app.Child{Action: child.SetEditing{Value: e}}, nil

	case "set_item_text":
		id, err := step.resolveID(state)
		if err != nil {
			return nil, err
		}
		return popover(popoverlist.SetItemText{ID: id, Text: step.Text}), nil

	case "toggle_selected":
		id, err := step.resolveID(state)
		if err != nil {
			return nil, err
		}
		return popover(popoverlist.ToggleSelected{ID: id}), nil

	case "set_focused_item":
		if step.Index == nil {
			return popover(popoverlist.SetFocusedItemID{ID: nil}), nil
		}
		id, err := step.resolveID(state)
		if err != nil {
			return nil, err
		}
		return popover(popoverlist.SetFocusedItemID{ID: &id}), nil

	case "add_item":
		next := append(rows(state).Clone(), popoverlist.NewItem(step.Text))
		return popover(popoverlist.SetItems{Items: next}), nil

	case "remove_item":
		id, err := step.resolveID(state)
		if err != nil {
			return nil, err
		}
		return popover(popoverlist.SetItems{Items: rows(state).Without(id)}), nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownAction, step.Action)
}

// Check compares state against the step's expectations
func (e *Expect) Check(state app.State) error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Editing != nil && state.Child.Editing.String() != *e.Editing {
		errs = append(errs, fmt.Errorf("editing = %s, want %s", state.Child.Editing, *e.Editing))
	}
	if e.Focus != nil && state.Focus.String() != *e.Focus {
		errs = append(errs, fmt.Errorf("focus = %s, want %s", state.Focus, *e.Focus))
	}
	if e.Session != nil && state.Child.IsEditing() != *e.Session {
		errs = append(errs, fmt.Errorf("session open = %v, want %v", state.Child.IsEditing(), *e.Session))
	}
	return errors.Join(errs...)
}
