package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/studiowebux/popfocus/internal/app"
	"github.com/studiowebux/popfocus/internal/config"
	"github.com/studiowebux/popfocus/internal/journal"
	"github.com/studiowebux/popfocus/internal/parser"
	"github.com/studiowebux/popfocus/internal/store"
	"gopkg.in/yaml.v3"
)

// ErrExpectationFailed is returned when a script step's expectations do not hold
var ErrExpectationFailed = errors.New("script expectations failed")

// RunOptions contains options for running a script headlessly
type RunOptions struct {
	ScriptPath   string
	ItemsPath    string // overrides the script's items
	OutputFormat string // json, yaml, text
	Trace        bool
	SavePath     string
	Debug        bool
	Journal      *journal.Manager
	Logger       *slog.Logger
	Out          io.Writer
}

// TraceEntry records the state after one script step
type TraceEntry struct {
	Step    int    `json:"step" yaml:"step"`
	Action  string `json:"action" yaml:"action"`
	Editing string `json:"editing" yaml:"editing"`
	Focus   string `json:"focus" yaml:"focus"`
	Session bool   `json:"session" yaml:"session"`
	Failure string `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// RowView is a row as rendered in the output
type RowView struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
	Focused  bool   `json:"focused,omitempty" yaml:"focused,omitempty"`
}

// StateView is the final state as rendered in the output
type StateView struct {
	Editing     string    `json:"editing" yaml:"editing"`
	Focus       string    `json:"focus" yaml:"focus"`
	Items       []RowView `json:"items" yaml:"items"`
	SessionRows []RowView `json:"sessionRows,omitempty" yaml:"sessionRows,omitempty"`
}

// Result is everything Run prints
type Result struct {
	Trace []TraceEntry `json:"trace,omitempty" yaml:"trace,omitempty"`
	Final StateView    `json:"final" yaml:"final"`
}

// Run replays a script through the application store and prints the result
func Run(opts RunOptions) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	scriptPath, err := resolveFilePath(opts.ScriptPath, filepath.Join(config.ConfigDir, "scripts"))
	if err != nil {
		return err
	}

	script, err := parser.ParseScript(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}

	items, err := parser.BuildItems(script.Items)
	if err != nil {
		return fmt.Errorf("failed to build items: %w", err)
	}
	if opts.ItemsPath != "" {
		items, err = parser.ParseItems(opts.ItemsPath)
		if err != nil {
			return fmt.Errorf("failed to load items: %w", err)
		}
	}

	initial := app.State{}
	initial.Child.Items = items
	s := app.NewStore(initial, opts.Logger)

	if opts.Debug {
		s.Subscribe(store.PrintChanges[app.State, app.Action](opts.Logger))
	}
	if opts.Journal != nil {
		sessionID := uuid.New()
		opts.Logger.Debug("journal session started", "session", sessionID)
		s.Subscribe(opts.Journal.WithLogger(opts.Logger).Observer(sessionID))
	}

	result, err := replay(s, script)
	if err != nil {
		return err
	}

	output, err := formatOutput(result, opts.OutputFormat, opts.Trace)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(output), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Output saved to %s\n", opts.SavePath)
	} else {
		fmt.Fprint(opts.Out, output)
	}

	var failed int
	for _, t := range result.Trace {
		if t.Failure != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d step(s)", ErrExpectationFailed, failed)
	}

	return nil
}

// replay dispatches every step in order. The trace is always collected so
// expectation failures can be reported; formatOutput decides whether to
// print it.
func replay(s *store.Store[app.State, app.Action], script *parser.Script) (*Result, error) {
	result := &Result{}

	for i, step := range script.Steps {
		action, err := parser.ToAction(step, s.State())
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		s.Send(action)
		state := s.State()

		entry := TraceEntry{
			Step:    i + 1,
			Action:  action.ActionName(),
			Editing: state.Child.Editing.String(),
			Focus:   state.Focus.String(),
			Session: state.Child.IsEditing(),
		}
		if err := step.Expect.Check(state); err != nil {
			entry.Failure = strings.ReplaceAll(err.Error(), "\n", "; ")
		}
		result.Trace = append(result.Trace, entry)
	}

	result.Final = viewState(s.State())
	return result, nil
}

func viewState(state app.State) StateView {
	view := StateView{
		Editing: state.Child.Editing.String(),
		Focus:   state.Focus.String(),
		Items:   make([]RowView, 0, len(state.Child.Items)),
	}
	for _, it := range state.Child.Items {
		view.Items = append(view.Items, RowView{ID: it.ID.String(), Text: it.Text})
	}

	if p := state.Child.Popover; p != nil {
		view.SessionRows = make([]RowView, 0, len(p.Items))
		for _, it := range p.Items {
			view.SessionRows = append(view.SessionRows, RowView{
				ID:       it.ID.String(),
				Text:     it.Text,
				Selected: p.IsSelected(it.ID),
				Focused:  p.IsFocused(it.ID),
			})
		}
	}
	return view
}

// formatOutput formats the result based on the output format
func formatOutput(result *Result, format string, trace bool) (string, error) {
	out := *result
	if !trace {
		out.Trace = nil
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		var sb strings.Builder

		if len(out.Trace) > 0 {
			sb.WriteString("Trace:\n")
			for _, t := range out.Trace {
				sb.WriteString(fmt.Sprintf("  %2d. %-40s editing=%-8s focus=%s\n", t.Step, t.Action, t.Editing, t.Focus))
				if t.Failure != "" {
					sb.WriteString(fmt.Sprintf("      %sFAIL: %s%s\n", colorRed, t.Failure, colorReset))
				}
			}
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("Editing: %s\n", out.Final.Editing))
		sb.WriteString(fmt.Sprintf("Focus:   %s\n", out.Final.Focus))
		sb.WriteString("Items:\n")
		for _, r := range out.Final.Items {
			sb.WriteString(fmt.Sprintf("  - %s\n", r.Text))
		}
		if out.Final.SessionRows != nil {
			sb.WriteString("Session:\n")
			for _, r := range out.Final.SessionRows {
				mark := " "
				if r.Selected {
					mark = "x"
				}
				cursor := " "
				if r.Focused {
					cursor = ">"
				}
				sb.WriteString(fmt.Sprintf("  %s[%s] %s\n", cursor, mark, r.Text))
			}
		}

		return sb.String(), nil
	}

	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// ANSI color codes
const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
)

// resolveFilePath attempts to find the actual file path, trying common extensions
// if the exact path doesn't exist. Returns the resolved path and any error.
func resolveFilePath(basePath, scriptsDir string) (string, error) {
	extensions := []string{"", ".yaml", ".yml", ".json"}

	for _, ext := range extensions {
		candidate := basePath + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if filepath.IsAbs(basePath) {
		return "", fmt.Errorf("file not found: %s (tried .yaml, .yml, .json extensions)", basePath)
	}

	for _, ext := range extensions {
		candidate := filepath.Join(scriptsDir, basePath+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched current directory and %s)", basePath, scriptsDir)
}

// ListScripts returns the script files in dir
func ListScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read scripts directory: %w", err)
	}

	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			scripts = append(scripts, filepath.Join(dir, e.Name()))
		}
	}
	return scripts, nil
}
