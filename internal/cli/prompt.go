package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type scriptItem struct {
	path string
}

func (i scriptItem) FilterValue() string { return filepath.Base(i.path) }
func (i scriptItem) Title() string       { return filepath.Base(i.path) }
func (i scriptItem) Description() string { return "" }

type selectorModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Let the list handle keys while its filter is open
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = ""
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(scriptItem); ok {
				m.choice = i.path
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: run • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

func newSelector(paths []string) selectorModel {
	items := make([]list.Item, len(paths))
	for i, p := range paths {
		items[i] = scriptItem{path: p}
	}

	height := len(paths) + 4
	if height > 20 {
		height = 20
	}

	l := list.New(items, itemDelegate{}, 50, height)
	l.Title = "Select a script"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return selectorModel{list: l}
}

// PromptForScript shows an interactive list of scripts and returns the
// chosen path
func PromptForScript(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("no scripts found")
	}
	if !isInteractive() {
		return "", fmt.Errorf("a script path is required when stdin is not a terminal")
	}

	final, err := tea.NewProgram(newSelector(paths), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run selector: %w", err)
	}

	result, ok := final.(selectorModel)
	if !ok || result.choice == "" {
		return "", fmt.Errorf("selection cancelled")
	}

	return result.choice, nil
}

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(scriptItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
