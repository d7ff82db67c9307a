// Package tui implements the interactive scope picker.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/snipconv/internal/router"
	"github.com/opencode-ai/snipconv/internal/scope"
	"github.com/opencode-ai/snipconv/internal/tui/styles"
)

const (
	routeScopes = "/scopes"
	routeHelp   = "/help"
)

const (
	minWidth  = 40
	minHeight = 10
)

// Config configures the picker.
type Config struct {
	Theme string
	// Initial lists live template ids checked when the picker opens.
	Initial []string
	Logger  zerolog.Logger
}

// Result is the picker outcome. Confirmed is false when the user quit
// without accepting.
type Result struct {
	Confirmed      bool
	ContextOptions []string
	SnippetScope   string
}

// PickScopes runs the picker until the user confirms or quits.
func PickScopes(cfg Config) (Result, error) {
	m := newModel(cfg)
	defer m.unsubscribe()

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run scope picker: %w", err)
	}
	return final.(model).result(), nil
}

type row struct {
	item  scope.Item
	group bool
}

type model struct {
	width       int
	height      int
	styles      styles.Styles
	router      *router.Router
	unsubscribe func()
	rows        []row
	cursor      int
	selection   *scope.Selection
	confirmed   bool
}

func newModel(cfg Config) model {
	r := router.New(routeScopes)
	logger := cfg.Logger
	unsubscribe := r.Subscribe(func(path string) {
		logger.Debug().Str("path", path).Msg("picker navigated")
	})

	return model{
		styles:      styles.BuildStyles(styles.ThemeByName(cfg.Theme)),
		router:      r,
		unsubscribe: unsubscribe,
		rows:        catalogRows(),
		selection:   scope.NewSelection(cfg.Initial...),
	}
}

func catalogRows() []row {
	var rows []row
	for _, group := range scope.Catalog {
		rows = append(rows, row{item: group.Item, group: true})
		for _, item := range group.Items {
			rows = append(rows, row{item: item})
		}
	}
	return rows
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.router.Path() == routeHelp {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			default:
				m.router.Navigate(routeScopes)
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case " ", "x":
			m.selection.Toggle(m.rows[m.cursor].item.LiveTemplateID)
		case "c":
			m.selection.Clear()
		case "?":
			m.router.Navigate(routeHelp)
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", joinLines(m.smallViewLines()))
		}
	}

	lines := []string{
		m.styles.Title.Render("Select scopes"),
		"",
	}

	if m.router.Path() == routeHelp {
		lines = append(lines, m.helpLines()...)
	} else {
		lines = append(lines, m.scopeLines()...)
	}

	return fmt.Sprintf("%s\n", joinLines(lines))
}

func (m model) scopeLines() []string {
	lines := make([]string, 0, len(m.rows)+6)
	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Focus.Render("> ")
		}

		box := m.styles.Unchecked.Render("[ ]")
		if m.selection.Checked(r.item.LiveTemplateID) {
			box = m.styles.Checked.Render("[x]")
		}

		label := m.styles.Text.Render(r.item.Label)
		indent := "  "
		if r.group {
			label = m.styles.Group.Render(r.item.Label)
			indent = ""
		}
		lines = append(lines, fmt.Sprintf("%s%s%s %s", cursor, indent, box, label))
	}

	scopeValue := m.selection.SnippetScope()
	if scopeValue == "" {
		scopeValue = "--"
	}
	contextValue := strings.Join(m.selection.ContextOptions(), ", ")
	if contextValue == "" {
		contextValue = "--"
	}

	lines = append(lines,
		"",
		m.styles.Muted.Render("scope:   ")+m.styles.Accent.Render(scopeValue),
		m.styles.Muted.Render("context: ")+m.styles.Accent.Render(contextValue),
		"",
		m.styles.Muted.Render("Shortcuts: space toggle | c clear | enter accept | ? help | q quit"),
	)
	return lines
}

func (m model) helpLines() []string {
	return []string{
		m.styles.Accent.Render("Help"),
		m.styles.Text.Render("Checking a language toggles all of its contexts."),
		m.styles.Text.Render("The scope line is the snippet scope; the context line lists live template options."),
		"",
		m.styles.Muted.Render("  up/k, down/j   move"),
		m.styles.Muted.Render("  space/x        toggle"),
		m.styles.Muted.Render("  c              clear"),
		m.styles.Muted.Render("  enter          accept"),
		m.styles.Muted.Render("  q/esc          quit without saving"),
		"",
		m.styles.Muted.Render("Press any key to return."),
	}
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

func (m model) result() Result {
	if !m.confirmed {
		return Result{}
	}
	return Result{
		Confirmed:      true,
		ContextOptions: m.selection.ContextOptions(),
		SnippetScope:   m.selection.SnippetScope(),
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
