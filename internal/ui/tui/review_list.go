// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klauern/flowsync/internal/reconcile"
)

// ReviewAction represents the action to perform after reviewing the plan.
type ReviewAction int

const (
	// ReviewActionNone means no action was taken (user quit).
	ReviewActionNone ReviewAction = iota
	// ReviewActionWrite means the user confirmed writing the helper bundle.
	ReviewActionWrite
)

// ReviewResult contains the result of the review TUI interaction.
type ReviewResult struct {
	Action ReviewAction
}

// reviewKeyMap defines the key bindings for the review list.
type reviewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	OnlyNew  key.Binding
	Filter   key.Binding
	ClearFlt key.Binding
	Confirm  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		OnlyNew: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "toggle new-only"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write bundle"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReviewListModel is the BubbleTea model for interactive plan review.
type ReviewListModel struct {
	table       table.Model
	matches     []reconcile.Match
	filtered    []reconcile.Match
	keys        reviewKeyMap
	result      ReviewResult
	filter      string
	filtering   bool
	onlyNew     bool
	showHelp    bool
	confirmMode bool
	width       int
	height      int
	quitting    bool
	sourceAlias string
	targetAlias string
}

// Styles for the review list TUI.
var reviewStyles = struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Filter   lipgloss.Style
	Input    lipgloss.Style
	Confirm  lipgloss.Style
	Status   lipgloss.Style
	New      lipgloss.Style
	Existing lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Filter:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	Input:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Confirm:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Padding(1, 2),
	Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	New:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Existing: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
}

const (
	reviewStateWidth    = 10
	reviewCategoryWidth = 10
	reviewNameWidth     = 28
	reviewIDWidth       = 20
)

func reviewColumns() []table.Column {
	return []table.Column{
		{Title: "State", Width: reviewStateWidth},
		{Title: "Category", Width: reviewCategoryWidth},
		{Title: "Name", Width: reviewNameWidth},
		{Title: "Source ID", Width: reviewIDWidth},
		{Title: "Target ID", Width: reviewIDWidth},
	}
}

// NewReviewListModel creates a new review list model. Matches keep the plan
// order: category order first, snapshot-A order within a category.
func NewReviewListModel(matches []reconcile.Match, sourceAlias, targetAlias string) ReviewListModel {
	m := ReviewListModel{
		matches:     matches,
		filtered:    matches,
		keys:        defaultReviewKeyMap(),
		sourceAlias: sourceAlias,
		targetAlias: targetAlias,
	}

	t := table.New(
		table.WithColumns(reviewColumns()),
		table.WithRows(m.matchesToRows(matches)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func (m ReviewListModel) matchesToRows(matches []reconcile.Match) []table.Row {
	rows := make([]table.Row, len(matches))
	for i, match := range matches {
		state := "new"
		targetID := "-"
		if match.Existing {
			state = "existing"
			targetID = truncateReviewValue(match.IDB, reviewIDWidth)
		}
		rows[i] = table.Row{
			state,
			truncateReviewValue(match.Record.Category.String(), reviewCategoryWidth),
			truncateReviewValue(match.Record.Name, reviewNameWidth),
			truncateReviewValue(match.Record.ID, reviewIDWidth),
			targetID,
		}
	}
	return rows
}

func truncateReviewValue(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// Init implements tea.Model.
func (m ReviewListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReviewListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

	case tea.KeyMsg:
		// Handle confirmation mode
		if m.confirmMode {
			switch msg.String() {
			case "y", "Y":
				m.result = ReviewResult{Action: ReviewActionWrite}
				m.quitting = true
				return m, tea.Quit
			case "n", "N", "esc":
				m.confirmMode = false
				return m, nil
			}
			return m, nil
		}

		// Handle filtering mode
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				return m, nil
			case "esc":
				m.filter = ""
				m.filtering = false
				m.applyFilter()
				return m, nil
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
				return m, nil
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
				return m, nil
			}
		}

		// Normal mode key handling
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil

		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.OnlyNew):
			m.onlyNew = !m.onlyNew
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Confirm):
			m.confirmMode = true
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ReviewListModel) applyFilter() {
	filtered := m.matches
	if m.onlyNew {
		var next []reconcile.Match
		for _, match := range filtered {
			if !match.Existing {
				next = append(next, match)
			}
		}
		filtered = next
	}
	if m.filter != "" {
		lowerFilter := strings.ToLower(m.filter)
		var next []reconcile.Match
		for _, match := range filtered {
			if strings.Contains(strings.ToLower(match.Record.Name), lowerFilter) ||
				strings.Contains(strings.ToLower(match.Record.Category.String()), lowerFilter) {
				next = append(next, match)
			}
		}
		filtered = next
	}
	m.filtered = filtered
	m.table.SetRows(m.matchesToRows(m.filtered))
}

func (m ReviewListModel) newCount() int {
	n := 0
	for _, match := range m.matches {
		if !match.Existing {
			n++
		}
	}
	return n
}

// View implements tea.Model.
func (m ReviewListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := reviewStyles.Title.Render(fmt.Sprintf("Migration plan: %s → %s", m.sourceAlias, m.targetAlias))
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.filter != "" || m.filtering {
		filterStr := reviewStyles.Filter.Render("Filter: ")
		filterVal := reviewStyles.Input.Render(m.filter)
		if m.filtering {
			filterVal += "█"
		}
		b.WriteString(filterStr + filterVal + "\n\n")
	}

	if m.confirmMode {
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		b.WriteString(reviewStyles.Confirm.Render("Write helper bundle? (y/n)"))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	newCount := m.newCount()
	status := fmt.Sprintf("%d resources: %d new, %d existing", len(m.matches), newCount, len(m.matches)-newCount)
	if m.onlyNew || m.filter != "" {
		status += fmt.Sprintf(" (%d shown)", len(m.filtered))
	}
	b.WriteString(reviewStyles.Status.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m ReviewListModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"n new-only",
		"/ filter",
		"w write",
		"? help",
		"q quit",
	}
	return reviewStyles.Help.Render(strings.Join(keys, " • "))
}

func (m ReviewListModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

View:
  n        Toggle new-only view
  /        Start filtering (by name or category)
  Esc      Clear filter
  Enter    Finish filtering

Actions:
  w        Confirm and write the helper bundle

General:
  ?        Toggle full help
  q        Quit without writing`
	return reviewStyles.Help.Render(help)
}

// Result returns the result of the user interaction.
func (m ReviewListModel) Result() ReviewResult {
	return m.result
}

// RunReviewList runs the interactive plan review and returns the result.
func RunReviewList(matches []reconcile.Match, sourceAlias, targetAlias string) (ReviewResult, error) {
	if len(matches) == 0 {
		return ReviewResult{}, nil
	}

	mdl := NewReviewListModel(matches, sourceAlias, targetAlias)
	finalModel, err := tea.NewProgram(mdl, tea.WithAltScreen()).Run()
	if err != nil {
		return ReviewResult{}, err
	}

	if m, ok := finalModel.(ReviewListModel); ok {
		return m.Result(), nil
	}

	return ReviewResult{}, nil
}
