// Package history shows past submissions read back from the local event
// store.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// DefaultLimit is how many submissions the screen loads.
const DefaultLimit = 50

const timeLayout = "Jan 02, 2006 15:04"

type loadedMsg struct {
	subs     []store.SubmissionEvent
	sessions []store.SessionEvent
	err      error
}

type Option func(*HistoryScreen)

// WithContext bounds store queries.
func WithContext(ctx context.Context) Option {
	return func(s *HistoryScreen) { s.ctx = ctx }
}

// WithCatalog labels stored answers with their question text.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *HistoryScreen) { s.cat = c }
}

func WithLimit(n int) Option {
	return func(s *HistoryScreen) { s.limit = n }
}

// HistoryScreen lists submissions newest first. Enter opens the selected
// row to show the message and the answers that were sent.
type HistoryScreen struct {
	ctx   context.Context
	repo  store.EventRepo
	cat   *catalog.Catalog
	limit int

	subs     []store.SubmissionEvent
	sessions []store.SessionEvent
	loaded   bool
	err      error
	selected int
	open     int // index of the expanded row, -1 when none
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.EventRepo, opts ...Option) *HistoryScreen {
	s := &HistoryScreen{
		ctx:   context.Background(),
		repo:  repo,
		limit: DefaultLimit,
		open:  -1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) load() tea.Msg {
	subs, err := s.repo.Submissions(s.ctx, store.QueryOpts{Limit: s.limit})
	if err != nil {
		return loadedMsg{err: err}
	}
	sessions, err := s.repo.SessionEvents(s.ctx, store.QueryOpts{})
	if err != nil {
		return loadedMsg{err: fmt.Errorf("session events: %w", err)}
	}
	return loadedMsg{subs: subs, sessions: sessions}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.err = msg.err
		s.subs = msg.subs
		s.sessions = msg.sessions
		s.selected = min(s.selected, max(len(s.subs)-1, 0))
		s.open = -1
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			s.loaded, s.err = false, nil
			return s, s.load
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = max(min(s.selected+1, len(s.subs)-1), 0)
		case "enter", "space":
			if s.open == s.selected {
				s.open = -1
			} else if s.selected < len(s.subs) {
				s.open = s.selected
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.err != nil:
		return centered.Foreground(theme.Error).Render("\n\nCould not load history: " + s.err.Error())
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.subs) == 0:
		return centered.Foreground(theme.TextDim).Italic(true).Render("\n\nNo assessments yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered.Render(theme.Hint.Render(s.summary())))
	b.WriteString("\n")
	b.WriteString(centered.Render(theme.Hint.Render(SessionSummary(s.sessions))))
	b.WriteString("\n\n")

	first, last := s.window(height - 5)
	for i := first; i < last; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRow(i)))
		b.WriteString("\n")
		if i == s.open {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderDetails(s.subs[i].SubmissionEventData)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) summary() string {
	var flagged, failed int
	for _, e := range s.subs {
		switch {
		case !e.Success:
			failed++
		case e.HasPotentialDepression:
			flagged++
		}
	}
	return fmt.Sprintf("%d submissions, %d flagged, %d failed", len(s.subs), flagged, failed)
}

// SessionSummary counts wizard runs by lifecycle action.
func SessionSummary(events []store.SessionEvent) string {
	counts := make(map[string]int, 3)
	for _, e := range events {
		counts[e.Action]++
	}
	return fmt.Sprintf("%d started, %d completed, %d reset",
		counts[store.ActionStart], counts[store.ActionComplete], counts[store.ActionReset])
}

// window returns the row range that keeps the selection visible in rows
// lines. The open row is not counted.
func (s *HistoryScreen) window(rows int) (int, int) {
	rows = max(rows, 1)
	if len(s.subs) <= rows {
		return 0, len(s.subs)
	}
	first := max(s.selected-rows+1, 0)
	return first, first + rows
}

func (s *HistoryScreen) renderRow(i int) string {
	e := s.subs[i]
	cursor := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case i == s.selected:
		cursor = "▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	case !e.Success:
		style = style.Foreground(theme.TextDim)
	}
	return style.Render(fmt.Sprintf("%s%s  %-40s %6dms",
		cursor, e.Timestamp.Local().Format(timeLayout), Outcome(e.SubmissionEventData), e.LatencyMs))
}

func (s *HistoryScreen) renderDetails(sub store.SubmissionEventData) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var lines []string
	switch {
	case sub.Success && sub.Message != "":
		lines = append(lines, theme.Body.Render(sub.Message))
	case !sub.Success && sub.ErrorMessage != "":
		lines = append(lines, theme.ErrorText.Render(sub.ErrorMessage))
	}
	for _, l := range AnswerLines(sub.Answers, s.cat) {
		lines = append(lines, dim.Render(l))
	}
	if len(lines) == 0 {
		lines = append(lines, dim.Italic(true).Render("No details recorded"))
	}
	return "    " + strings.Join(lines, "\n    ")
}

// Outcome summarizes a submission in a few words.
func Outcome(sub store.SubmissionEventData) string {
	if !sub.Success {
		if sub.StatusCode != 0 {
			return fmt.Sprintf("failed (HTTP %d)", sub.StatusCode)
		}
		return "failed"
	}
	verdict := "no indication"
	if sub.HasPotentialDepression {
		verdict = "potential depression"
	}
	return fmt.Sprintf("score %.2f, %s", sub.Score, verdict)
}

// AnswerLines turns a stored request body into "label: value" lines. With
// a catalog, known fields are labelled with their question text and listed
// in question order; other fields follow sorted by name. An undecodable
// body yields no lines.
func AnswerLines(body string, cat *catalog.Catalog) []string {
	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil
	}

	lines := make([]string, 0, len(fields))
	if cat != nil {
		for _, q := range cat.All() {
			if v, ok := fields[q.Field]; ok {
				lines = append(lines, fmt.Sprintf("%s: %v", q.Text, v))
				delete(fields, q.Field)
			}
		}
	}

	rest := make([]string, 0, len(fields))
	for k := range fields {
		rest = append(rest, k)
	}
	slices.Sort(rest)
	for _, k := range rest {
		lines = append(lines, fmt.Sprintf("%s: %v", k, fields[k]))
	}
	return lines
}
