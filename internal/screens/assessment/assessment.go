package assessment

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/ui/components"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
	"github.com/abhisek/mindcheck/internal/wizard"
)

// AssessmentScreen presents the wizard: the welcome menu, one question per
// step and the result.
type AssessmentScreen struct {
	ctx            context.Context
	ctl            *wizard.Controller
	historyFactory func() screen.Screen

	menu    components.Menu
	spinner spinner.Model

	// Input widgets for the current step. boundSession and boundStep record
	// which question they were built for.
	choice       components.ChoiceList
	scale        components.ScaleSelector
	input        components.NumberInput
	boundSession string
	boundStep    int
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.StatusProvider = (*AssessmentScreen)(nil)
var _ screen.EscapeHandler = (*AssessmentScreen)(nil)

// Option configures an AssessmentScreen.
type Option func(*AssessmentScreen)

// WithHistory enables the "View history" menu entry.
func WithHistory(factory func() screen.Screen) Option {
	return func(s *AssessmentScreen) {
		s.historyFactory = factory
	}
}

// WithContext sets the context submissions run under.
func WithContext(ctx context.Context) Option {
	return func(s *AssessmentScreen) {
		s.ctx = ctx
	}
}

// New creates an AssessmentScreen driving ctl.
func New(ctl *wizard.Controller, opts ...Option) *AssessmentScreen {
	s := &AssessmentScreen{
		ctx: context.Background(),
		ctl: ctl,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.menu = s.welcomeMenu()
	return s
}

func (s *AssessmentScreen) welcomeMenu() components.Menu {
	items := []components.MenuItem{
		{
			Label:       "Start assessment",
			Description: fmt.Sprintf("%d questions", s.ctl.Catalog().Len()),
			Shortcut:    "s",
			Action: func() tea.Cmd {
				return func() tea.Msg { return startMsg{} }
			},
		},
		{
			Label:       "View history",
			Description: "Past submissions",
			Shortcut:    "h",
			Disabled:    s.historyFactory == nil,
			Action: func() tea.Cmd {
				hs := s.historyFactory()
				return func() tea.Msg { return router.PushScreenMsg{Screen: hs} }
			},
		},
		{
			Label:    "Quit",
			Shortcut: "q",
			Action:   func() tea.Cmd { return tea.Quit },
		},
	}
	return components.NewMenu(items)
}

func (s *AssessmentScreen) Init() tea.Cmd {
	return s.bind()
}

func (s *AssessmentScreen) Title() string {
	return catalog.Title
}

// HeaderStatus shows the step counter while answering.
func (s *AssessmentScreen) HeaderStatus() string {
	snap := s.ctl.Snapshot()
	switch snap.Phase {
	case wizard.PhaseAnswering:
		return fmt.Sprintf("%d/%d  ", snap.Step, snap.Total)
	case wizard.PhaseResult:
		return "Done  "
	default:
		return ""
	}
}

// HandlesEscape reports whether Esc abandons the current run instead of
// leaving the screen.
func (s *AssessmentScreen) HandlesEscape() bool {
	return s.ctl.Snapshot().Phase != wizard.PhaseWelcome
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	snap := s.ctl.Snapshot()
	switch snap.Phase {
	case wizard.PhaseAnswering:
		if snap.Submitting {
			return []layout.KeyHint{
				{Key: "Esc", Description: "Cancel"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
		hints := inputHints(snap.Question.Kind)
		next := "Next"
		if snap.IsLastStep {
			next = "Submit"
		}
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: next},
			layout.KeyHint{Key: "Shift+Tab", Description: "Previous"},
			layout.KeyHint{Key: "Esc", Description: "Start over"},
		)
		return hints
	case wizard.PhaseResult:
		return []layout.KeyHint{
			{Key: "R", Description: "Take again"},
			{Key: "Esc", Description: "Home"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func inputHints(kind catalog.Kind) []layout.KeyHint {
	switch kind {
	case catalog.KindChoice:
		return []layout.KeyHint{{Key: "↑↓ Space", Description: "Choose"}}
	case catalog.KindScale:
		return []layout.KeyHint{{Key: "←→", Description: "Adjust"}}
	default:
		return []layout.KeyHint{{Key: "0-9", Description: "Type"}}
	}
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		if err := s.ctl.Start(); err != nil {
			return s, nil
		}
		return s, s.bind()

	case submitDoneMsg:
		// A stale reply belongs to a run that was reset; the screen has
		// already moved on.
		if errors.Is(msg.Err, wizard.ErrStale) {
			return s, nil
		}
		return s, s.bind()

	case spinner.TickMsg:
		if !s.ctl.Snapshot().Submitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other internal messages go to the text input.
	if snap := s.ctl.Snapshot(); snap.Phase == wizard.PhaseAnswering && snap.Question.Kind == catalog.KindInteger {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	snap := s.ctl.Snapshot()

	switch snap.Phase {
	case wizard.PhaseWelcome:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case wizard.PhaseResult:
		switch msg.String() {
		case "r", "enter":
			s.ctl.Reset()
			return s, s.startFresh()
		case "esc":
			s.ctl.Reset()
			return s, s.bind()
		}
		return s, nil
	}

	// Answering.
	switch msg.String() {
	case "esc":
		s.ctl.Reset()
		return s, s.bind()
	}
	if snap.Submitting {
		return s, nil
	}

	switch msg.String() {
	case "enter", "tab":
		return s, s.next()
	case "shift+tab":
		if s.ctl.Retreat() {
			return s, s.bind()
		}
		return s, nil
	}

	return s, s.updateInput(snap.Question, msg)
}

// startFresh begins a new run straight after a reset.
func (s *AssessmentScreen) startFresh() tea.Cmd {
	_ = s.ctl.Start()
	return s.bind()
}

// next advances the wizard, submitting on the last step.
func (s *AssessmentScreen) next() tea.Cmd {
	switch s.ctl.Advance() {
	case wizard.AdvanceMoved:
		return s.bind()
	case wizard.AdvanceSubmit:
		return s.submit()
	default:
		return nil
	}
}

// submit marks the wizard as submitting and runs the request off the UI
// goroutine.
func (s *AssessmentScreen) submit() tea.Cmd {
	sub, err := s.ctl.BeginSubmit()
	if err != nil {
		return nil
	}
	ctx := s.ctx
	run := func() tea.Msg {
		return submitDoneMsg{Err: sub.Run(ctx)}
	}
	return tea.Batch(run, s.spinner.Tick)
}

// updateInput forwards a key to the widget of the current question and
// records the answer when it changes.
func (s *AssessmentScreen) updateInput(q catalog.Question, msg tea.KeyMsg) tea.Cmd {
	switch q.Kind {
	case catalog.KindChoice:
		var changed bool
		s.choice, changed = s.choice.Update(msg)
		if changed {
			_ = s.ctl.RecordAnswer(q.ID, catalog.Choice(s.choice.Chosen))
		}
		return nil

	case catalog.KindScale:
		var changed bool
		s.scale, changed = s.scale.Update(msg)
		if changed {
			_ = s.ctl.RecordAnswer(q.ID, catalog.Scale(s.scale.Value))
		}
		return nil

	case catalog.KindInteger:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if n, ok := s.input.Int(); ok {
			_ = s.ctl.RecordAnswer(q.ID, catalog.Integer(n))
		} else {
			_ = s.ctl.RecordAnswer(q.ID, catalog.Answer{})
		}
		return cmd
	}
	return nil
}

// bind rebuilds the input widgets when the wizard is on a different
// question than the one they show.
func (s *AssessmentScreen) bind() tea.Cmd {
	snap := s.ctl.Snapshot()
	if snap.Phase != wizard.PhaseAnswering {
		s.boundSession, s.boundStep = "", 0
		if snap.Phase == wizard.PhaseWelcome {
			s.menu = s.welcomeMenu()
		}
		return nil
	}
	if snap.SessionID == s.boundSession && snap.Step == s.boundStep {
		return nil
	}
	s.boundSession, s.boundStep = snap.SessionID, snap.Step

	q, a := snap.Question, snap.Answer
	switch q.Kind {
	case catalog.KindChoice:
		s.choice = components.NewChoiceList(q.Options, a.Label())
	case catalog.KindScale:
		s.scale = components.NewScaleSelector(q.Min, q.Max, a.Number(), a.Complete())
	case catalog.KindInteger:
		s.input = components.NewNumberInput("hours", 4)
		if a.Complete() {
			s.input.Set(a.Number())
		}
		return s.input.Init()
	}
	return nil
}
