// Package app assembles the interactive program: the screen router, the
// frame drawn around the active screen, and the global keys.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/screens/assessment"
	"github.com/abhisek/mindcheck/internal/screens/history"
	"github.com/abhisek/mindcheck/internal/screens/welcome"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/wizard"
)

type Options struct {
	Controller *wizard.Controller

	// EventRepo enables the history screen. Nil disables it.
	EventRepo store.EventRepo

	// SkipSplash starts directly on the assessment screen.
	SkipSplash bool

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	logger *zap.Logger
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var historyScreen func() screen.Screen
	if repo := opts.EventRepo; repo != nil {
		historyScreen = func() screen.Screen {
			return history.New(repo,
				history.WithContext(ctx),
				history.WithCatalog(opts.Controller.Catalog()))
		}
	}
	assessmentScreen := func() screen.Screen {
		aopts := []assessment.Option{assessment.WithContext(ctx)}
		if historyScreen != nil {
			aopts = append(aopts, assessment.WithHistory(historyScreen))
		}
		return assessment.New(opts.Controller, aopts...)
	}

	var root screen.Screen = welcome.New(assessmentScreen)
	if opts.SkipSplash {
		root = assessmentScreen()
	}
	return AppModel{router: router.New(root), logger: logger}
}

func (m AppModel) Init() tea.Cmd {
	if s := m.router.Active(); s != nil {
		return s.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if cmd, handled := m.escape(); handled {
				return m, cmd
			}
		}

	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		cmd := m.router.Update(msg)
		m.logger.Debug("navigate",
			zap.String("msg", fmt.Sprintf("%T", msg)),
			zap.String("screen", fmt.Sprintf("%T", m.router.Active())),
			zap.Int("depth", m.router.Depth()))
		return m, cmd
	}

	return m, m.router.Update(msg)
}

// escape pops the active screen unless it takes Esc itself. Esc on the
// root screen is swallowed.
func (m AppModel) escape() (tea.Cmd, bool) {
	if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
		return nil, false
	}
	if m.router.Depth() > 1 {
		return func() tea.Msg { return router.PopScreenMsg{} }, true
	}
	return nil, true
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header, footer := m.chrome(active)
	body := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, body), footer, m.width, m.height)
}

func (m AppModel) chrome(active screen.Screen) (header, footer string) {
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.HeaderStatus()
		}
	}
	return layout.RenderHeader(title, status, m.width),
		layout.RenderFooter(m.footerHints(active), m.width)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	first := layout.KeyHint{Key: "any key", Description: "Continue"}
	if m.router.Depth() > 1 {
		first = layout.KeyHint{Key: "Esc", Description: "Back"}
	}
	return []layout.KeyHint{first, {Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the program and blocks until it exits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: controller is required")
	}
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
