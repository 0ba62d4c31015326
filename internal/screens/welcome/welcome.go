// Package welcome is the splash shown before the assessment: an emblem
// that starts to pulse, then the banner with a breathing cue.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

const (
	frame       = 100 * time.Millisecond
	pulseAt     = 400 * time.Millisecond
	bannerAt    = time.Second
	splashFor   = 2500 * time.Millisecond
	breathEvery = 8 // frames per breathing cue
)

const emblemArt = `   .-.   .-.
  (   '.'   )
   '.     .'
     '. .'
       '`

const tagline = "A quick check-in on how you're doing"

var (
	pulseFrames = []string{"·", "•"}
	breathCues  = []string{"breathe in", "breathe out"}
)

type stage int

const (
	stageEmblem stage = iota
	stagePulse
	stageBanner
)

type frameMsg time.Time

// WelcomeScreen replaces itself with next() once the splash has run or a
// key is pressed.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frames  int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (w *WelcomeScreen) stage() stage {
	switch {
	case w.elapsed >= bannerAt:
		return stageBanner
	case w.elapsed >= pulseAt:
		return stagePulse
	default:
		return stageEmblem
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frames++
		w.elapsed = min(w.elapsed+frame, splashFor)
		if w.elapsed == splashFor {
			return w, w.finish()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.finish()
	}
	return w, nil
}

// finish builds the next screen exactly once.
func (w *WelcomeScreen) finish() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	s := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

func (w *WelcomeScreen) View(width, height int) string {
	emblem := strings.Split(lipgloss.NewStyle().Foreground(theme.Secondary).Render(emblemArt), "\n")
	if w.stage() >= stagePulse {
		dot := lipgloss.NewStyle().Foreground(theme.Accent).Render(pulseFrames[w.frames%len(pulseFrames)])
		emblem[1] = dot + "  " + emblem[1] + "  " + dot
	}

	parts := []string{strings.Join(emblem, "\n")}
	if w.stage() == stageBanner {
		cue := breathCues[(w.frames/breathEvery)%len(breathCues)]
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			theme.Subtitle.Render(cue),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}
