package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/ui/components"
	"github.com/abhisek/mindcheck/internal/ui/theme"
	"github.com/abhisek/mindcheck/internal/wizard"
)

const intro = "Answer a few short questions about your studies, sleep and\n" +
	"wellbeing. Your answers are scored by a screening service.\n" +
	"This is not a diagnosis."

func (s *AssessmentScreen) View(width, height int) string {
	snap := s.ctl.Snapshot()

	var content string
	switch snap.Phase {
	case wizard.PhaseAnswering:
		content = s.renderQuestion(snap, width)
	case wizard.PhaseResult:
		content = renderResult(snap)
	default:
		content = s.renderWelcome()
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *AssessmentScreen) renderWelcome() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(catalog.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(intro))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	return b.String()
}

func (s *AssessmentScreen) renderQuestion(snap wizard.Snapshot, width int) string {
	cardWidth := min(width-8, 72)
	if cardWidth < 40 {
		cardWidth = 40
	}

	var b strings.Builder

	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", snap.Step, snap.Total),
		snap.Progress, cardWidth,
	)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cardWidth - 6).
		Render(snap.Question.Text))
	card.WriteString("\n")
	card.WriteString(theme.Hint.Render(snap.Question.Kind.DisplayName()))
	card.WriteString("\n\n")
	card.WriteString(s.renderInput(snap.Question))
	b.WriteString(theme.Card.Width(cardWidth).Render(card.String()))
	b.WriteString("\n\n")

	b.WriteString(renderButtons(snap))

	switch {
	case snap.Submitting:
		b.WriteString("\n\n")
		b.WriteString(s.spinner.View() + " " + theme.Body.Render("Submitting your answers..."))
	case snap.Err != "":
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(cardWidth).Render(snap.Err))
	}

	return b.String()
}

func (s *AssessmentScreen) renderInput(q catalog.Question) string {
	switch q.Kind {
	case catalog.KindChoice:
		return s.choice.View()
	case catalog.KindScale:
		return s.scale.View()
	case catalog.KindInteger:
		return "Answer: " + s.input.View()
	default:
		return ""
	}
}

func renderButtons(snap wizard.Snapshot) string {
	prev := components.NewButton("Previous", snap.CanRetreat)

	label := "Next"
	if snap.IsLastStep {
		label = "Submit"
	}
	next := components.NewButton(label, snap.CanAdvance)
	next.Focused = snap.CanAdvance

	return lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "  ", next.View())
}

func renderResult(snap wizard.Snapshot) string {
	r := snap.Result
	if r == nil {
		return ""
	}

	headline := theme.RiskClear.Render("No signs of depression detected")
	if r.HasPotentialDepression {
		headline = theme.RiskFlagged.Render("Potential signs of depression")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your result"))
	b.WriteString("\n\n")
	b.WriteString(headline)
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %s", formatScore(r.Score))))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(r.Message))
	b.WriteString("\n\n")
	again := components.NewButton("Take again", true)
	again.Focused = true
	b.WriteString(again.View())
	if r.HasPotentialDepression {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("If you are struggling, please reach out to someone you trust\nor a mental health professional."))
	}

	return theme.Card.Render(b.String())
}

// formatScore drops a trailing ".00" so whole scores read as integers.
func formatScore(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return strings.TrimSuffix(s, ".00")
}
