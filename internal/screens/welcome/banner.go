package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗██╗███╗   ██╗██████╗  ██████╗██╗  ██╗███████╗ ██████╗██╗  ██╗
 ████╗ ████║██║████╗  ██║██╔══██╗██╔════╝██║  ██║██╔════╝██╔════╝██║ ██╔╝
 ██╔████╔██║██║██╔██╗ ██║██║  ██║██║     ███████║█████╗  ██║     █████╔╝
 ██║╚██╔╝██║██║██║╚██╗██║██║  ██║██║     ██╔══██║██╔══╝  ██║     ██╔═██╗
 ██║ ╚═╝ ██║██║██║ ╚████║██████╔╝╚██████╗██║  ██║███████╗╚██████╗██║  ██╗
 ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "M I N D C H E C K"

// bannerWidth is the widest line of bannerArt plus a margin.
const bannerWidth = 76

// RenderBanner returns the MINDCHECK banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
