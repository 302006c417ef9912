package cli

import "github.com/charmbracelet/lipgloss"

// Message styles. Colors degrade to plain text on non-TTY output, so the
// glyphs carry the meaning and the colors are decoration.
var (
	styleInfo = lipgloss.NewStyle().Bold(true)
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func info(msg string) string { return styleInfo.Render(msg) }
func ok(msg string) string   { return styleOK.Render(msg) }
func warn(msg string) string { return styleWarn.Render(msg) }
func fail(msg string) string { return styleFail.Render(msg) }
