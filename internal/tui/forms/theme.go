// ABOUTME: huh theme shared by every console form
// ABOUTME: Matches the storefront's green palette

package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/tui/styles"
)

// Theme returns the console form theme
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	green := styles.Primary
	mint := styles.Accent
	gray := lipgloss.Color("#9CA3AF")
	light := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().Foreground(green).Bold(true).MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().Foreground(gray).MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(green)
	t.Focused.Title = lipgloss.NewStyle().Foreground(mint).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(red).SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(green).SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().Foreground(light)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green).Bold(true)
	t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(green).MarginLeft(1).SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(green).MarginRight(1).SetString("←")

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(green)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(green)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(light)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(green).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(gray).SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().Foreground(gray)

	return t
}
