// ABOUTME: Compact metric block widget for the admin dashboard
// ABOUTME: Title-in-border panels for counts, values and shares

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/tui/icons"
	"github.com/markalston/pickbazar/internal/tui/styles"
)

// DefaultBlockWidth fits three blocks side by side on an 80 column terminal
const DefaultBlockWidth = 24

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns the dashboard defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       DefaultBlockWidth,
		BorderColor: styles.Muted,
		TitleColor:  styles.Primary,
		ValueColor:  styles.Text,
	}
}

// MetricBlock renders a value with a subtitle under a titled border
func MetricBlock(icon icons.Icon, title, value, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = DefaultBlockWidth
	}
	inner := config.Width - 4

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	return box(icon, title, config, []string{
		valueStyle.Render(truncate(value, inner)),
		subtitleStyle.Render(truncate(subtitle, inner)),
	})
}

// CountBlock renders a simple count metric
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// MetricBlockWithBar renders a share (0-100) with a bar colored by level
func MetricBlockWithBar(icon icons.Icon, title string, percent float64, level StatusLevel, details string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = DefaultBlockWidth
	}
	inner := config.Width - 4
	color, _ := level.colors()

	value := fmt.Sprintf("%s %s",
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%3.0f%%", clamp(percent))),
		StatusIcon(level))

	return box(icon, title, config, []string{
		value,
		CompactProgressBar(percent, inner, color),
		lipgloss.NewStyle().Foreground(styles.Muted).Render(truncate(details, inner)),
	})
}

// box draws ┌─ title ─┐ borders around lines padded to the inner width
func box(icon icons.Icon, title string, config MetricBlockConfig, lines []string) string {
	inner := config.Width - 4
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), inner-1)
	fill := max(0, config.Width-5-lipgloss.Width(titleStr))

	out := make([]string, 0, len(lines)+2)
	out = append(out, borderStyle.Render("┌─ ")+titleStyle.Render(titleStr)+borderStyle.Render(" "+strings.Repeat("─", fill)+"┐"))
	for _, l := range lines {
		pad := max(0, inner-lipgloss.Width(l))
		out = append(out, borderStyle.Render("│  ")+l+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}
	out = append(out, borderStyle.Render("└"+strings.Repeat("─", config.Width-2)+"┘"))
	return strings.Join(out, "\n")
}

// truncate shortens s to maxLen runes with an ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
