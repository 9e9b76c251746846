// ABOUTME: Compact bars for stock levels and catalog shares
// ABOUTME: Colors follow the shared status palette

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/tui/styles"
)

// CompactProgressBar renders a minimal bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	percent = clamp(percent)

	filled := int(percent / 100.0 * float64(width))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("░", width-filled))
}

// StockBar shows stock against shelf capacity, colored by stock status
func StockBar(stock, capacity, lowThreshold, width int) string {
	if capacity <= 0 {
		capacity = 1
	}
	percent := float64(stock) / float64(capacity) * 100
	color, _ := StockStatus(stock, lowThreshold).colors()
	return CompactProgressBar(percent, width, color)
}

func clamp(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
