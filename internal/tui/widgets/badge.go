// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Role and stock badges shared by the storefront and admin screens

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/tui/icons"
	"github.com/markalston/pickbazar/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

func (l StatusLevel) colors() (bg, fg lipgloss.Color) {
	switch l {
	case StatusOK:
		return styles.Secondary, lipgloss.Color("#FFFFFF")
	case StatusWarning:
		return styles.Warning, lipgloss.Color("#000000")
	case StatusCritical:
		return styles.Danger, lipgloss.Color("#FFFFFF")
	case StatusInfo:
		return styles.Info, lipgloss.Color("#FFFFFF")
	default:
		return styles.Muted, lipgloss.Color("#FFFFFF")
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := level.colors()
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StockStatus classifies a stock count against the low-stock threshold
func StockStatus(stock, lowThreshold int) StatusLevel {
	switch {
	case stock <= 0:
		return StatusCritical
	case stock < lowThreshold:
		return StatusWarning
	default:
		return StatusOK
	}
}

// StockBadge renders IN STOCK, LOW or SOLD OUT
func StockBadge(stock, lowThreshold int) string {
	switch level := StockStatus(stock, lowThreshold); level {
	case StatusCritical:
		return Badge("SOLD OUT", level)
	case StatusWarning:
		return Badge(fmt.Sprintf("LOW %d", stock), level)
	default:
		return Badge("IN STOCK", level)
	}
}

// RoleBadge renders the session role. An empty role is a guest.
func RoleBadge(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return Badge(icons.Admin.String()+" ADMIN", StatusInfo)
	case "":
		return Badge("GUEST", StatusNeutral)
	default:
		return Badge(strings.ToUpper(role), StatusOK)
	}
}

// StatusIcon returns the colored icon for a status level
func StatusIcon(level StatusLevel) string {
	color, _ := level.colors()
	var icon string
	switch level {
	case StatusOK:
		icon = icons.CheckOK.String()
	case StatusWarning:
		icon = icons.Warning.String()
	case StatusCritical:
		icon = icons.Critical.String()
	default:
		icon = "•"
	}
	return lipgloss.NewStyle().Foreground(color).Render(icon)
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	color, _ := level.colors()
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(color).Render(text))
}
