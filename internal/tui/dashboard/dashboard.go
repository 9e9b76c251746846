// ABOUTME: Admin dashboard summarizing the loaded catalog
// ABOUTME: Metric blocks for counts and inventory value plus a restock list

package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/tui/icons"
	"github.com/markalston/pickbazar/internal/tui/styles"
	"github.com/markalston/pickbazar/internal/tui/widgets"
)

// maxRestockRows caps the restock list
const maxRestockRows = 8

// Dashboard displays catalog metrics
type Dashboard struct {
	catalog *client.Catalog
	width   int
	height  int
}

// New creates a dashboard over a catalog, which may be nil while loading
func New(catalog *client.Catalog, width, height int) *Dashboard {
	return &Dashboard{catalog: catalog, width: width, height: height}
}

// Update swaps in a refreshed catalog
func (d *Dashboard) Update(catalog *client.Catalog) {
	d.catalog = catalog
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.catalog == nil {
		return styles.Panel.Width(d.width).Render("Loading catalog...")
	}

	stats := d.catalog.Stats()
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Admin.String() + " Store Overview"))
	sb.WriteString("\n\n")
	sb.WriteString(d.renderBlocks(stats))
	sb.WriteString("\n\n")
	sb.WriteString(d.renderRestock())

	return lipgloss.NewStyle().Width(d.width).Height(d.height).Render(sb.String())
}

func (d *Dashboard) renderBlocks(stats client.Stats) string {
	cfg := widgets.DefaultMetricBlockConfig()

	inStock := 100.0
	if stats.Products > 0 {
		inStock = float64(stats.Products-stats.OutOfStock) / float64(stats.Products) * 100
	}
	level := widgets.StatusOK
	switch {
	case stats.OutOfStock > 0:
		level = widgets.StatusCritical
	case stats.LowStock > 0:
		level = widgets.StatusWarning
	}

	blocks := []string{
		widgets.CountBlock(icons.Product, "Products", stats.Products, fmt.Sprintf("%d low stock", stats.LowStock), cfg),
		widgets.CountBlock(icons.Category, "Categories", stats.Categories, "in catalog", cfg),
		widgets.MetricBlock(icons.Money, "Inventory", fmt.Sprintf("$%.2f", stats.TotalValue), "price x stock", cfg),
		widgets.MetricBlockWithBar(icons.Stock, "In Stock", inStock, level, fmt.Sprintf("%d sold out", stats.OutOfStock), cfg),
	}

	// two per row below the width of four blocks
	perRow := 4
	if d.width > 0 && d.width < 4*cfg.Width+3 {
		perRow = 2
	}
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(blocks[i:end])...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func spaced(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}

// Restock returns products under the low stock threshold, emptiest first
func (d *Dashboard) Restock() []client.Product {
	if d.catalog == nil {
		return nil
	}
	var low []client.Product
	for _, p := range d.catalog.Products {
		if p.Stock < client.LowStockThreshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	return low
}

func (d *Dashboard) renderRestock() string {
	low := d.Restock()

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(icons.Warning.String() + " Needs restock"))
	sb.WriteString("\n")
	if len(low) == 0 {
		sb.WriteString(styles.StatusOK.Render("All products are well stocked."))
		return sb.String()
	}

	capacity := client.LowStockThreshold
	for i, p := range low {
		if i == maxRestockRows {
			sb.WriteString(styles.Help.Render(fmt.Sprintf("  ...and %d more", len(low)-maxRestockRows)))
			break
		}
		fmt.Fprintf(&sb, "  %-24s %s %s\n",
			truncateName(p.Name, 24),
			widgets.StockBar(int(p.Stock), capacity, client.LowStockThreshold, 10),
			widgets.StockBadge(int(p.Stock), client.LowStockThreshold))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
