// ABOUTME: Storefront screen: products by category with an in-memory cart
// ABOUTME: Built on a bubbles table with a category filter bar

package storefront

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/pickbazar/internal/client"
	"github.com/markalston/pickbazar/internal/tui/icons"
	"github.com/markalston/pickbazar/internal/tui/styles"
	"github.com/markalston/pickbazar/internal/tui/widgets"
)

// Storefront lists products and collects cart intent
type Storefront struct {
	catalog  *client.Catalog
	filter   int // 0 is all categories, otherwise index+1 into catalog.Categories
	products []client.Product
	table    table.Model
	cart     *Cart
	imageURL func(client.Product) string
	notice   string
	width    int
	height   int
}

// New creates the storefront over a loaded catalog. imageURL resolves product
// images for the detail pane and may be nil.
func New(catalog *client.Catalog, cart *Cart, imageURL func(client.Product) string, width, height int) *Storefront {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(styles.Muted).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(styles.Primary)
	t.SetStyles(s)

	sf := &Storefront{catalog: catalog, cart: cart, imageURL: imageURL, table: t}
	sf.SetSize(width, height)
	sf.applyFilter()
	return sf
}

func columns(width int) []table.Column {
	name := max(20, width-50)
	return []table.Column{
		{Title: "Product", Width: name},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 9},
		{Title: "Stock", Width: 6},
		{Title: "Cart", Width: 5},
	}
}

// SetCatalog replaces the catalog after a refresh, keeping the filter when the
// category still exists
func (s *Storefront) SetCatalog(catalog *client.Catalog) {
	var current client.Int
	if s.filter > 0 && s.filter <= len(s.catalog.Categories) {
		current = s.catalog.Categories[s.filter-1].ID
	}
	s.catalog = catalog
	s.filter = 0
	for i, c := range catalog.Categories {
		if c.ID == current {
			s.filter = i + 1
		}
	}
	s.applyFilter()
}

// SetSize updates the dimensions
func (s *Storefront) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetColumns(columns(width))
	// filter bar, detail pane and cart summary take about ten lines
	s.table.SetHeight(max(3, height-10))
}

// Category returns the selected category id, zero for all
func (s *Storefront) Category() client.Int {
	if s.filter == 0 {
		return 0
	}
	return s.catalog.Categories[s.filter-1].ID
}

// Products returns the products shown under the current filter
func (s *Storefront) Products() []client.Product {
	return s.products
}

func (s *Storefront) applyFilter() {
	s.products = s.catalog.FilterByCategory(s.Category())
	s.refreshRows()
}

func (s *Storefront) refreshRows() {
	rows := make([]table.Row, len(s.products))
	for i, p := range s.products {
		category := p.CategoryName()
		if category == "" {
			category = s.catalog.CategoryName(p.CategoryRef())
		}
		inCart := ""
		if q := s.cart.Quantity(p.ID); q > 0 {
			inCart = fmt.Sprintf("%d", q)
		}
		rows[i] = table.Row{p.Name, category, fmt.Sprintf("$%.2f", float64(p.Price)), p.Stock.String(), inCart}
	}
	s.table.SetRows(rows)
	if s.table.Cursor() >= len(rows) {
		s.table.SetCursor(max(0, len(rows)-1))
	}
}

// Selected returns the product under the cursor
func (s *Storefront) Selected() (client.Product, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.products) {
		return client.Product{}, false
	}
	return s.products[i], true
}

func (s *Storefront) Init() tea.Cmd {
	return nil
}

func (s *Storefront) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		s.notice = ""
		switch key.String() {
		case "tab", "right", "l":
			s.filter = (s.filter + 1) % (len(s.catalog.Categories) + 1)
			s.applyFilter()
			return s, nil
		case "shift+tab", "left", "h":
			n := len(s.catalog.Categories) + 1
			s.filter = (s.filter + n - 1) % n
			s.applyFilter()
			return s, nil
		case "a", "enter", "+":
			if p, ok := s.Selected(); ok {
				if s.cart.Add(p) {
					s.notice = "Added " + p.Name
				} else {
					s.notice = "No more " + p.Name + " in stock"
				}
				s.refreshRows()
			}
			return s, nil
		case "x", "-":
			if p, ok := s.Selected(); ok && s.cart.Remove(p.ID) {
				s.notice = "Removed " + p.Name
				s.refreshRows()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *Storefront) View() string {
	var sb strings.Builder

	sb.WriteString(s.renderFilterBar())
	sb.WriteString("\n\n")

	if len(s.products) == 0 {
		sb.WriteString(styles.Subtitle.Render("No products in this category."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(s.table.View())
		sb.WriteString("\n")
		sb.WriteString(s.renderDetail())
	}

	sb.WriteString("\n")
	sb.WriteString(s.renderCart())
	return sb.String()
}

func (s *Storefront) renderFilterBar() string {
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(styles.Primary).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(styles.Muted).Padding(0, 1)

	names := []string{"All"}
	for _, c := range s.catalog.Categories {
		names = append(names, c.Name)
	}

	parts := make([]string, len(names))
	for i, n := range names {
		if i == s.filter {
			parts[i] = active.Render(n)
		} else {
			parts[i] = inactive.Render(n)
		}
	}
	return icons.Category.String() + " " + strings.Join(parts, " ")
}

func (s *Storefront) renderDetail() string {
	p, ok := s.Selected()
	if !ok {
		return ""
	}

	line := styles.ValueStyle.Render(p.Name) + "  " +
		styles.Price.Render(fmt.Sprintf("$%.2f", float64(p.Price))) + "  " +
		widgets.StockBadge(int(p.Stock), client.LowStockThreshold)

	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteString("\n")
	if p.Description != "" {
		sb.WriteString(styles.Subtitle.Render(p.Description))
		sb.WriteString("\n")
	}
	if s.imageURL != nil {
		if url := s.imageURL(p); url != "" {
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(icons.Image.String() + " " + url))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (s *Storefront) renderCart() string {
	summary := fmt.Sprintf("%s %d item(s)  $%.2f", icons.Cart.String(), s.cart.Count(), s.cart.Total())
	out := styles.KeyStyle.Render(summary)
	if s.notice != "" {
		out += "  " + lipgloss.NewStyle().Foreground(styles.Secondary).Render(s.notice)
	}
	return out
}
