// ABOUTME: Table lists for the product and category admin screens
// ABOUTME: The app drives create, edit and delete from the selected row

package admin

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

// List is a titled table of items
type List[T any] struct {
	title string
	icon  icons.Icon
	items []T
	row   func(T) table.Row
	table table.Model
}

func newList[T any](title string, icon icons.Icon, cols []table.Column, row func(T) table.Row) *List[T] {
	t := table.New(table.WithColumns(cols), table.WithFocused(true))
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(styles.Muted).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(styles.Primary)
	t.SetStyles(s)
	return &List[T]{title: title, icon: icon, row: row, table: t}
}

// SetItems replaces the rows
func (l *List[T]) SetItems(items []T) {
	l.items = items
	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = l.row(it)
	}
	l.table.SetRows(rows)
	if l.table.Cursor() >= len(rows) {
		l.table.SetCursor(max(0, len(rows)-1))
	}
}

// Len returns the number of items
func (l *List[T]) Len() int {
	return len(l.items)
}

// Selected returns the item under the cursor
func (l *List[T]) Selected() (T, bool) {
	var zero T
	i := l.table.Cursor()
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// SetHeight sets the visible rows
func (l *List[T]) SetHeight(h int) {
	l.table.SetHeight(max(3, h))
}

// Update moves the cursor
func (l *List[T]) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return cmd
}

func (l *List[T]) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s (%d)", l.icon.String(), l.title, len(l.items))))
	sb.WriteString("\n")
	if len(l.items) == 0 {
		sb.WriteString(styles.Subtitle.Render("Nothing here yet. Press n to add one."))
		return sb.String()
	}
	sb.WriteString(l.table.View())
	return sb.String()
}

// ProductList is the admin product table
type ProductList = List[client.Product]

// NewProductList lists products, naming categories from the catalog
func NewProductList(catalog *client.Catalog) *ProductList {
	cols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 9},
		{Title: "Stock", Width: 6},
		{Title: "Status", Width: 10},
	}
	l := newList("Products", icons.Product, cols, func(p client.Product) table.Row {
		category := p.CategoryName()
		if category == "" {
			category = catalog.CategoryName(p.CategoryRef())
		}
		return table.Row{p.ID.String(), p.Name, category, fmt.Sprintf("$%.2f", float64(p.Price)), p.Stock.String(), stockLabel(int(p.Stock))}
	})
	l.SetItems(catalog.Products)
	return l
}

func stockLabel(stock int) string {
	switch widgets.StockStatus(stock, client.LowStockThreshold) {
	case widgets.StatusCritical:
		return "sold out"
	case widgets.StatusWarning:
		return "low"
	default:
		return "ok"
	}
}

// CategoryList is the admin category table
type CategoryList = List[client.Category]

// NewCategoryList lists categories with their product counts
func NewCategoryList(catalog *client.Catalog) *CategoryList {
	cols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 20},
		{Title: "Products", Width: 9},
		{Title: "Description", Width: 30},
	}
	l := newList("Categories", icons.Category, cols, func(c client.Category) table.Row {
		return table.Row{c.ID.String(), c.Name, fmt.Sprintf("%d", len(catalog.FilterByCategory(c.ID))), c.Description}
	})
	l.SetItems(catalog.Categories)
	return l
}
