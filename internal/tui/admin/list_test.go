// ABOUTME: Tests for the admin tables
// ABOUTME: Validates rows, selection and empty states

package admin

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/pickbazar/internal/client"
)

func testCatalog() *client.Catalog {
	return &client.Catalog{
		Categories: []client.Category{{ID: 1, Name: "Fruit"}, {ID: 2, Name: "Dairy", Description: "Milk and cheese"}},
		Products: []client.Product{
			{ID: 10, Name: "Apples", Price: 2.5, Stock: 40, CategoryID: 1},
			{ID: 11, Name: "Milk", Price: 1.2, Stock: 3, CategoryID: 2},
			{ID: 12, Name: "Cheese", Price: 6, Stock: 0, CategoryID: 2},
		},
	}
}

func TestProductListRows(t *testing.T) {
	l := NewProductList(testCatalog())

	if l.Len() != 3 {
		t.Fatalf("expected 3 products, got %d", l.Len())
	}
	view := l.View()
	for _, want := range []string{"Products (3)", "Apples", "Fruit", "$2.50", "low", "sold out"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestProductListSelection(t *testing.T) {
	l := NewProductList(testCatalog())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, ok := l.Selected()
	if !ok || p.Name != "Milk" {
		t.Errorf("expected Milk selected, got %+v", p)
	}
}

func TestSetItemsClampsCursor(t *testing.T) {
	l := NewProductList(testCatalog())
	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyDown})

	l.SetItems(testCatalog().Products[:1])

	p, ok := l.Selected()
	if !ok || p.Name != "Apples" {
		t.Errorf("expected cursor clamped to Apples, got %+v", p)
	}
}

func TestCategoryListCounts(t *testing.T) {
	l := NewCategoryList(testCatalog())

	view := l.View()
	if !strings.Contains(view, "Categories (2)") || !strings.Contains(view, "Milk and cheese") {
		t.Errorf("unexpected view %s", view)
	}
	c, ok := l.Selected()
	if !ok || c.Name != "Fruit" {
		t.Errorf("expected Fruit selected, got %+v", c)
	}
}

func TestEmptyList(t *testing.T) {
	l := NewCategoryList(&client.Catalog{})

	if _, ok := l.Selected(); ok {
		t.Error("expected no selection")
	}
	if !strings.Contains(l.View(), "Press n to add one") {
		t.Error("expected empty hint")
	}
}
