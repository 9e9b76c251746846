// ABOUTME: Tests for dashboard component
// ABOUTME: Validates catalog metrics and the restock list

package dashboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/markalston/pickbazar/internal/client"
)

func testCatalog() *client.Catalog {
	return &client.Catalog{
		Categories: []client.Category{{ID: 1, Name: "Fruit"}, {ID: 2, Name: "Dairy"}},
		Products: []client.Product{
			{ID: 10, Name: "Apples", Price: 2.5, Stock: 40, CategoryID: 1},
			{ID: 11, Name: "Milk", Price: 1.2, Stock: 3, CategoryID: 2},
			{ID: 12, Name: "Cheese", Price: 6, Stock: 0, CategoryID: 2},
		},
	}
}

func TestDashboardView(t *testing.T) {
	d := New(testCatalog(), 120, 30)
	view := d.View()

	for _, want := range []string{"Store Overview", "Products", "Categories", "$103.60", "1 sold out", "Needs restock", "Milk", "Cheese"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\nView:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Apples") {
		t.Error("well stocked product should not be in the restock list")
	}
}

func TestDashboardNilCatalog(t *testing.T) {
	d := New(nil, 80, 24)

	if !strings.Contains(d.View(), "Loading") {
		t.Error("expected loading message when catalog is nil")
	}
	if d.Restock() != nil {
		t.Error("expected no restock list without a catalog")
	}
}

func TestDashboardUpdate(t *testing.T) {
	d := New(nil, 120, 30)
	d.Update(testCatalog())

	if strings.Contains(d.View(), "Loading") {
		t.Error("expected catalog view after update")
	}
}

func TestRestockOrder(t *testing.T) {
	d := New(testCatalog(), 120, 30)

	low := d.Restock()
	if len(low) != 2 {
		t.Fatalf("expected 2 products to restock, got %d", len(low))
	}
	if low[0].Name != "Cheese" || low[1].Name != "Milk" {
		t.Errorf("expected emptiest first, got %s then %s", low[0].Name, low[1].Name)
	}
}

func TestRestockTruncated(t *testing.T) {
	cat := &client.Catalog{}
	for i := range 12 {
		cat.Products = append(cat.Products, client.Product{ID: client.Int(i + 1), Name: fmt.Sprintf("Item %d", i), Stock: 1})
	}
	d := New(cat, 120, 40)

	if !strings.Contains(d.View(), "...and 4 more") {
		t.Error("expected overflow line for long restock list")
	}
}

func TestWellStocked(t *testing.T) {
	cat := &client.Catalog{Products: []client.Product{{ID: 1, Name: "Apples", Stock: 50, Price: 1}}}
	d := New(cat, 120, 30)

	if !strings.Contains(d.View(), "well stocked") {
		t.Error("expected well stocked message")
	}
}

func TestNarrowLayoutStillShowsAllBlocks(t *testing.T) {
	d := New(testCatalog(), 60, 30)
	view := d.View()

	for _, want := range []string{"Products", "Categories", "Inventory", "In Stock"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected narrow view to contain %q", want)
		}
	}
}
