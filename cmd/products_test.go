// ABOUTME: Tests for the product and category commands
// ABOUTME: Verifies listing, admin writes and auth failures against a fake API

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/markalston/pickbazar/internal/client"
)

func loggedInClient(t *testing.T) *client.Client {
	t.Helper()
	srv := newStorefront(t, "")
	c := newTestClient(srv.URL)
	if _, err := c.Login(context.Background(), client.Credentials{Email: "ada@example.com", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	return c
}

func TestProductsList(t *testing.T) {
	resetFlags(t)
	srv := newStorefront(t, "")

	var buf bytes.Buffer
	exitCode := runProductsList(context.Background(), newTestClient(srv.URL), &buf, 0)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, want := range []string{"Apples", "Fruit", "$2.50", "Milk", "Dairy", "$1.20"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestProductsList_FilterByCategory(t *testing.T) {
	resetFlags(t)
	jsonOutput = true
	srv := newStorefront(t, "")

	var buf bytes.Buffer
	runProductsList(context.Background(), newTestClient(srv.URL), &buf, 2)

	var products []client.Product
	if err := json.Unmarshal(buf.Bytes(), &products); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Milk" {
		t.Errorf("expected only Milk, got %+v", products)
	}
}

func TestFormatProductsHuman_Empty(t *testing.T) {
	if got := formatProductsHuman(&client.Catalog{}, nil); got != "No products found." {
		t.Errorf("unexpected output %q", got)
	}
}

func TestProductCreate_RequiresLogin(t *testing.T) {
	resetFlags(t)
	srv := newStorefront(t, "")

	var buf bytes.Buffer
	exitCode := runProductCreate(context.Background(), newTestClient(srv.URL), &buf,
		client.ProductInput{Name: "Bread", Price: 3, CategoryID: 1, Stock: 5})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Authentication required") {
		t.Errorf("expected auth error, got %s", buf.String())
	}
}

func TestProductCreate(t *testing.T) {
	resetFlags(t)

	var buf bytes.Buffer
	exitCode := runProductCreate(context.Background(), loggedInClient(t), &buf,
		client.ProductInput{Name: "Bread", Price: 3, CategoryID: 1, Stock: 5})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Created product 12: Bread ($3.00, 5 in stock)") {
		t.Errorf("unexpected output %s", buf.String())
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	resetFlags(t)
	c := loggedInClient(t)

	var buf bytes.Buffer
	if exitCode := runProductUpdate(context.Background(), c, &buf, 12,
		client.ProductInput{Name: "Bread", Price: 3, CategoryID: 1}); exitCode != 0 {
		t.Fatalf("update: exit code %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Updated product 12") {
		t.Errorf("unexpected output %s", buf.String())
	}

	buf.Reset()
	if exitCode := runProductDelete(context.Background(), c, &buf, 12); exitCode != 0 {
		t.Fatalf("delete: exit code %d: %s", exitCode, buf.String())
	}
	if buf.String() != "Deleted product 12\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestProductCreate_InvalidInput(t *testing.T) {
	resetFlags(t)

	var buf bytes.Buffer
	exitCode := runProductCreate(context.Background(), loggedInClient(t), &buf, client.ProductInput{Name: "Bread"})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "invalid input") {
		t.Errorf("expected validation error, got %s", buf.String())
	}
}

func TestCategoriesList(t *testing.T) {
	resetFlags(t)
	srv := newStorefront(t, "")

	var buf bytes.Buffer
	exitCode := runCategoriesList(context.Background(), newTestClient(srv.URL), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"Fruit", "Dairy", "Milk and cheese"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestCategoryWrites(t *testing.T) {
	resetFlags(t)
	c := loggedInClient(t)

	var buf bytes.Buffer
	if exitCode := runCategoryCreate(context.Background(), c, &buf, client.CategoryInput{Name: "Bakery"}); exitCode != 0 {
		t.Fatalf("create: exit code %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Created category 7: Bakery") {
		t.Errorf("unexpected output %s", buf.String())
	}

	buf.Reset()
	if exitCode := runCategoryUpdate(context.Background(), c, &buf, 7, client.CategoryInput{Name: "Bakery"}); exitCode != 0 {
		t.Fatalf("update: exit code %d: %s", exitCode, buf.String())
	}

	buf.Reset()
	jsonOutput = true
	if exitCode := runCategoryDelete(context.Background(), c, &buf, 7); exitCode != 0 {
		t.Fatalf("delete: exit code %d: %s", exitCode, buf.String())
	}
	if strings.TrimSpace(buf.String()) != `{"deleted": 7}` {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestCategoryCreate_Anonymous(t *testing.T) {
	resetFlags(t)
	srv := newStorefront(t, "")

	var buf bytes.Buffer
	exitCode := runCategoryCreate(context.Background(), newTestClient(srv.URL), &buf, client.CategoryInput{Name: "Bakery"})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}
