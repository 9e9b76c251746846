// ABOUTME: Request and response models for the storefront API
// ABOUTME: Tolerates numbers sent as strings, which the backend does for decimals and ids

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Envelope is the standard {success, data, message} wrapper
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Number accepts JSON numbers and numeric strings
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = Number(f)
	return nil
}

// Int is an integer that may arrive as a string
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	var n Number
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = Int(n)
	return nil
}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Category is a product category
type Category struct {
	ID          Int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Product is a catalog item
type Product struct {
	ID          Int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Number    `json:"price"`
	Stock       Int       `json:"stock"`
	CategoryID  Int       `json:"category_id,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}

// CategoryRef returns the product's category id from category_id or the
// embedded category object.
func (p Product) CategoryRef() Int {
	if p.CategoryID != 0 {
		return p.CategoryID
	}
	if p.Category != nil {
		return p.Category.ID
	}
	return 0
}

// CategoryName returns the embedded category name, if any
func (p Product) CategoryName() string {
	if p.Category != nil {
		return p.Category.Name
	}
	return ""
}

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the register request body
type Registration struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CategoryInput is the create/update category body
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

// ProductInput is sent as multipart form data. ImagePath is a local file.
type ProductInput struct {
	Name        string  `form:"name" validate:"required,max=255"`
	Description string  `form:"description"`
	Price       float64 `form:"price" validate:"gt=0"`
	CategoryID  int64   `form:"category_id" validate:"required,gt=0"`
	Stock       int     `form:"stock" validate:"gte=0"`
	ImagePath   string  `form:"image" validate:"omitempty,image"`
}

// LoginResult is what a completed login reports to callers
type LoginResult struct {
	Message    string `json:"message,omitempty"`
	Role       string `json:"role,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	HasToken   bool   `json:"has_token"`
	IsAdmin    bool   `json:"is_admin"`
	CookieOnly bool   `json:"cookie_only"`
}

// Catalog is products and categories fetched together
type Catalog struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}

// FilterByCategory returns the products in the given category. Zero returns all.
func (c *Catalog) FilterByCategory(id Int) []Product {
	if id == 0 {
		return c.Products
	}
	out := make([]Product, 0, len(c.Products))
	for _, p := range c.Products {
		if p.CategoryRef() == id {
			out = append(out, p)
		}
	}
	return out
}

// LowStockThreshold marks products needing restock on the admin dashboard
const LowStockThreshold = 10

// Stats summarizes the catalog for the admin dashboard
type Stats struct {
	Products   int     `json:"products"`
	Categories int     `json:"categories"`
	LowStock   int     `json:"low_stock"`
	OutOfStock int     `json:"out_of_stock"`
	TotalValue float64 `json:"inventory_value"`
}

// Stats computes dashboard counts
func (c *Catalog) Stats() Stats {
	s := Stats{Products: len(c.Products), Categories: len(c.Categories)}
	for _, p := range c.Products {
		if p.Stock < LowStockThreshold {
			s.LowStock++
		}
		if p.Stock <= 0 {
			s.OutOfStock++
		}
		s.TotalValue += float64(p.Price) * float64(p.Stock)
	}
	return s
}

// CategoryName resolves a category id to its name
func (c *Catalog) CategoryName(id Int) string {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return ""
}
