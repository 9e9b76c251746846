// ABOUTME: In-memory cart of products the shopper intends to buy
// ABOUTME: Quantities are capped by stock and nothing is persisted

package storefront

import "github.com/markalston/pickbazar/internal/client"

// Line is one product in the cart
type Line struct {
	Product  client.Product
	Quantity int
}

// Cart keeps lines in the order products were first added
type Cart struct {
	lines []Line
}

// Add puts one more unit of p in the cart. It reports false when the cart
// already holds all of p's stock.
func (c *Cart) Add(p client.Product) bool {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			if c.lines[i].Quantity >= int(p.Stock) {
				return false
			}
			c.lines[i].Quantity++
			c.lines[i].Product = p
			return true
		}
	}
	if p.Stock <= 0 {
		return false
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	return true
}

// Remove takes one unit of the product out of the cart
func (c *Cart) Remove(id client.Int) bool {
	for i := range c.lines {
		if c.lines[i].Product.ID != id {
			continue
		}
		c.lines[i].Quantity--
		if c.lines[i].Quantity == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return true
	}
	return false
}

// Quantity returns the units of a product in the cart
func (c *Cart) Quantity(id client.Int) int {
	for _, l := range c.lines {
		if l.Product.ID == id {
			return l.Quantity
		}
	}
	return 0
}

// Count returns the total number of units
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total returns the cart value
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += float64(l.Product.Price) * float64(l.Quantity)
	}
	return total
}

// Lines returns a copy of the cart lines
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}
