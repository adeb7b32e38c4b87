package menu

import (
	"fmt"
	"strings"
)

// Item is one sellable dish or drink. Immutable after startup.
type Item struct {
	Name        string
	Price       float64
	Description string
	Serves      string
}

// Category is an ordered group of items under one heading.
type Category struct {
	Name  string
	Items []Item
}

// Catalog is the read-only menu shared by every turn. Category and item
// order is fixed so Format produces identical grounding text on every call.
type Catalog struct {
	categories []Category
	prices     map[string]float64
}

// New builds a Catalog from ordered categories and indexes item prices
// by exact name for downstream validation.
func New(categories []Category) *Catalog {
	prices := make(map[string]float64)
	for _, cat := range categories {
		for _, it := range cat.Items {
			prices[it.Name] = it.Price
		}
	}
	return &Catalog{categories: categories, prices: prices}
}

// Format renders the whole catalog as the plain-text listing embedded in
// every prompt, one line per item.
func (c *Catalog) Format() string {
	var b strings.Builder
	b.WriteString("Cardápio Saluz Food House - SOMENTE ESTES ITENS SÃO VÁLIDOS:\n")
	for _, cat := range c.categories {
		fmt.Fprintf(&b, "\n--- %s ---\n", strings.ToUpper(cat.Name))
		for _, it := range cat.Items {
			serve := ""
			if it.Serves != "" {
				serve = fmt.Sprintf(" (Serve %s)", it.Serves)
			}
			fmt.Fprintf(&b, "- %s: R$%.2f%s\n", it.Name, it.Price, serve)
		}
	}
	return b.String()
}

// Price returns the catalog price for an exact item name.
func (c *Catalog) Price(name string) (float64, bool) {
	p, ok := c.prices[name]
	return p, ok
}

// Categories returns the ordered category list.
func (c *Catalog) Categories() []Category {
	return c.categories
}
