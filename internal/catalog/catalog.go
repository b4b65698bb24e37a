// ABOUTME: Immutable product catalog loaded once at startup from a JSON file
// ABOUTME: Resolves free-text object names to product IDs by name/keyword match

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Product is a single catalog entry. Keyword order is significant: keywords
// are tested in sequence when resolving an object name.
type Product struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Keywords    []string `json:"keywords"`
}

// Catalog holds the product list in its original file order. The order is
// load-bearing: resolution is first-match-wins over this sequence.
type Catalog struct {
	products []Product
}

// Load reads a catalog file containing a JSON array of products.
// The catalog is read once at startup and never reloaded.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	return New(products), nil
}

// New builds a catalog from an in-memory product list. Used by tests and by
// Load. The slice is copied so callers cannot mutate the catalog afterwards.
func New(products []Product) *Catalog {
	c := &Catalog{products: make([]Product, len(products))}
	copy(c.products, products)
	return c
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Resolve maps an object name to a product ID. The search term is matched
// case-insensitively as a substring against each product's name first, then
// against its keywords in order. The first product that matches wins and
// iteration stops there. A miss returns ok=false; it is not an error.
func (c *Catalog) Resolve(term string) (productID string, ok bool) {
	search := strings.ToLower(term)

	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.ProductName), search) {
			return p.ProductID, true
		}
		for _, kw := range p.Keywords {
			if strings.Contains(strings.ToLower(kw), search) {
				return p.ProductID, true
			}
		}
	}

	return "", false
}
