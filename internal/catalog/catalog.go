// Package catalog serves the static product catalog generated from crawled
// site content. The data ships embedded in the binary; the backend's live
// product records are a separate concern.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed products.json
var productsJSON []byte

// Product is one entry of the static content catalog. Price is in whole
// currency units per Unit, as displayed on content pages.
type Product struct {
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Price           float64  `json:"price"`
	Unit            string   `json:"unit"`
	SKU             string   `json:"sku"`
	InStock         bool     `json:"inStock"`
	Featured        bool     `json:"featured,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	Benefits        []string `json:"benefits"`
	Applications    []string `json:"applications"`
	Images          Images   `json:"images"`
	SEO             SEO      `json:"seo"`
	Weight          string   `json:"weight,omitempty"`
	Dimensions      string   `json:"dimensions,omitempty"`
}

type Images struct {
	Primary string   `json:"primary"`
	Gallery []string `json:"gallery,omitempty"`
}

type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Metadata describes the generated catalog file.
type Metadata struct {
	GeneratedAt   string         `json:"generatedAt"`
	TotalProducts int            `json:"totalProducts"`
	Categories    map[string]int `json:"categories"`
	Source        string         `json:"source"`
	Version       string         `json:"version"`
}

// File is the on-disk catalog shape, shared with the parse tooling.
type File struct {
	Metadata Metadata  `json:"metadata"`
	Products []Product `json:"products"`
}

// Catalog provides read access over the product list.
type Catalog struct {
	meta     Metadata
	products []Product
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(productsJSON)
}

// Parse builds a catalog from raw JSON, for tooling that works on generated
// files rather than the embedded copy.
func Parse(data []byte) (*Catalog, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &Catalog{meta: file.Metadata, products: file.Products}, nil
}

func (c *Catalog) Metadata() Metadata {
	return c.meta
}

func (c *Catalog) All() []Product {
	return c.products
}

// BySlug returns the product with the given slug, or nil.
func (c *Catalog) BySlug(slug string) *Product {
	for i := range c.products {
		if c.products[i].Slug == slug {
			return &c.products[i]
		}
	}
	return nil
}

func (c *Catalog) ByCategory(category string) []Product {
	var out []Product
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Featured() []Product {
	var out []Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) InStock() []Product {
	var out []Product
	for _, p := range c.products {
		if p.InStock {
			out = append(out, p)
		}
	}
	return out
}

// Search matches the query against product names and descriptions,
// case-insensitively.
func (c *Catalog) Search(query string) []Product {
	query = strings.ToLower(query)
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) ||
			strings.Contains(strings.ToLower(p.LongDescription), query) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) PriceRange(min, max float64) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Price >= min && p.Price <= max {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit products from the same category, excluding the
// product itself.
func (c *Catalog) Related(slug string, limit int) []Product {
	product := c.BySlug(slug)
	if product == nil {
		return nil
	}
	var out []Product
	for _, p := range c.products {
		if len(out) >= limit {
			break
		}
		if p.Category == product.Category && p.Slug != slug {
			out = append(out, p)
		}
	}
	return out
}
