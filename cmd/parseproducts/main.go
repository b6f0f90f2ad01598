package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sme-storefront/internal/catalog"
)

// parseproducts converts a site-crawl dump into the embedded catalog file.
type crawledPage struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceText   string `json:"priceText"`
	Unit        string `json:"unit"`
	SKU         string `json:"sku"`
	InStock     *bool  `json:"inStock"`
	Image       string `json:"image"`
}

var priceRe = regexp.MustCompile(`\$?\s*([0-9]+(?:\.[0-9]{1,2})?)`)

func main() {
	var (
		inPath  string
		outPath string
	)
	flag.StringVar(&inPath, "in", "", "Path to the crawl JSON dump")
	flag.StringVar(&outPath, "out", "products.json", "Where to write the catalog file")
	flag.Parse()

	if inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "[parse] ", log.LstdFlags)

	raw, err := os.ReadFile(inPath)
	if err != nil {
		logger.Fatalf("read %s: %v", inPath, err)
	}

	var pages []crawledPage
	if err := json.Unmarshal(raw, &pages); err != nil {
		logger.Fatalf("decode crawl dump: %v", err)
	}

	var products []catalog.Product
	categories := map[string]int{}
	for _, page := range pages {
		p, err := toProduct(page)
		if err != nil {
			logger.Printf("skip %s: %v", page.URL, err)
			continue
		}
		products = append(products, p)
		categories[p.Category]++
	}

	file := catalog.File{
		Metadata: catalog.Metadata{
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
			TotalProducts: len(products),
			Categories:    categories,
			Source:        "site-crawl",
			Version:       "1.0",
		},
		Products: products,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		logger.Fatalf("encode catalog: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		logger.Fatalf("write %s: %v", outPath, err)
	}

	fmt.Printf("Wrote %d products in %d categories to %s\n", len(products), len(categories), outPath)
}

func toProduct(page crawledPage) (catalog.Product, error) {
	name := strings.TrimSpace(page.Title)
	if name == "" {
		return catalog.Product{}, fmt.Errorf("page has no title")
	}

	price, err := parsePrice(page.PriceText)
	if err != nil {
		return catalog.Product{}, err
	}

	category := strings.TrimSpace(page.Category)
	if category == "" {
		category = "uncategorized"
	}

	inStock := true
	if page.InStock != nil {
		inStock = *page.InStock
	}

	unit := strings.TrimSpace(page.Unit)
	if unit == "" {
		unit = "each"
	}

	return catalog.Product{
		Name:        name,
		Slug:        slugify(name),
		Category:    category,
		Description: strings.TrimSpace(page.Description),
		Price:       price,
		Unit:        unit,
		SKU:         page.SKU,
		InStock:     inStock,
		Images:      catalog.Images{Primary: page.Image},
		SEO: catalog.SEO{
			Title:       name + " | Soul Miner's Eden",
			Description: strings.TrimSpace(page.Description),
		},
	}, nil
}

func parsePrice(text string) (float64, error) {
	match := priceRe.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("no price in %q", text)
	}
	return strconv.ParseFloat(match[1], 64)
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
