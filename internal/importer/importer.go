// Package importer pushes the static product catalog into the Medusa
// backend through its admin API.
package importer

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"sme-storefront/internal/catalog"
	"sme-storefront/internal/medusa"
)

type ProductWriter interface {
	CreateProduct(ctx context.Context, input medusa.AdminProductInput) (string, error)
}

// Importer converts catalog products into Medusa admin payloads.
type Importer struct {
	admin  ProductWriter
	logger *log.Logger
}

func New(admin ProductWriter, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{admin: admin, logger: logger}
}

// Run imports every product, continuing past individual failures.
// It returns the number imported and the first error encountered, if any.
func (i *Importer) Run(ctx context.Context, products []catalog.Product) (int, error) {
	var (
		imported int
		firstErr error
	)
	for _, p := range products {
		input, err := BuildInput(p)
		if err != nil {
			i.logger.Printf("importer: skip %s: %v", p.Slug, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		id, err := i.admin.CreateProduct(ctx, input)
		if err != nil {
			i.logger.Printf("importer: create %s error=%v", p.Slug, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		i.logger.Printf("importer: created %s id=%s", p.Slug, id)
		imported++
	}
	return imported, firstErr
}

// BuildInput maps one catalog product onto the admin create-product payload.
// Each product gets a single "Quantity" option with one unit-sized value and
// one variant priced in cents.
func BuildInput(p catalog.Product) (medusa.AdminProductInput, error) {
	if p.Slug == "" || p.Name == "" {
		return medusa.AdminProductInput{}, fmt.Errorf("product missing slug or name: %+v", p)
	}
	if p.Price <= 0 {
		return medusa.AdminProductInput{}, fmt.Errorf("product %s has no price", p.Slug)
	}

	unit := strings.TrimSpace(p.Unit)
	if unit == "" {
		unit = "each"
	}
	optionValue := "1 " + unit

	status := "published"
	if !p.InStock {
		status = "draft"
	}

	cents := int64(math.Round(p.Price * 100))

	return medusa.AdminProductInput{
		Title:       p.Name,
		Handle:      p.Slug,
		Description: p.Description,
		Status:      status,
		Options: []medusa.AdminOption{
			{Title: "Quantity", Values: []string{optionValue}},
		},
		Variants: []medusa.AdminVariantInput{
			{
				Title:           optionValue,
				SKU:             p.SKU,
				ManageInventory: false,
				Options:         map[string]string{"Quantity": optionValue},
				Prices: []medusa.AdminPriceInput{
					{Amount: cents, CurrencyCode: "usd"},
				},
			},
		},
	}, nil
}
