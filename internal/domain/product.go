package domain

import "time"

type Product struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Handle       string           `json:"handle"`
	Description  string           `json:"description,omitempty"`
	Thumbnail    string           `json:"thumbnail,omitempty"`
	Variants     []ProductVariant `json:"variants"`
	Options      []ProductOption  `json:"options"`
	Images       []ProductImage   `json:"images"`
	CollectionID string           `json:"collection_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type ProductVariant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	SKU               string           `json:"sku,omitempty"`
	Barcode           string           `json:"barcode,omitempty"`
	Prices            []Price          `json:"prices"`
	Options           []VariantOption  `json:"options"`
	InventoryQuantity int              `json:"inventory_quantity"`
	ManageInventory   bool             `json:"manage_inventory"`
	AllowBackorder    bool             `json:"allow_backorder"`
	CalculatedPrice   *CalculatedPrice `json:"calculated_price,omitempty"`
}

type VariantOption struct {
	Value    string `json:"value"`
	OptionID string `json:"option_id"`
}

type CalculatedPrice struct {
	CalculatedAmount int64  `json:"calculated_amount"`
	CurrencyCode     string `json:"currency_code"`
}

type ProductOption struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Values []OptionValue `json:"values"`
}

type OptionValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type ProductImage struct {
	URL string `json:"url"`
}

type Price struct {
	ID           string `json:"id,omitempty"`
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

type Region struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currency_code"`
	Countries    []Country `json:"countries"`
}

type Country struct {
	ISO2 string `json:"iso_2"`
	Name string `json:"name"`
}

// CheapestPrice returns the lowest variant price in the given currency, or
// false when no variant carries one.
func (p Product) CheapestPrice(currencyCode string) (int64, bool) {
	var (
		best  int64
		found bool
	)
	for _, v := range p.Variants {
		for _, price := range v.Prices {
			if price.CurrencyCode != currencyCode {
				continue
			}
			if !found || price.Amount < best {
				best = price.Amount
				found = true
			}
		}
	}
	return best, found
}
