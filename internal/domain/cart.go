package domain

// Cart mirrors the commerce backend's cart record. All monetary amounts are
// integer minor currency units (cents).
type Cart struct {
	ID              string                 `json:"id"`
	RegionID        string                 `json:"region_id"`
	Email           string                 `json:"email,omitempty"`
	Items           []LineItem             `json:"items"`
	Subtotal        int64                  `json:"subtotal"`
	DiscountTotal   int64                  `json:"discount_total"`
	ShippingTotal   int64                  `json:"shipping_total"`
	TaxTotal        int64                  `json:"tax_total"`
	Total           int64                  `json:"total"`
	CurrencyCode    string                 `json:"currency_code"`
	ShippingAddress *Address               `json:"shipping_address,omitempty"`
	BillingAddress  *Address               `json:"billing_address,omitempty"`
	ShippingMethods []ShippingMethod       `json:"shipping_methods"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// ItemCount returns the total quantity across all line items.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

type LineItem struct {
	ID          string `json:"id"`
	CartID      string `json:"cart_id"`
	VariantID   string `json:"variant_id"`
	ProductID   string `json:"product_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
	Total       int64  `json:"total"`
}

type Address struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Address1    string `json:"address_1,omitempty"`
	Address2    string `json:"address_2,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type ShippingMethod struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type ShippingOption struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Amount         int64  `json:"amount"`
	IsTaxInclusive bool   `json:"is_tax_inclusive"`
}
