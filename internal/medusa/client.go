// Package medusa is a thin JSON client for the commerce backend's store API.
package medusa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"sme-storefront/internal/domain"
)

// APIError carries the backend's rejection message, or an HTTP-status
// fallback when the response body had none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Is lets backend 404s match the shared not-found sentinel.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// Client talks to the store-facing endpoints using a publishable API key and
// a cookie-based session.
type Client struct {
	baseURL        string
	publishableKey string
	httpc          *http.Client
}

func New(baseURL, publishableKey string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-publishable-api-key", c.publishableKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type cartEnvelope struct {
	Cart domain.Cart `json:"cart"`
}

// CreateCart creates a new cart. An empty regionID resolves to the default
// region before creation.
func (c *Client) CreateCart(ctx context.Context, regionID string) (*domain.Cart, error) {
	if regionID == "" {
		region, err := c.DefaultRegion(ctx)
		if err != nil {
			return nil, err
		}
		if region != nil {
			regionID = region.ID
		}
	}

	body := map[string]interface{}{}
	if regionID != "" {
		body["region_id"] = regionID
	}

	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts", body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/carts/"+cartID, nil, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*domain.Cart, error) {
	body := map[string]interface{}{
		"variant_id": variantID,
		"quantity":   quantity,
	}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/line-items", body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) UpdateLineItem(ctx context.Context, cartID, lineItemID string, quantity int) (*domain.Cart, error) {
	body := map[string]interface{}{"quantity": quantity}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/line-items/"+lineItemID, body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) RemoveLineItem(ctx context.Context, cartID, lineItemID string) (*domain.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodDelete, "/store/carts/"+cartID+"/line-items/"+lineItemID, nil, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

// CartUpdate patches cart-level fields. Nil fields are left untouched;
// Metadata is merged by the backend.
type CartUpdate struct {
	Email           string                 `json:"email,omitempty"`
	ShippingAddress *domain.Address        `json:"shipping_address,omitempty"`
	BillingAddress  *domain.Address        `json:"billing_address,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

func (c *Client) UpdateCart(ctx context.Context, cartID string, in CartUpdate) (*domain.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID, in, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

// ListProducts returns products matching the given query parameters.
func (c *Client) ListProducts(ctx context.Context, params url.Values) ([]domain.Product, int, error) {
	path := "/store/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var env struct {
		Products []domain.Product `json:"products"`
		Count    int              `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, 0, err
	}
	return env.Products, env.Count, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var env struct {
		Product domain.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/products/"+productID, nil, &env); err != nil {
		return nil, err
	}
	return &env.Product, nil
}

// GetProductByHandle resolves a product by its URL handle, or nil when no
// product matches.
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	params := url.Values{"handle": {handle}}
	products, _, err := c.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (c *Client) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var env struct {
		Regions []domain.Region `json:"regions"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/regions", nil, &env); err != nil {
		return nil, err
	}
	return env.Regions, nil
}

// DefaultRegion prefers the US region, falling back to the first configured
// one. Returns nil when the backend has no regions.
func (c *Client) DefaultRegion(ctx context.Context) (*domain.Region, error) {
	regions, err := c.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range regions {
		for _, country := range regions[i].Countries {
			if strings.EqualFold(country.ISO2, "us") {
				return &regions[i], nil
			}
		}
	}
	if len(regions) > 0 {
		return &regions[0], nil
	}
	return nil, nil
}

func (c *Client) ShippingOptions(ctx context.Context, cartID string) ([]domain.ShippingOption, error) {
	var env struct {
		ShippingOptions []domain.ShippingOption `json:"shipping_options"`
	}
	path := "/store/shipping-options?cart_id=" + url.QueryEscape(cartID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.ShippingOptions, nil
}

func (c *Client) AddShippingMethod(ctx context.Context, cartID, optionID string) (*domain.Cart, error) {
	body := map[string]interface{}{"option_id": optionID}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/shipping-methods", body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) CreatePaymentSessions(ctx context.Context, cartID string) (*domain.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/payment-sessions", nil, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

func (c *Client) SetPaymentSession(ctx context.Context, cartID, providerID string) (*domain.Cart, error) {
	body := map[string]interface{}{"provider_id": providerID}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/payment-session", body, &env); err != nil {
		return nil, err
	}
	return &env.Cart, nil
}

// CompleteResult is the checkout outcome: Type is "order" on success, and
// Data holds the raw order or cart payload.
type CompleteResult struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) CompleteCart(ctx context.Context, cartID string) (*CompleteResult, error) {
	var out CompleteResult
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
