package medusa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AdminClient authenticates against the admin API with email/password and
// holds the resulting bearer token. Used by the one-shot import tooling only.
type AdminClient struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func NewAdmin(baseURL string) *AdminClient {
	return &AdminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Login exchanges admin credentials for a bearer token.
func (a *AdminClient) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/auth/user/emailpass", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("login failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if payload.Token == "" {
		return errors.New("login response missing token")
	}
	a.token = payload.Token
	return nil
}

// AdminProductInput is the create-product payload: one option dimension with
// one default variant priced in minor units.
type AdminProductInput struct {
	Title       string              `json:"title"`
	Handle      string              `json:"handle"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Options     []AdminOption       `json:"options"`
	Variants    []AdminVariantInput `json:"variants"`
}

type AdminOption struct {
	Title  string   `json:"title"`
	Values []string `json:"values"`
}

type AdminVariantInput struct {
	Title           string            `json:"title"`
	SKU             string            `json:"sku,omitempty"`
	Prices          []AdminPriceInput `json:"prices"`
	Options         map[string]string `json:"options"`
	ManageInventory bool              `json:"manage_inventory"`
}

type AdminPriceInput struct {
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// CreateProduct creates a product and returns its id.
func (a *AdminClient) CreateProduct(ctx context.Context, in AdminProductInput) (string, error) {
	if a.token == "" {
		return "", errors.New("not authenticated")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/admin/products", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("create product %q: %d - %s", in.Title, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var payload struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	return payload.Product.ID, nil
}
