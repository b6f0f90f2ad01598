package medusa

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sme-storefront/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "pk_test_123")
}

func TestCreateCartSendsRegionAndKey(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-publishable-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"cart":{"id":"cart_1","region_id":"reg_1","items":[]}}`)
	})

	cart, err := c.CreateCart(context.Background(), "reg_1")
	if err != nil {
		t.Fatalf("CreateCart: %v", err)
	}
	if gotPath != "/store/carts" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "pk_test_123" {
		t.Fatalf("publishable key header = %q", gotKey)
	}
	if gotBody["region_id"] != "reg_1" {
		t.Fatalf("body = %v", gotBody)
	}
	if cart.ID != "cart_1" {
		t.Fatalf("cart id = %q", cart.ID)
	}
}

func TestCreateCartResolvesDefaultRegion(t *testing.T) {
	var createBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/store/regions":
			io.WriteString(w, `{"regions":[
				{"id":"reg_eu","countries":[{"iso_2":"de"}]},
				{"id":"reg_us","countries":[{"iso_2":"us"}]}
			]}`)
		case "/store/carts":
			json.NewDecoder(r.Body).Decode(&createBody)
			io.WriteString(w, `{"cart":{"id":"cart_2"}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	if _, err := c.CreateCart(context.Background(), ""); err != nil {
		t.Fatalf("CreateCart: %v", err)
	}
	if createBody["region_id"] != "reg_us" {
		t.Fatalf("region_id = %v, want reg_us", createBody["region_id"])
	}
}

func TestLineItemPaths(t *testing.T) {
	var paths []string
	var methods []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		io.WriteString(w, `{"cart":{"id":"cart_1"}}`)
	})

	ctx := context.Background()
	if _, err := c.AddLineItem(ctx, "cart_1", "variant_9", 2); err != nil {
		t.Fatalf("AddLineItem: %v", err)
	}
	if _, err := c.UpdateLineItem(ctx, "cart_1", "li_1", 4); err != nil {
		t.Fatalf("UpdateLineItem: %v", err)
	}
	if _, err := c.RemoveLineItem(ctx, "cart_1", "li_1"); err != nil {
		t.Fatalf("RemoveLineItem: %v", err)
	}

	wantPaths := []string{
		"/store/carts/cart_1/line-items",
		"/store/carts/cart_1/line-items/li_1",
		"/store/carts/cart_1/line-items/li_1",
	}
	wantMethods := []string{http.MethodPost, http.MethodPost, http.MethodDelete}
	for i := range wantPaths {
		if paths[i] != wantPaths[i] || methods[i] != wantMethods[i] {
			t.Fatalf("call %d: %s %s, want %s %s", i, methods[i], paths[i], wantMethods[i], wantPaths[i])
		}
	}
}

func TestUpdateCartMetadata(t *testing.T) {
	var gotBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"cart":{"id":"cart_1"}}`)
	})

	_, err := c.UpdateCart(context.Background(), "cart_1", CartUpdate{
		Metadata: map[string]interface{}{"fulfillment": map[string]interface{}{"method": "pickup"}},
	})
	if err != nil {
		t.Fatalf("UpdateCart: %v", err)
	}
	meta, ok := gotBody["metadata"].(map[string]interface{})
	if !ok {
		t.Fatalf("metadata missing from body: %v", gotBody)
	}
	if _, ok := meta["fulfillment"]; !ok {
		t.Fatalf("fulfillment key missing: %v", meta)
	}
}

func TestErrorMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Cart not found"}`)
	})

	_, err := c.GetCart(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected err to match domain.ErrNotFound, got %v", err)
	}
	if err.Error() != "Cart not found" {
		t.Fatalf("error message = %q", err.Error())
	}
}

func TestErrorStatusFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetCart(context.Background(), "cart_1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Error() != "HTTP 500" {
		t.Fatalf("error = %q", apiErr.Error())
	}
}

func TestGetProductByHandle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("handle") == "humus-compost" {
			io.WriteString(w, `{"products":[{"id":"prod_1","handle":"humus-compost"}],"count":1}`)
			return
		}
		io.WriteString(w, `{"products":[],"count":0}`)
	})

	p, err := c.GetProductByHandle(context.Background(), "humus-compost")
	if err != nil {
		t.Fatalf("GetProductByHandle: %v", err)
	}
	if p == nil || p.ID != "prod_1" {
		t.Fatalf("product = %+v", p)
	}

	p, err = c.GetProductByHandle(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("GetProductByHandle unknown: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil for unknown handle, got %+v", p)
	}
}

func TestShippingOptionsQuery(t *testing.T) {
	var gotCartID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCartID = r.URL.Query().Get("cart_id")
		io.WriteString(w, `{"shipping_options":[{"id":"so_1","name":"Local Delivery"}]}`)
	})

	options, err := c.ShippingOptions(context.Background(), "cart_1")
	if err != nil {
		t.Fatalf("ShippingOptions: %v", err)
	}
	if gotCartID != "cart_1" {
		t.Fatalf("cart_id = %q", gotCartID)
	}
	if len(options) != 1 || options[0].ID != "so_1" {
		t.Fatalf("options = %+v", options)
	}
}

func TestCompleteCart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/store/carts/cart_1/complete" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"type":"order","data":{"id":"order_1"}}`)
	})

	res, err := c.CompleteCart(context.Background(), "cart_1")
	if err != nil {
		t.Fatalf("CompleteCart: %v", err)
	}
	if res.Type != "order" {
		t.Fatalf("type = %q", res.Type)
	}
}

func TestAdminLoginAndCreate(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/user/emailpass":
			io.WriteString(w, `{"token":"tok_abc"}`)
		case "/admin/products":
			authHeader = r.Header.Get("Authorization")
			io.WriteString(w, `{"product":{"id":"prod_9"}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	admin := NewAdmin(srv.URL)
	if _, err := admin.CreateProduct(context.Background(), AdminProductInput{Title: "x"}); err == nil {
		t.Fatal("expected error before login")
	}

	if err := admin.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	id, err := admin.CreateProduct(context.Background(), AdminProductInput{Title: "Topsoil"})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if id != "prod_9" {
		t.Fatalf("id = %q", id)
	}
	if authHeader != "Bearer tok_abc" {
		t.Fatalf("auth header = %q", authHeader)
	}
}
