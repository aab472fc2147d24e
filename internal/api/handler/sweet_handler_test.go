package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

type stubSweetService struct {
	listFn     func(ctx context.Context) ([]*domain.Sweet, error)
	searchFn   func(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error)
	addFn      func(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error)
	updateFn   func(ctx context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error)
	deleteFn   func(ctx context.Context, id string) error
	purchaseFn func(ctx context.Context, id string) (*domain.Sweet, error)
	restockFn  func(ctx context.Context, id string, quantity int) (*domain.Sweet, error)
}

func (s *stubSweetService) ListSweets(ctx context.Context) ([]*domain.Sweet, error) {
	return s.listFn(ctx)
}

func (s *stubSweetService) SearchSweets(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
	return s.searchFn(ctx, filter)
}

func (s *stubSweetService) AddSweet(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
	return s.addFn(ctx, input)
}

func (s *stubSweetService) UpdateSweet(ctx context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubSweetService) DeleteSweet(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubSweetService) PurchaseSweet(ctx context.Context, id string) (*domain.Sweet, error) {
	return s.purchaseFn(ctx, id)
}

func (s *stubSweetService) RestockSweet(ctx context.Context, id string, quantity int) (*domain.Sweet, error) {
	return s.restockFn(ctx, id, quantity)
}

func TestSweetHandler_List(t *testing.T) {
	svc := &stubSweetService{
		listFn: func(context.Context) ([]*domain.Sweet, error) {
			return []*domain.Sweet{
				{ID: "s1", Name: "Gulab Jamun", Category: "Milk-Based", Price: 5.99, Quantity: 25},
				{ID: "s2", Name: "Jalebi", Category: "Syrup-Based", Price: 6.50, Quantity: 35, ImageURL: "https://img.example.com/jalebi.jpg"},
			}, nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/sweets", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 sweets, got %d", len(body))
	}
	if _, present := body[0]["image"]; present {
		t.Fatalf("image must be omitted when unset: %v", body[0])
	}
	if body[1]["image"] != "https://img.example.com/jalebi.jpg" {
		t.Fatalf("expected image on second sweet, got %v", body[1])
	}
}

func TestSweetHandler_List_EmptyCatalog(t *testing.T) {
	svc := &stubSweetService{
		listFn: func(context.Context) ([]*domain.Sweet, error) {
			return nil, nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/sweets", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	// an empty catalog renders [], never null
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestSweetHandler_Search_QueryParsing(t *testing.T) {
	var captured ports.SweetFilter
	svc := &stubSweetService{
		searchFn: func(_ context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
			captured = filter
			return nil, nil
		},
	}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodGet,
		"/api/sweets/search?name=chocolate&category=Chocolate&minPrice=5&maxPrice=8", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if captured.Name != "chocolate" || captured.Category != "Chocolate" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
	if captured.MinPrice == nil || *captured.MinPrice != 5 {
		t.Fatalf("expected minPrice 5, got %v", captured.MinPrice)
	}
	if captured.MaxPrice == nil || *captured.MaxPrice != 8 {
		t.Fatalf("expected maxPrice 8, got %v", captured.MaxPrice)
	}
}

func TestSweetHandler_Search_IgnoresUnparseablePrices(t *testing.T) {
	var captured ports.SweetFilter
	svc := &stubSweetService{
		searchFn: func(_ context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
			captured = filter
			return nil, nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/sweets/search?minPrice=cheap&maxPrice=", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.MinPrice != nil || captured.MaxPrice != nil {
		t.Fatalf("unparseable prices must be ignored, got %+v", captured)
	}
}

func TestSweetHandler_Create(t *testing.T) {
	svc := &stubSweetService{
		addFn: func(_ context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
			return &domain.Sweet{
				ID:       "s1",
				Name:     input.Name,
				Category: input.Category,
				Price:    input.Price,
				Quantity: input.Quantity,
				ImageURL: input.ImageURL,
			}, nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/sweets",
		`{"name":"Kaju Barfi","category":"Barfi","price":12.99,"quantity":20,"imageUrl":"https://img.example.com/kaju.jpg"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["name"] != "Kaju Barfi" || body["image"] != "https://img.example.com/kaju.jpg" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSweetHandler_Create_MissingFields(t *testing.T) {
	svc := &stubSweetService{
		addFn: func(context.Context, ports.AddSweetInput) (*domain.Sweet, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewSweetHandler(svc)

	bodies := []string{
		`{"category":"Barfi","price":12.99,"quantity":20}`,
		`{"name":"Kaju Barfi","category":"Barfi","quantity":20}`,
		`{"name":"Kaju Barfi","category":"Barfi","price":0,"quantity":20}`,
		`{"name":"Kaju Barfi","category":"Barfi","price":12.99,"quantity":0}`,
	}
	for _, payload := range bodies {
		c, _ := newTestContext(t, http.MethodPost, "/api/sweets", payload)
		err := h.Create(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %v", payload, err)
		}
		if he.Message != "All fields are required" {
			t.Fatalf("unexpected message for %s: %v", payload, he.Message)
		}
	}
}

func TestSweetHandler_Update(t *testing.T) {
	var capturedID string
	var capturedPatch ports.SweetPatch
	svc := &stubSweetService{
		updateFn: func(_ context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
			capturedID = id
			capturedPatch = patch
			return &domain.Sweet{ID: id, Name: "Jalebi", Category: "Syrup-Based", Price: *patch.Price, Quantity: 35}, nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/api/sweets/s1", `{"price":7.25}`)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedID != "s1" {
		t.Fatalf("unexpected id: %q", capturedID)
	}
	if capturedPatch.Price == nil || *capturedPatch.Price != 7.25 {
		t.Fatalf("expected price patch 7.25, got %+v", capturedPatch)
	}
	if capturedPatch.Name != nil || capturedPatch.Quantity != nil {
		t.Fatalf("omitted fields must stay nil: %+v", capturedPatch)
	}
}

func TestSweetHandler_Update_NotFound(t *testing.T) {
	svc := &stubSweetService{
		updateFn: func(context.Context, string, ports.SweetPatch) (*domain.Sweet, error) {
			return nil, domain.ErrSweetNotFound
		},
	}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPut, "/api/sweets/missing", `{"price":1.00}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Update(c); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound passthrough, got %v", err)
	}
}

func TestSweetHandler_Delete(t *testing.T) {
	svc := &stubSweetService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "s1" {
				t.Fatalf("unexpected id: %q", id)
			}
			return nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodDelete, "/api/sweets/s1", "")
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["message"] != "Sweet deleted successfully" {
		t.Fatalf("unexpected message: %q", body["message"])
	}
}

func TestSweetHandler_Purchase(t *testing.T) {
	svc := &stubSweetService{
		purchaseFn: func(_ context.Context, id string) (*domain.Sweet, error) {
			return &domain.Sweet{ID: id, Name: "Peda", Category: "Milk-Based", Price: 7.50, Quantity: 19}, nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/sweets/s1/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)
	if err := h.Purchase(c); err != nil {
		t.Fatalf("Purchase returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["quantity"] != float64(19) {
		t.Fatalf("expected quantity 19, got %v", body["quantity"])
	}
}

func TestSweetHandler_Purchase_MissingClaims(t *testing.T) {
	svc := &stubSweetService{
		purchaseFn: func(context.Context, string) (*domain.Sweet, error) {
			t.Fatal("service must not be called without auth claims")
			return nil, nil
		},
	}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/api/sweets/s1/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("s1")
	err := h.Purchase(c)
	if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestSweetHandler_Purchase_OutOfStock(t *testing.T) {
	svc := &stubSweetService{
		purchaseFn: func(context.Context, string) (*domain.Sweet, error) {
			return nil, domain.ErrOutOfStock
		},
	}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/api/sweets/s1/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)
	if err := h.Purchase(c); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock passthrough, got %v", err)
	}
}

func TestSweetHandler_Restock(t *testing.T) {
	svc := &stubSweetService{
		restockFn: func(_ context.Context, id string, quantity int) (*domain.Sweet, error) {
			return &domain.Sweet{ID: id, Name: "Badam Halwa", Category: "Halwa", Price: 10.99, Quantity: 12 + quantity}, nil
		},
	}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/sweets/s1/restock", `{"quantity":8}`)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := h.Restock(c); err != nil {
		t.Fatalf("Restock returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["quantity"] != float64(20) {
		t.Fatalf("expected quantity 20, got %v", body["quantity"])
	}
}

func TestSweetHandler_Restock_InvalidQuantity(t *testing.T) {
	svc := &stubSweetService{
		restockFn: func(context.Context, string, int) (*domain.Sweet, error) {
			return nil, domain.ErrInvalidQuantity
		},
	}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/api/sweets/s1/restock", `{"quantity":0}`)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	if err := h.Restock(c); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity passthrough, got %v", err)
	}
}
