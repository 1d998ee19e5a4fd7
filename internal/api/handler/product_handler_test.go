package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/commerce-api/internal/api/handler"
	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
)

type stubProductService struct {
	listFn   func(ctx context.Context) ([]*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
	return s.updateFn(ctx, id, upd)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProductHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		listFn: func(ctx context.Context) ([]*domain.Product, error) {
			return []*domain.Product{
				{ID: "p1", Name: "Pen", Price: 1.5, OwnerID: "u1"},
				{ID: "p2", Name: "Notebook", Price: 4, OwnerID: "u2"},
			}, nil
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["name"] != "Pen" || resp[1]["name"] != "Notebook" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		getFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["code"] != "not_found" {
		t.Fatalf("expected code not_found, got %v", resp["code"])
	}
}

func TestProductHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			if input.OwnerID != "u1" {
				t.Fatalf("expected owner from session, got %q", input.OwnerID)
			}
			if input.Name != "Pen" || input.Price != 1.5 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Product{ID: "p1", Name: input.Name, Price: input.Price, OwnerID: input.OwnerID}, nil
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Pen","price":1.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != "p1" || resp["price"] != 1.5 || resp["owner_id"] != "u1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Create_NoSession(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Pen","price":1.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProductHandler_Create_NegativePrice(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Pen","price":-1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductHandler_Update_PartialFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		updateFn: func(ctx context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if upd.Price == nil || *upd.Price != 2 {
				t.Fatalf("expected price update, got %+v", upd)
			}
			if upd.Name != nil || upd.Description != nil {
				t.Fatalf("absent fields must stay nil: %+v", upd)
			}
			return &domain.Product{ID: "p1", Name: "Pen", Price: 2, OwnerID: "u1"}, nil
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/products/p1", strings.NewReader(`{"price":2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "u2")

	if err := h.Update(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["price"] != 2.0 || resp["name"] != "Pen" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "u1")

	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "p1" {
		t.Fatalf("expected p1 deleted, got %q", deleted)
	}
}

func TestProductHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrProductNotFound
		},
	}
	h := handler.NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	c.Set("user_id", "u1")

	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
