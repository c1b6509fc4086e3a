package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "stockhold/pkg/errors"
	"stockhold/pkg/logger"
	"stockhold/pkg/model"
)

type mockService struct {
	listItemsFn   func(ctx context.Context) ([]model.Item, error)
	getItemFn     func(ctx context.Context, sku string) (model.Item, error)
	reserveFn     func(ctx context.Context, req *model.ReserveRequest) (model.Lease, error)
	confirmFn     func(ctx context.Context, reservationID string) error
	cancelFn      func(ctx context.Context, reservationID string) error
	statusFn      func(ctx context.Context, reservationID string) (model.Lease, error)
	sweepExpireFn func(ctx context.Context, now time.Time) int
}

func (m *mockService) ListItems(ctx context.Context) ([]model.Item, error) {
	return m.listItemsFn(ctx)
}

func (m *mockService) GetItem(ctx context.Context, sku string) (model.Item, error) {
	return m.getItemFn(ctx, sku)
}

func (m *mockService) Reserve(ctx context.Context, req *model.ReserveRequest) (model.Lease, error) {
	return m.reserveFn(ctx, req)
}

func (m *mockService) Confirm(ctx context.Context, reservationID string) error {
	return m.confirmFn(ctx, reservationID)
}

func (m *mockService) Cancel(ctx context.Context, reservationID string) error {
	return m.cancelFn(ctx, reservationID)
}

func (m *mockService) Status(ctx context.Context, reservationID string) (model.Lease, error) {
	return m.statusFn(ctx, reservationID)
}

func (m *mockService) SweepExpired(ctx context.Context, now time.Time) int {
	if m.sweepExpireFn != nil {
		return m.sweepExpireFn(ctx, now)
	}
	return 0
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:  logger.LevelError,
		Format: logger.FormatText,
		Output: io.Discard,
	})
}

func newRouter(svc *mockService) *httprouter.Router {
	router := httprouter.New()
	NewReservationHandler(svc, testLogger()).RegisterRoutes(router)
	return router
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestListInventory(t *testing.T) {
	svc := &mockService{
		listItemsFn: func(ctx context.Context) ([]model.Item, error) {
			return []model.Item{
				{SKU: "LAPTOP-001", Name: "Laptop", TotalQuantity: 10, AvailableQuantity: 7},
			}, nil
		},
	}
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data []model.Item `json:"data"`
	}
	decodeBody(t, rec, &body)
	if len(body.Data) != 1 || body.Data[0].SKU != "LAPTOP-001" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestGetInventory(t *testing.T) {
	svc := &mockService{
		getItemFn: func(ctx context.Context, sku string) (model.Item, error) {
			if sku != "LAPTOP-001" {
				return model.Item{}, apperrors.NotFoundWithID("Product", sku)
			}
			return model.Item{SKU: sku, Name: "Laptop", TotalQuantity: 10, AvailableQuantity: 7}, nil
		},
	}
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/LAPTOP-001", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/GHOST-001", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReserve(t *testing.T) {
	expires := time.Date(2026, 3, 15, 10, 5, 0, 0, time.UTC)
	svc := &mockService{
		reserveFn: func(ctx context.Context, req *model.ReserveRequest) (model.Lease, error) {
			return model.Lease{
				ID:          "lease-1",
				SKU:         req.SKU,
				RequesterID: req.UserID,
				Quantity:    req.Quantity,
				Status:      model.LeaseStatusActive,
				ExpiresAt:   expires,
			}, nil
		},
	}
	router := newRouter(svc)

	payload := `{"sku":"LAPTOP-001","quantity":2,"user_id":"user-1"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/reserve", bytes.NewBufferString(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var body struct {
		Data model.Lease `json:"data"`
	}
	decodeBody(t, rec, &body)
	if body.Data.ID != "lease-1" {
		t.Errorf("reservation id = %q, want lease-1", body.Data.ID)
	}
	if body.Data.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", body.Data.Quantity)
	}
}

func TestReserveMalformedBody(t *testing.T) {
	svc := &mockService{
		reserveFn: func(ctx context.Context, req *model.ReserveRequest) (model.Lease, error) {
			t.Fatal("service should not be called for a malformed body")
			return model.Lease{}, nil
		},
	}
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/reserve", bytes.NewBufferString("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReserveInsufficientStock(t *testing.T) {
	svc := &mockService{
		reserveFn: func(ctx context.Context, req *model.ReserveRequest) (model.Lease, error) {
			return model.Lease{}, apperrors.InsufficientStock(req.SKU)
		},
	}
	router := newRouter(svc)

	payload := `{"sku":"LAPTOP-001","quantity":999,"user_id":"user-1"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/reserve", bytes.NewBufferString(payload)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var body struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	decodeBody(t, rec, &body)
	if body.Details["sku"] != "LAPTOP-001" {
		t.Errorf("details = %v, want sku detail", body.Details)
	}
}

func TestConfirm(t *testing.T) {
	var confirmedID string
	svc := &mockService{
		confirmFn: func(ctx context.Context, reservationID string) error {
			confirmedID = reservationID
			return nil
		},
	}
	router := newRouter(svc)

	payload := `{"reservation_id":"lease-1"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checkout/confirm", bytes.NewBufferString(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if confirmedID != "lease-1" {
		t.Errorf("confirmed id = %q, want lease-1", confirmedID)
	}

	var body checkoutResponse
	decodeBody(t, rec, &body)
	if !body.Success || body.Message != "Checkout confirmed successfully" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestConfirmNotFound(t *testing.T) {
	svc := &mockService{
		confirmFn: func(ctx context.Context, reservationID string) error {
			return apperrors.NotFoundWithMessage("Reservation not found or has expired")
		},
	}
	router := newRouter(svc)

	payload := `{"reservation_id":"ghost"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checkout/confirm", bytes.NewBufferString(payload)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	if body.Error != "Reservation not found or has expired" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestCancel(t *testing.T) {
	var cancelledID string
	svc := &mockService{
		cancelFn: func(ctx context.Context, reservationID string) error {
			cancelledID = reservationID
			return nil
		},
	}
	router := newRouter(svc)

	payload := `{"reservation_id":"lease-1"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checkout/cancel", bytes.NewBufferString(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cancelledID != "lease-1" {
		t.Errorf("cancelled id = %q, want lease-1", cancelledID)
	}

	var body checkoutResponse
	decodeBody(t, rec, &body)
	if !body.Success || body.Message != "Reservation cancelled successfully" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestStatus(t *testing.T) {
	svc := &mockService{
		statusFn: func(ctx context.Context, reservationID string) (model.Lease, error) {
			if reservationID != "lease-1" {
				return model.Lease{}, apperrors.NotFoundWithID("Reservation", reservationID)
			}
			return model.Lease{ID: reservationID, SKU: "LAPTOP-001", Status: model.LeaseStatusExpired}, nil
		},
	}
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations/lease-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data model.Lease `json:"data"`
	}
	decodeBody(t, rec, &body)
	if body.Data.Status != model.LeaseStatusExpired {
		t.Errorf("lease status = %s, want expired", body.Data.Status)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations/ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
