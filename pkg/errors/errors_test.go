package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NotFound("Product"), http.StatusNotFound},
		{"validation", Validation("bad request", nil), http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("empty id"), http.StatusBadRequest},
		{"conflict", Conflict("already processed"), http.StatusConflict},
		{"insufficient stock", InsufficientStock("LAPTOP-001"), http.StatusConflict},
		{"internal", Internal("boom", errors.New("cause")), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.StatusCode(); got != tc.want {
				t.Errorf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestInsufficientStockCarriesSKU(t *testing.T) {
	err := InsufficientStock("LAPTOP-001")
	if err.Code != CodeInsufficientStock {
		t.Errorf("code = %s, want %s", err.Code, CodeInsufficientStock)
	}
	if err.Details["sku"] != "LAPTOP-001" {
		t.Errorf("details = %v, want sku detail", err.Details)
	}
}

func TestErrorIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("publish failed", cause)
	if got := err.Error(); got != "INTERNAL_ERROR: publish failed (caused by: connection refused)" {
		t.Errorf("unexpected error string: %s", got)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFoundWithID("Reservation", "lease-1")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same *AppError")
	}

	wrapped := AsAppError(errors.New("plain"))
	if wrapped.Code != CodeInternal {
		t.Errorf("plain error wrapped with code %s, want %s", wrapped.Code, CodeInternal)
	}
	if wrapped.StatusCode() != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", wrapped.StatusCode())
	}
}
