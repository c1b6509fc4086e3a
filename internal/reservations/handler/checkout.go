package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "stockhold/pkg/http"
	"stockhold/pkg/model"
)

type checkoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Confirm", "error", writeErr)
		}
		return
	}

	if err := h.service.Confirm(r.Context(), req.ReservationID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Confirm", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, checkoutResponse{
		Success: true,
		Message: "Checkout confirmed successfully",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Confirm", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Cancel", "error", writeErr)
		}
		return
	}

	if err := h.service.Cancel(r.Context(), req.ReservationID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, checkoutResponse{
		Success: true,
		Message: "Reservation cancelled successfully",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Cancel", "error", err)
	}
}

func (h *ReservationHandler) Status(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	lease, err := h.service.Status(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Status", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, lease); err != nil {
		h.log.Error("failed to write success response", "handler", "Status", "error", err)
	}
}
