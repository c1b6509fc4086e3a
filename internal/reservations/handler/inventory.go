package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"stockhold/internal/reservations/service"
	httputil "stockhold/pkg/http"
	"stockhold/pkg/logger"
	"stockhold/pkg/model"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) ListInventory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListInventory", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, items); err != nil {
		h.log.Error("failed to write success response", "handler", "ListInventory", "error", err)
	}
}

func (h *ReservationHandler) GetInventory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sku := ps.ByName("sku")

	item, err := h.service.GetItem(r.Context(), sku)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetInventory", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, item); err != nil {
		h.log.Error("failed to write success response", "handler", "GetInventory", "error", err)
	}
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Reserve", "error", writeErr)
		}
		return
	}

	lease, err := h.service.Reserve(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reserve", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, lease); err != nil {
		h.log.Error("failed to write created response", "handler", "Reserve", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/inventory", h.ListInventory)
	router.GET("/inventory/:sku", h.GetInventory)
	router.POST("/inventory/reserve", h.Reserve)
	router.POST("/checkout/confirm", h.Confirm)
	router.POST("/checkout/cancel", h.Cancel)
	router.GET("/reservations/:id", h.Status)
}
