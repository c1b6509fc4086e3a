package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"stockhold/internal/reservations/ledger"
	httputil "stockhold/pkg/http"
	"stockhold/pkg/logger"
)

type HealthResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items,omitempty"`
}

type HealthHandler struct {
	ledger *ledger.Ledger
	log    *logger.Logger
}

func NewHealthHandler(l *ledger.Ledger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		ledger: l,
		log:    log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "error", err)
	}
}

// Ready reports readiness once the catalog is loaded into the ledger.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items := h.ledger.ListAll()
	if len(items) == 0 {
		if err := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
		}); err != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "error", err)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ready",
		Items:  len(items),
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
