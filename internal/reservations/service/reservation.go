package service

import (
	"context"
	"errors"
	"time"

	reserrors "stockhold/internal/reservations/errors"
	"stockhold/internal/reservations/ledger"
	"stockhold/internal/reservations/registry"
	"stockhold/internal/reservations/validator"
	"stockhold/pkg/config"
	apperrors "stockhold/pkg/errors"
	"stockhold/pkg/kafka"
	"stockhold/pkg/model"
)

const eventSource = "reservations"

type ReservationService interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	GetItem(ctx context.Context, sku string) (model.Item, error)
	Reserve(ctx context.Context, req *model.ReserveRequest) (model.Lease, error)
	Confirm(ctx context.Context, reservationID string) error
	Cancel(ctx context.Context, reservationID string) error
	Status(ctx context.Context, reservationID string) (model.Lease, error)
	SweepExpired(ctx context.Context, now time.Time) int
}

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type reservationService struct {
	ledger    *ledger.Ledger
	registry  *registry.Registry
	validator *validator.ReservationValidator
	publisher EventPublisher
	cfg       *config.Config
}

// NewReservationService wires the core behind the boundary API. publisher
// may be nil; lease lifecycle events are then skipped.
func NewReservationService(
	l *ledger.Ledger,
	reg *registry.Registry,
	v *validator.ReservationValidator,
	publisher EventPublisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		ledger:    l,
		registry:  reg,
		validator: v,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.ledger.ListAll(), nil
}

func (s *reservationService) GetItem(ctx context.Context, sku string) (model.Item, error) {
	if sku == "" {
		return model.Item{}, apperrors.InvalidInput("SKU cannot be empty")
	}

	item, err := s.ledger.Get(sku)
	if err != nil {
		if errors.Is(err, reserrors.ErrItemNotFound) {
			return model.Item{}, apperrors.NotFoundWithID("Product", sku)
		}
		return model.Item{}, apperrors.Internal("Failed to retrieve product", err)
	}
	return item, nil
}

func (s *reservationService) Reserve(ctx context.Context, req *model.ReserveRequest) (model.Lease, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := s.validator.ValidateReserve(req); err != nil {
		s.cfg.Log.Warn("Reserve validation failed", "sku", req.SKU, "error", err)
		return model.Lease{}, apperrors.Validation("Invalid reservation request", map[string]any{"error": err.Error()})
	}

	lease, err := s.registry.Reserve(req.SKU, req.Quantity, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, reserrors.ErrInvalidQuantity):
			return model.Lease{}, apperrors.InvalidInput("Quantity must be greater than 0")
		case errors.Is(err, reserrors.ErrItemNotFound):
			return model.Lease{}, apperrors.NotFoundWithID("Product", req.SKU)
		case errors.Is(err, reserrors.ErrInsufficientStock):
			s.cfg.Log.Info("Reservation rejected, insufficient stock",
				"sku", req.SKU,
				"quantity", req.Quantity,
				"user_id", req.UserID,
			)
			return model.Lease{}, apperrors.InsufficientStock(req.SKU)
		default:
			s.cfg.Log.Error("Failed to reserve inventory", "sku", req.SKU, "error", err)
			return model.Lease{}, apperrors.Internal("Failed to reserve inventory", err)
		}
	}

	s.cfg.Log.Info("Reservation placed",
		"reservation_id", lease.ID,
		"sku", lease.SKU,
		"quantity", lease.Quantity,
		"user_id", lease.RequesterID,
		"expires_at", lease.ExpiresAt,
	)
	s.publishEvent(ctx, model.EventLeaseReserved, lease)

	return lease, nil
}

func (s *reservationService) Confirm(ctx context.Context, reservationID string) error {
	if reservationID == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	lease, err := s.registry.Confirm(reservationID)
	if err != nil {
		if errors.Is(err, reserrors.ErrLeaseNotFoundOrExpired) {
			return apperrors.NotFoundWithMessage("Reservation not found or has expired")
		}
		s.cfg.Log.Error("Failed to confirm reservation", "reservation_id", reservationID, "error", err)
		return apperrors.Internal("Failed to confirm reservation", err)
	}

	s.cfg.Log.Info("Reservation confirmed",
		"reservation_id", lease.ID,
		"sku", lease.SKU,
		"quantity", lease.Quantity,
	)
	s.publishEvent(ctx, model.EventLeaseConfirmed, lease)
	return nil
}

func (s *reservationService) Cancel(ctx context.Context, reservationID string) error {
	if reservationID == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	lease, err := s.registry.Release(reservationID, model.LeaseStatusCancelled)
	if err != nil {
		if errors.Is(err, reserrors.ErrInternalInconsistency) {
			s.cfg.Log.Error("Ledger inconsistency detected on cancel",
				"reservation_id", reservationID,
				"error", err,
			)
			return apperrors.Internal("Inventory inconsistency detected", err)
		}
		if errors.Is(err, reserrors.ErrLeaseNotFoundOrProcessed) {
			return apperrors.NotFoundWithMessage("Reservation not found or already processed")
		}
		s.cfg.Log.Error("Failed to cancel reservation", "reservation_id", reservationID, "error", err)
		return apperrors.Internal("Failed to cancel reservation", err)
	}

	s.cfg.Log.Info("Reservation cancelled",
		"reservation_id", lease.ID,
		"sku", lease.SKU,
		"quantity", lease.Quantity,
	)
	s.publishEvent(ctx, model.EventLeaseCancelled, lease)
	return nil
}

func (s *reservationService) Status(ctx context.Context, reservationID string) (model.Lease, error) {
	if reservationID == "" {
		return model.Lease{}, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	lease, err := s.registry.Status(reservationID)
	if err != nil {
		if errors.Is(err, reserrors.ErrLeaseNotFound) {
			return model.Lease{}, apperrors.NotFoundWithID("Reservation", reservationID)
		}
		return model.Lease{}, apperrors.Internal("Failed to retrieve reservation", err)
	}
	return lease, nil
}

func (s *reservationService) SweepExpired(ctx context.Context, now time.Time) int {
	swept, err := s.registry.SweepExpired(now)
	if err != nil {
		// Restock past total means a lease was double-released; a defect,
		// not an operational condition.
		s.cfg.Log.Error("Ledger inconsistency detected during sweep", "error", err)
	}
	for _, lease := range swept {
		s.publishEvent(ctx, model.EventLeaseExpired, lease)
	}
	if len(swept) > 0 {
		s.cfg.Log.Info("Expired reservations reclaimed", "count", len(swept))
	}
	return len(swept)
}

// publishEvent emits a lease lifecycle event. Events are best-effort
// observability; failures are logged, never surfaced to the caller.
func (s *reservationService) publishEvent(ctx context.Context, eventType string, lease model.Lease) {
	if s.publisher == nil {
		return
	}

	event := model.LeaseEvent{
		Type:          eventType,
		ReservationID: lease.ID,
		SKU:           lease.SKU,
		UserID:        lease.RequesterID,
		Quantity:      lease.Quantity,
		Status:        string(lease.Status),
		ExpiresAt:     lease.ExpiresAt,
		OccurredAt:    time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(lease.SKU).
		WithEventType(eventType).
		WithSource(eventSource).
		WithValue(event).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish lease event",
			"event_type", eventType,
			"reservation_id", lease.ID,
			"error", err,
		)
	}
}
