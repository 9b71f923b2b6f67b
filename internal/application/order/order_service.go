package order

import (
	"context"

	"github.com/autoparts/backend/internal/domain/identity"
	domainorder "github.com/autoparts/backend/internal/domain/order"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles order queries and status transitions outside checkout
type Service struct {
	orders domainorder.Repository
	logger *zap.Logger
}

// NewService creates an order service
func NewService(orders domainorder.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, logger: logger}
}

// GetByID returns an order visible to the actor: owners see their own
// orders, staff and admin see all.
func (s *Service) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole identity.Role) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(actorID) && !actorRole.CanManageCatalog() {
		return nil, shared.ErrForbidden
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListByUser returns the buyer's own orders, newest first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListAll returns paginated orders for the admin view, optionally filtered
// by status
func (s *Service) ListAll(ctx context.Context, filter domainorder.ListFilter) ([]OrderResponse, int64, error) {
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// SetStatus drives an admin transition through the state machine.
// Illegal transitions fail with INVALID_TRANSITION and leave the order
// unchanged.
func (s *Service) SetStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*OrderResponse, error) {
	target, ok := domainorder.ParseStatus(rawStatus)
	if !ok {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Unknown order status "+rawStatus)
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := o.Status
	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("from", previous.String()),
		zap.String("to", o.Status.String()))

	resp := ToOrderResponse(o)
	return &resp, nil
}

// ConfirmReceipt is the buyer transition: an owned shipping order moves to
// completed
func (s *Service) ConfirmReceipt(ctx context.Context, orderID, buyerID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.ConfirmReceipt(buyerID); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order receipt confirmed",
		zap.String("order_id", o.ID.String()),
		zap.String("buyer_id", buyerID.String()))

	resp := ToOrderResponse(o)
	return &resp, nil
}
