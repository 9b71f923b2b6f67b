package order

import (
	"context"
	"errors"

	"github.com/autoparts/backend/internal/domain/catalog"
	domainorder "github.com/autoparts/backend/internal/domain/order"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService places orders. The whole placement runs in a single
// transaction: snapshot-read the products with row locks, validate stock,
// write the order and its lines, then apply guarded stock decrements.
type CheckoutService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(scope TransactionScope, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{scope: scope, logger: logger}
}

// PlaceOrder validates the request and executes the checkout transaction.
// A transaction that fails with TRANSACTION_FAILURE (deadlock or
// serialization conflict) is retried once before the error surfaces.
func (s *CheckoutService) PlaceOrder(ctx context.Context, buyerID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	if err := validatePlaceOrder(req); err != nil {
		return nil, err
	}

	shipping := domainorder.ShippingInfo{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
	}
	payment := domainorder.PaymentMethod(req.PaymentMethod)

	placed, err := s.placeOnce(ctx, buyerID, shipping, payment, req.Items)
	if isTransactionFailure(err) {
		s.logger.Warn("checkout transaction conflicted, retrying once",
			zap.String("buyer_id", buyerID.String()),
			zap.Error(err))
		placed, err = s.placeOnce(ctx, buyerID, shipping, payment, req.Items)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("total", placed.TotalAmount.StringFixed(2)),
		zap.Int("items", placed.ItemCount()))

	resp := ToOrderResponse(placed)
	return &resp, nil
}

// placeOnce runs one attempt of the checkout transaction
func (s *CheckoutService) placeOnce(
	ctx context.Context,
	buyerID uuid.UUID,
	shipping domainorder.ShippingInfo,
	payment domainorder.PaymentMethod,
	lines []PlaceOrderLine,
) (*domainorder.Order, error) {
	var placed *domainorder.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ids := make([]uuid.UUID, 0, len(lines))
		seen := make(map[uuid.UUID]bool, len(lines))
		for _, line := range lines {
			if !seen[line.ProductID] {
				seen[line.ProductID] = true
				ids = append(ids, line.ProductID)
			}
		}

		// Row locks pin the price/stock snapshot for the whole transaction.
		products, err := repos.Products().FindForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		items := make([]domainorder.Item, 0, len(lines))
		for _, line := range lines {
			product, ok := byID[line.ProductID]
			if !ok {
				return catalog.ErrProductNotFound(line.ProductID.String())
			}
			if !product.HasStock(line.Quantity) {
				return catalog.ErrInsufficientStock(product.ID.String())
			}

			item, err := domainorder.NewItem(uuid.Nil, product.ID, product.Name, line.Quantity, product.PriceMoney())
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		o, err := domainorder.NewOrder(buyerID, shipping, payment, items)
		if err != nil {
			return err
		}

		if err := repos.Orders().Create(ctx, o); err != nil {
			return err
		}

		// Guarded decrement: zero affected rows means the stock guard lost
		// a race despite the row lock, so the whole order rolls back.
		for _, item := range o.Items {
			affected, err := repos.Products().DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return catalog.ErrInsufficientStock(item.ProductID.String())
			}
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// validatePlaceOrder checks everything that does not need the database
func validatePlaceOrder(req PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return shared.ErrEmptyCart
	}
	for _, line := range req.Items {
		if line.ProductID == uuid.Nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
		}
	}

	shipping := domainorder.ShippingInfo{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
	}
	if err := shipping.Validate(); err != nil {
		return err
	}
	if !domainorder.PaymentMethod(req.PaymentMethod).IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unsupported payment method")
	}
	return nil
}

// isTransactionFailure reports whether the error is a retryable conflict
func isTransactionFailure(err error) bool {
	if err == nil {
		return false
	}
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "TRANSACTION_FAILURE"
}
