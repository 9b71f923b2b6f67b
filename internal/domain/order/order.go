package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/autoparts/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the buyer-selected settlement method
type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCOD || m == PaymentBankTransfer
}

// Item is a line of an order. UnitPrice is the product price captured at
// checkout time, so historical totals survive later price changes.
type Item struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time
}

// NewItem creates an order line with a price snapshot
func NewItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}

	return &Item{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Subtotal:    unitPrice.MultiplyByInt(int64(quantity)).Amount(),
		CreatedAt:   time.Now(),
	}, nil
}

// SubtotalMoney returns the line subtotal as Money
func (i *Item) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyVND(i.Subtotal)
}

// ShippingInfo is the customer snapshot captured on the order header
type ShippingInfo struct {
	CustomerName    string `gorm:"size:255;not null"`
	CustomerPhone   string `gorm:"size:50;not null"`
	CustomerAddress string `gorm:"size:512;not null"`
}

// Validate checks that all shipping fields are present
func (s ShippingInfo) Validate() error {
	if strings.TrimSpace(s.CustomerName) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer name is required")
	}
	if strings.TrimSpace(s.CustomerPhone) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer phone is required")
	}
	if strings.TrimSpace(s.CustomerAddress) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer address is required")
	}
	return nil
}

// Order is the aggregate root for a placed customer order
type Order struct {
	shared.BaseEntity
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ShippingInfo  `gorm:"embedded"`
	PaymentMethod PaymentMethod   `gorm:"size:30;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status        Status          `gorm:"size:20;not null;index"`
	Items         []Item          `gorm:"foreignKey:OrderID"`
	PaidAt        *time.Time
	ShippedAt     *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// NewOrder assembles a pending order from already-priced items.
// The total is recomputed from the item subtotals, never trusted from input.
func NewOrder(userID uuid.UUID, shipping ShippingInfo, payment PaymentMethod, items []Item) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}
	if !payment.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unsupported payment method %q", payment))
	}

	o := &Order{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		ShippingInfo:  shipping,
		PaymentMethod: payment,
		Status:        StatusPending,
		TotalAmount:   decimal.Zero,
	}

	for idx := range items {
		items[idx].OrderID = o.ID
		o.TotalAmount = o.TotalAmount.Add(items[idx].Subtotal)
	}
	o.Items = items

	return o, nil
}

// TransitionTo moves the order to the target status if the state machine
// allows it; otherwise the order is left untouched.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	now := time.Now()
	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusPaid:
		o.PaidAt = &now
	case StatusShipping:
		o.ShippedAt = &now
	case StatusCompleted:
		o.CompletedAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}

	return nil
}

// ConfirmReceipt is the buyer-side transition: the owning buyer acknowledges
// delivery of an order that is currently shipping.
func (o *Order) ConfirmReceipt(buyerID uuid.UUID) error {
	if o.UserID != buyerID {
		return shared.NewDomainError("INVALID_TRANSITION", "Only the order owner can confirm receipt")
	}
	if o.Status != StatusShipping {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot confirm receipt of an order in %s status", o.Status))
	}
	return o.TransitionTo(StatusCompleted)
}

// IsOwnedBy reports whether the order belongs to the given user
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// TotalMoney returns the order total as Money
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyVND(o.TotalAmount)
}

// ItemCount returns the number of order lines
func (o *Order) ItemCount() int {
	return len(o.Items)
}
