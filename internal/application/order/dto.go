package order

import (
	"time"

	domainorder "github.com/autoparts/backend/internal/domain/order"
	"github.com/google/uuid"
)

// PlaceOrderLine is one requested cart line
type PlaceOrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// PlaceOrderRequest is the checkout input
type PlaceOrderRequest struct {
	Items           []PlaceOrderLine `json:"items"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	PaymentMethod   string           `json:"payment_method"`
}

// ItemResponse is an order line in API responses
type ItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
}

// OrderResponse is an order in API responses
type OrderResponse struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `json:"customer_address"`
	PaymentMethod   string         `json:"payment_method"`
	Status          string         `json:"status"`
	TotalAmount     string         `json:"total_amount"`
	Items           []ItemResponse `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ToOrderResponse converts a domain order to its API shape
func ToOrderResponse(o *domainorder.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
		})
	}

	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		PaymentMethod:   string(o.PaymentMethod),
		Status:          o.Status.String(),
		TotalAmount:     o.TotalAmount.StringFixed(2),
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []domainorder.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out
}
