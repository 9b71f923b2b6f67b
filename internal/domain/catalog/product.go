package catalog

import (
	"fmt"
	"strings"

	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/autoparts/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is the catalog aggregate root for a sellable auto part.
// Stock is mutated only through Restock/AdjustStock here and through the
// guarded decrement inside the checkout transaction.
type Product struct {
	shared.BaseEntity
	Name     string          `gorm:"size:255;not null"`
	Part     string          `gorm:"size:100;not null;index"`
	Price    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Stock    int             `gorm:"not null;default:0"`
	ImageURL string          `gorm:"size:512"`
}

// NewProduct creates a new product with validation
func NewProduct(name, part string, price decimal.Decimal, stock int, imageURL string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if strings.TrimSpace(part) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Part category cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Part:       part,
		Price:      price,
		Stock:      stock,
		ImageURL:   imageURL,
	}, nil
}

// Update replaces the mutable product attributes
func (p *Product) Update(name, part string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if strings.TrimSpace(part) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Part category cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Price cannot be negative")
	}

	p.Name = name
	p.Part = part
	p.Price = price
	return nil
}

// SetImageURL sets the stored image location
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
}

// Restock increases stock by the given quantity
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Restock quantity must be positive")
	}
	p.Stock += quantity
	return nil
}

// AdjustStock sets stock to an absolute non-negative value
func (p *Product) AdjustStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Stock cannot be negative")
	}
	p.Stock = stock
	return nil
}

// HasStock reports whether the product can satisfy the requested quantity
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// PriceMoney returns the price as Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyVND(p.Price)
}

// ErrProductNotFound builds the checkout-facing error for an unknown product id
func ErrProductNotFound(id string) *shared.DomainError {
	return shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %s does not exist", id))
}

// ErrInsufficientStock builds the checkout-facing error for a short product
func ErrInsufficientStock(id string) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Insufficient stock for product %s", id))
}
