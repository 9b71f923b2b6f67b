package catalog

import (
	"time"

	domaincatalog "github.com/autoparts/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateProductRequest is the catalog create input
type CreateProductRequest struct {
	Name  string `json:"name"`
	Part  string `json:"part"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

// UpdateProductRequest is the catalog update input
type UpdateProductRequest struct {
	Name  string `json:"name"`
	Part  string `json:"part"`
	Price string `json:"price"`
}

// ImageUpload carries an uploaded product image
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductResponse is a product in API responses
type ProductResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Part      string    `json:"part"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API shape
func ToProductResponse(p *domaincatalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Part:      p.Part,
		Price:     p.Price.StringFixed(2),
		Stock:     p.Stock,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []domaincatalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
