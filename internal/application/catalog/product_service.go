package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	domaincatalog "github.com/autoparts/backend/internal/domain/catalog"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ImageStorage stores product images and returns public URLs.
// Implementations cover local disk and S3-compatible backends.
type ImageStorage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ProductService handles catalog CRUD and restocking
type ProductService struct {
	products domaincatalog.ProductRepository
	images   ImageStorage
	logger   *zap.Logger
}

// NewProductService creates a product service
func NewProductService(products domaincatalog.ProductRepository, images ImageStorage, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: products, images: images, logger: logger}
}

// Create adds a product to the catalog, storing the image first when given
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, image *ImageUpload) (*ProductResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	product, err := domaincatalog.NewProduct(req.Name, req.Part, price, req.Stock, "")
	if err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.storeImage(ctx, product.ID, image)
		if err != nil {
			return nil, err
		}
		product.SetImageURL(url)
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces the mutable attributes of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest, image *ImageUpload) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Part, price); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.storeImage(ctx, product.ID, image)
		if err != nil {
			return nil, err
		}
		product.SetImageURL(url)
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products matching the filter with the total count
func (s *ProductService) List(ctx context.Context, filter domaincatalog.ListFilter) ([]ProductResponse, int64, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Restock increases product stock outside the checkout path
func (s *ProductService) Restock(ctx context.Context, id uuid.UUID, quantity int) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Restock(quantity); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product restocked",
		zap.String("product_id", id.String()),
		zap.Int("quantity", quantity),
		zap.Int("stock", product.Stock))

	resp := ToProductResponse(product)
	return &resp, nil
}

// storeImage writes the upload under a key derived from the product id
func (s *ProductService) storeImage(ctx context.Context, productID uuid.UUID, image *ImageUpload) (string, error) {
	if s.images == nil {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Image uploads are not enabled")
	}
	key := fmt.Sprintf("products/%s%s", productID, filepath.Ext(image.Filename))
	return s.images.Save(ctx, key, image.Data, image.ContentType)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("VALIDATION_ERROR", "Price must be a decimal number")
	}
	return price, nil
}
