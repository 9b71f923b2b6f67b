package persistence

import (
	"context"
	"fmt"

	"github.com/autoparts/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository on gorm
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Create(product).Error)
}

// Update saves all product fields
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Save(product).Error)
}

// Delete removes a product by id
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// FindByID loads one product
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// List returns products matching the filter and the unpaginated total
func (r *GormProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	if filter.Part != "" {
		query = query.Where("part = ?", filter.Part)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	orderBy := filter.OrderBy
	switch orderBy {
	case "name", "price", "created_at":
	default:
		orderBy = "created_at"
	}
	dir := "desc"
	if filter.OrderDir == "asc" {
		dir = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, dir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var products []catalog.Product
	err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return products, total, nil
}

// Count returns the total number of products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&total).Error
	return total, translateError(err)
}

// FindForUpdate reads products by id with row-level locks.
// Ids are sorted by the query itself so concurrent checkouts acquire locks
// in a consistent order.
func (r *GormProductRepository) FindForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

// DecrementStock applies the guarded decrement and reports affected rows
func (r *GormProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
