package persistence

import (
	"context"
	"testing"

	"github.com/autoparts/backend/internal/domain/catalog"
	"github.com/autoparts/backend/internal/domain/identity"
	"github.com/autoparts/backend/internal/domain/order"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/autoparts/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &order.Order{}, &order.Item{}, &identity.User{}))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, repo *GormProductRepository, name, part string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, part, decimal.NewFromInt(price), stock, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestProductRoundTrip(t *testing.T) {
	repo := NewGormProductRepository(newSQLiteDB(t))
	p := seedProduct(t, repo, "LED Headlight", "headlight", 150, 10)

	loaded, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "LED Headlight", loaded.Name)
	assert.Equal(t, 10, loaded.Stock)
	assert.True(t, loaded.Price.Equal(decimal.NewFromInt(150)))
}

func TestProductFindByIDNotFound(t *testing.T) {
	repo := NewGormProductRepository(newSQLiteDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestProductListByPart(t *testing.T) {
	repo := NewGormProductRepository(newSQLiteDB(t))
	seedProduct(t, repo, "LED Headlight", "headlight", 150, 10)
	seedProduct(t, repo, "Halogen Headlight", "headlight", 90, 5)
	seedProduct(t, repo, "Brake Pad", "brake", 80, 7)

	products, total, err := repo.List(context.Background(), catalog.ListFilter{Part: "headlight"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)

	_, total, err = repo.List(context.Background(), catalog.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestProductDelete(t *testing.T) {
	repo := NewGormProductRepository(newSQLiteDB(t))
	p := seedProduct(t, repo, "Mirror", "mirror", 40, 3)

	require.NoError(t, repo.Delete(context.Background(), p.ID))

	err := repo.Delete(context.Background(), p.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestDecrementStockGuardOnRealDB(t *testing.T) {
	repo := NewGormProductRepository(newSQLiteDB(t))
	p := seedProduct(t, repo, "Mirror", "mirror", 40, 3)
	ctx := context.Background()

	affected, err := repo.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// 1 unit left, asking for 2 must touch zero rows
	affected, err = repo.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	loaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Stock)
}

func TestOrderRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	products := NewGormProductRepository(db)
	orders := NewGormOrderRepository(db)
	ctx := context.Background()

	p := seedProduct(t, products, "LED Headlight", "headlight", 150, 10)
	item, err := order.NewItem(uuid.Nil, p.ID, p.Name, 3, valueobject.NewMoneyVND(p.Price))
	require.NoError(t, err)

	buyer := uuid.New()
	o, err := order.NewOrder(buyer, order.ShippingInfo{
		CustomerName:    "Nguyen Van A",
		CustomerPhone:   "0900000000",
		CustomerAddress: "12 Le Loi, District 1",
	}, order.PaymentCOD, []order.Item{*item})
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, o))

	loaded, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(450)))
	assert.True(t, loaded.Items[0].UnitPrice.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, order.StatusPending, loaded.Status)

	byUser, err := orders.FindByUser(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, loaded.TransitionTo(order.StatusPaid))
	require.NoError(t, orders.Save(ctx, loaded))

	again, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, again.Status)
	assert.Len(t, again.Items, 1)
}

func TestOrderListFilterByStatus(t *testing.T) {
	db := newSQLiteDB(t)
	orders := NewGormOrderRepository(db)
	ctx := context.Background()

	for i, status := range []order.Status{order.StatusPending, order.StatusPending, order.StatusPaid} {
		item, err := order.NewItem(uuid.Nil, uuid.New(), "Part", 1, valueobject.NewMoneyVND(decimal.NewFromInt(int64(10*(i+1)))))
		require.NoError(t, err)
		o, err := order.NewOrder(uuid.New(), order.ShippingInfo{
			CustomerName: "A", CustomerPhone: "1", CustomerAddress: "X",
		}, order.PaymentCOD, []order.Item{*item})
		require.NoError(t, err)
		if status != order.StatusPending {
			require.NoError(t, o.TransitionTo(status))
		}
		require.NoError(t, orders.Create(ctx, o))
	}

	_, total, err := orders.List(ctx, order.ListFilter{Status: order.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = orders.List(ctx, order.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestUserRoundTrip(t *testing.T) {
	repo := NewGormUserRepository(newSQLiteDB(t))
	ctx := context.Background()

	u, err := identity.NewUser("An Tran", "an@example.com", "$2a$10$hash", identity.RoleBuyer)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.FindByEmail(ctx, "AN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	require.NoError(t, byEmail.ChangeRole(identity.RoleStaff))
	require.NoError(t, repo.Save(ctx, byEmail))

	loaded, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleStaff, loaded.Role)

	_, total, err := repo.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.FindByID(ctx, u.ID)
	assert.Error(t, err)
}
