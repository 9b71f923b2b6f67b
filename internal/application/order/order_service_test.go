package order

import (
	"context"
	"testing"

	"github.com/autoparts/backend/internal/domain/identity"
	domainorder "github.com/autoparts/backend/internal/domain/order"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/autoparts/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedOrder(t *testing.T, repo *memoryOrderRepo, buyerID uuid.UUID, status domainorder.Status) *domainorder.Order {
	t.Helper()
	item, err := domainorder.NewItem(uuid.Nil, uuid.New(), "Mirror", 1,
		valueobject.NewMoneyVND(decimal.NewFromInt(40)))
	require.NoError(t, err)

	o, err := domainorder.NewOrder(buyerID, domainorder.ShippingInfo{
		CustomerName:    "Nguyen Van A",
		CustomerPhone:   "0900000000",
		CustomerAddress: "12 Le Loi, District 1",
	}, domainorder.PaymentCOD, []domainorder.Item{*item})
	require.NoError(t, err)

	for _, step := range []domainorder.Status{domainorder.StatusPaid, domainorder.StatusShipping, domainorder.StatusCompleted} {
		if o.Status == status {
			break
		}
		require.NoError(t, o.TransitionTo(step))
	}
	require.Equal(t, status, o.Status)
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func TestSetStatusLegalTransition(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, zap.NewNop())
	o := seedOrder(t, repo, uuid.New(), domainorder.StatusPending)

	resp, err := svc.SetStatus(context.Background(), o.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)

	stored, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domainorder.StatusPaid, stored.Status)
}

func TestSetStatusIllegalTransition(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, zap.NewNop())
	o := seedOrder(t, repo, uuid.New(), domainorder.StatusPending)

	for _, target := range []string{"completed", "delivered"} {
		_, err := svc.SetStatus(context.Background(), o.ID, target)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	}

	stored, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domainorder.StatusPending, stored.Status)
}

func TestSetStatusTerminalOrder(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, zap.NewNop())
	o := seedOrder(t, repo, uuid.New(), domainorder.StatusCompleted)

	_, err := svc.SetStatus(context.Background(), o.ID, "cancelled")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
}

func TestConfirmReceiptByOwner(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, zap.NewNop())
	buyer := uuid.New()
	o := seedOrder(t, repo, buyer, domainorder.StatusShipping)

	resp, err := svc.ConfirmReceipt(context.Background(), o.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestConfirmReceiptByNonOwner(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, zap.NewNop())
	o := seedOrder(t, repo, uuid.New(), domainorder.StatusShipping)

	_, err := svc.ConfirmReceipt(context.Background(), o.ID, uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)

	stored, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domainorder.StatusShipping, stored.Status)
}

func TestGetByIDVisibility(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo, zap.NewNop())
	buyer := uuid.New()
	o := seedOrder(t, repo, buyer, domainorder.StatusPending)

	_, err := svc.GetByID(context.Background(), o.ID, buyer, identity.RoleBuyer)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), o.ID, uuid.New(), identity.RoleAdmin)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), o.ID, uuid.New(), identity.RoleBuyer)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
