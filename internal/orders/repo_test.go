package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_key TEXT NOT NULL UNIQUE,
  customer_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  currency TEXT NOT NULL DEFAULT 'USD',
  total TEXT NOT NULL,
  payment_method_id TEXT,
  payment_method_title TEXT,
  billing_country TEXT,
  billing_state TEXT,
  billing_postcode TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(v string) *string { return &v }

func seedOrder(t *testing.T, repo Repository, customer *uuid.UUID) *models.Order {
	t.Helper()
	order, err := repo.Create(context.Background(), &models.Order{
		CustomerID:         customer,
		Currency:           enums.CurrencyUSD,
		Total:              decimal.RequireFromString("49.90"),
		PaymentMethodID:    strPtr("bacs"),
		PaymentMethodTitle: strPtr("Direct bank transfer"),
		BillingCountry:     strPtr("US"),
		BillingState:       strPtr("NY"),
	})
	require.NoError(t, err)
	return order
}

func TestRepositoryCreateAssignsKeyAndStatus(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))

	order := seedOrder(t, repo, nil)
	assert.NotZero(t, order.ID)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Regexp(t, `^wc_order_[0-9a-f]{13}$`, order.OrderKey)

	other := seedOrder(t, repo, nil)
	assert.NotEqual(t, order.OrderKey, other.OrderKey)
	assert.Greater(t, other.ID, order.ID)
}

func TestRepositoryFindByID(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	owner := uuid.New()
	created := seedOrder(t, repo, &owner)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.OrderKey, found.OrderKey)
	require.NotNil(t, found.CustomerID)
	assert.Equal(t, owner, *found.CustomerID)
	assert.True(t, decimal.RequireFromString("49.90").Equal(found.Total))
	assert.Nil(t, found.BillingPostcode)

	_, err = repo.FindByID(context.Background(), created.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	created := seedOrder(t, repo, nil)

	require.NoError(t, repo.UpdateStatus(context.Background(), created.ID, enums.OrderStatusCompleted))
	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, found.Status)

	err = repo.UpdateStatus(context.Background(), created.ID+100, enums.OrderStatusCompleted)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
