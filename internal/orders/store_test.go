package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
)

type failingRepo struct {
	Repository
	err error
}

func (f failingRepo) FindByID(context.Context, uint64) (*models.Order, error) {
	return nil, f.err
}

func TestStoreGetBuildsSnapshot(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	owner := uuid.New()
	created := seedOrder(t, repo, &owner)

	store, err := NewStore(repo, "https://shop.test/")
	require.NoError(t, err)

	snap, err := store.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, snap.ID)
	assert.Equal(t, created.OrderKey, snap.Key)
	assert.Equal(t, enums.OrderStatusPending, snap.Status)
	assert.True(t, snap.NeedsPayment())
	assert.Equal(t, "bacs", snap.PaymentMethodID)
	assert.Equal(t, checkout.BillingLocation{Country: "US", State: "NY"}, snap.Billing)
	assert.Equal(t, "$49.90", snap.Total.Format())
	assert.Equal(t, store.PaymentURL(created.ID, created.OrderKey), snap.CheckoutPaymentURL)
	assert.Contains(t, snap.CheckoutPaymentURL, "https://shop.test/checkout/order-pay/")
	assert.Contains(t, snap.CheckoutPaymentURL, "pay_for_order=true")
	require.NotNil(t, snap.CustomerID)
	assert.Equal(t, owner, *snap.CustomerID)
}

func TestStoreGetMissing(t *testing.T) {
	store, err := NewStore(NewRepository(setupOrdersTestDB(t)), "https://shop.test")
	require.NoError(t, err)

	_, err = store.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, checkout.ErrOrderNotFound)

	_, err = store.OwnerOf(context.Background(), 12345)
	assert.ErrorIs(t, err, checkout.ErrOrderNotFound)
}

func TestStoreGetPropagatesFailures(t *testing.T) {
	boom := errors.New("connection reset")
	store, err := NewStore(failingRepo{err: boom}, "https://shop.test")
	require.NoError(t, err)

	_, err = store.Get(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, checkout.ErrOrderNotFound)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestStoreOwnerOfGuestOrder(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	created := seedOrder(t, repo, nil)
	store, err := NewStore(repo, "https://shop.test")
	require.NoError(t, err)

	owner, err := store.OwnerOf(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestStoreURLs(t *testing.T) {
	store, err := NewStore(failingRepo{}, "https://shop.test")
	require.NoError(t, err)

	assert.Equal(t, "https://shop.test/checkout/order-pay/42?key=wc_order_abc&pay_for_order=true", store.PaymentURL(42, "wc_order_abc"))

	_, err = NewStore(nil, "https://shop.test")
	assert.Error(t, err)
}
