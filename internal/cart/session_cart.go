package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	"github.com/angelmondragon/storefront-checkout/pkg/redis"
	"github.com/angelmondragon/storefront-checkout/pkg/types"
)

type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Store keeps one cart per browsing session in redis.
type Store struct {
	kv       kv
	ttl      time.Duration
	currency enums.Currency
}

// NewStore builds a cart store priced in currency.
func NewStore(client kv, ttl time.Duration, currency enums.Currency) *Store {
	return &Store{kv: client, ttl: ttl, currency: currency}
}

// For returns the cart of a session.
func (s *Store) For(sessionID string) *SessionCart {
	return &SessionCart{store: s, key: s.kv.CartKey(sessionID)}
}

// SessionCart is the cart of one session. Items are read from redis on every
// call.
type SessionCart struct {
	store *Store
	key   string
}

func (c *SessionCart) Items(ctx context.Context) ([]checkout.CartItem, error) {
	raw, err := c.store.kv.Get(ctx, c.key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var items []checkout.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (c *SessionCart) IsEmpty(ctx context.Context) (bool, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return false, err
	}
	return len(items) == 0, nil
}

// CalculateTotals sums line prices. Taxes, shipping and discounts are priced
// elsewhere, so the subtotal equals the total.
func (c *SessionCart) CalculateTotals(ctx context.Context) (checkout.CartTotals, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return checkout.CartTotals{}, err
	}
	sum := decimal.Zero
	count := 0
	for _, item := range items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	money := types.NewMoney(sum.Round(2), c.store.currency)
	return checkout.CartTotals{ItemCount: count, Subtotal: money, Total: money}, nil
}

// Replace overwrites the cart contents.
func (c *SessionCart) Replace(ctx context.Context, items []checkout.CartItem) error {
	if len(items) == 0 {
		return c.Empty(ctx)
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.store.kv.Set(ctx, c.key, payload, c.store.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Empty removes every item. Emptying an empty cart is not an error.
func (c *SessionCart) Empty(ctx context.Context) error {
	if err := c.store.kv.Del(ctx, c.key); err != nil {
		return fmt.Errorf("empty cart: %w", err)
	}
	return nil
}
