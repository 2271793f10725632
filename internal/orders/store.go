package orders

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
	"github.com/angelmondragon/storefront-checkout/pkg/types"
)

// Store serves order snapshots to the checkout flows.
type Store struct {
	repo    Repository
	baseURL string
}

// NewStore builds the order store. baseURL is the public storefront origin
// used to build pay links.
func NewStore(repo Repository, baseURL string) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Store{repo: repo, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Get loads the order and converts it to a snapshot.
func (s *Store) Get(ctx context.Context, id uint64) (*checkout.OrderSnapshot, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(order), nil
}

// OwnerOf returns the customer the order belongs to, nil for guest orders.
func (s *Store) OwnerOf(ctx context.Context, id uint64) (*uuid.UUID, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return order.CustomerID, nil
}

// PaymentURL is the direct pay link for an order.
func (s *Store) PaymentURL(id uint64, key string) string {
	q := url.Values{}
	q.Set(checkout.ParamPayForOrder, "true")
	q.Set(checkout.ParamKey, key)
	return s.baseURL + "/checkout/order-pay/" + strconv.FormatUint(id, 10) + "?" + q.Encode()
}

func (s *Store) find(ctx context.Context, id uint64) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrOrderNotFound
		}
		return nil, pkgerrors.Wrapf(pkgerrors.CodeDependency, err, "load order %d", id)
	}
	return order, nil
}

func (s *Store) snapshot(order *models.Order) *checkout.OrderSnapshot {
	return &checkout.OrderSnapshot{
		ID:                 order.ID,
		Key:                order.OrderKey,
		Status:             order.Status,
		PaymentMethodID:    deref(order.PaymentMethodID),
		PaymentMethodTitle: deref(order.PaymentMethodTitle),
		Billing: checkout.BillingLocation{
			Country:  deref(order.BillingCountry),
			State:    deref(order.BillingState),
			Postcode: deref(order.BillingPostcode),
		},
		Total:              types.NewMoney(order.Total, order.Currency),
		CheckoutPaymentURL: s.PaymentURL(order.ID, order.OrderKey),
		CreatedAt:          order.CreatedAt,
		CustomerID:         order.CustomerID,
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
