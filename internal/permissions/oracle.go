package permissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
)

// OwnerLookup resolves the customer an order belongs to. A nil owner marks a
// guest order.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, orderID uint64) (*uuid.UUID, error)
}

// Oracle answers identity and pay permission questions for one request.
type Oracle struct {
	owners OwnerLookup
	userID *uuid.UUID
}

// NewOracle binds the oracle to the caller's identity. userID is nil for
// anonymous shoppers.
func NewOracle(owners OwnerLookup, userID *uuid.UUID) *Oracle {
	return &Oracle{owners: owners, userID: userID}
}

func (o *Oracle) IsAuthenticated() bool {
	return o.userID != nil
}

// CanPayForOrder allows guest orders to anyone holding the link and customer
// orders only to their owner. Missing orders are never payable.
func (o *Oracle) CanPayForOrder(ctx context.Context, orderID uint64) (bool, error) {
	owner, err := o.owners.OwnerOf(ctx, orderID)
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve order owner: %w", err)
	}
	if owner == nil {
		return true, nil
	}
	return o.userID != nil && *o.userID == *owner, nil
}
