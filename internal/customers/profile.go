package customers

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
)

type billingWriter interface {
	UpsertBilling(ctx context.Context, id uuid.UUID, update checkout.BillingUpdate) error
}

// Profile is the stored billing profile of a logged-in customer.
type Profile struct {
	repo billingWriter
	id   uuid.UUID
}

func NewProfile(repo billingWriter, id uuid.UUID) *Profile {
	return &Profile{repo: repo, id: id}
}

func (p *Profile) SetBillingLocation(ctx context.Context, update checkout.BillingUpdate) error {
	return p.repo.UpsertBilling(ctx, p.id, update)
}
