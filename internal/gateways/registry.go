package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
)

type lister interface {
	ListEnabled(ctx context.Context) ([]models.PaymentGateway, error)
}

// Registry filters the enabled gateways down to those able to take payment
// for a given order.
type Registry struct {
	repo lister
}

// NewRegistry builds a gateway registry.
func NewRegistry(repo lister) *Registry {
	return &Registry{repo: repo}
}

// AvailableGateways keeps the storefront ordering. Each call returns fresh
// gateway values so selection state never leaks across requests.
func (r *Registry) AvailableGateways(ctx context.Context, order *checkout.OrderSnapshot) ([]checkout.Gateway, error) {
	rows, err := r.repo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gateways: %w", err)
	}

	out := make([]checkout.Gateway, 0, len(rows))
	for i := range rows {
		if !availableFor(&rows[i], order) {
			continue
		}
		out = append(out, fromModel(&rows[i]))
	}
	return out, nil
}

func availableFor(row *models.PaymentGateway, order *checkout.OrderSnapshot) bool {
	if order == nil {
		return true
	}
	if len(row.Countries) > 0 && !containsFold(row.Countries, order.Billing.Country) {
		return false
	}
	total := order.Total.Amount
	if row.MinTotal != nil && total.LessThan(*row.MinTotal) {
		return false
	}
	if row.MaxTotal != nil && total.GreaterThan(*row.MaxTotal) {
		return false
	}
	return true
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
