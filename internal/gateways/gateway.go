package gateways

import "github.com/angelmondragon/storefront-checkout/pkg/db/models"

// Gateway is a payment method offered on the pay page.
type Gateway struct {
	id          string
	title       string
	description string
	current     bool
}

func fromModel(row *models.PaymentGateway) *Gateway {
	g := &Gateway{id: row.ID, title: row.Title}
	if row.Description != nil {
		g.description = *row.Description
	}
	return g
}

func (g *Gateway) ID() string          { return g.id }
func (g *Gateway) Title() string       { return g.title }
func (g *Gateway) Description() string { return g.description }
func (g *Gateway) SetAsCurrent()       { g.current = true }
func (g *Gateway) IsCurrent() bool     { return g.current }
