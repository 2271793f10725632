package gateways

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
)

// Repository reads configured payment gateways.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a gateway repository to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListEnabled returns enabled gateways in storefront order.
func (r *Repository) ListEnabled(ctx context.Context) ([]models.PaymentGateway, error) {
	var rows []models.PaymentGateway
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert creates or replaces a gateway definition.
func (r *Repository) Upsert(ctx context.Context, gateway *models.PaymentGateway) error {
	return r.db.WithContext(ctx).Save(gateway).Error
}
