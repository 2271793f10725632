package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
)

// Repository exposes customer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a customer by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpsertBilling writes the billing location, creating the customer row when
// it does not exist yet. Nil fields are stored as NULL.
func (r *Repository) UpsertBilling(ctx context.Context, id uuid.UUID, update checkout.BillingUpdate) error {
	customer := &models.Customer{
		ID:              id,
		BillingCountry:  update.Country,
		BillingState:    update.State,
		BillingPostcode: update.Postcode,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"billing_country", "billing_state", "billing_postcode", "updated_at"}),
		}).
		Create(customer).Error
}
