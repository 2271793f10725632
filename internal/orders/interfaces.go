package orders

import (
	"context"

	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uint64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status enums.OrderStatus) error
}
