package repository

import (
	"context"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// StockAdjustmentRepository define el puerto de persistencia para ajustes
// manuales. Append-only.
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error)
}
