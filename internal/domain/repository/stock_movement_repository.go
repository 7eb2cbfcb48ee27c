package repository

import (
	"context"
	"time"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para la bitácora
// de movimientos. Append-only: no expone update ni delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct devuelve la suma de cantidades con signo del producto
	// (verificación de conciliación contra current_stock).
	SumByProduct(ctx context.Context, productID string) (int64, error)
}
