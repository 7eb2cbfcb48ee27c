package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
	"github.com/jhoicas/erp-stock-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación sobre PostgreSQL (usable con pool o tx).
// Append-only: los ajustes son registros de auditoría inmutables.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un ajuste manual.
func (r *StockAdjustmentRepo) Create(ctx context.Context, adjustment *entity.StockAdjustment) error {
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustments (id, product_id, adjustment_quantity, reason, adjusted_by, adjusted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		adjustment.ID, adjustment.ProductID, adjustment.AdjustmentQuantity,
		adjustment.Reason, adjustment.AdjustedBy, adjustment.AdjustedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock adjustment: %w", err)
	}
	return nil
}

// ListByProduct lista los ajustes de un producto, más reciente primero.
func (r *StockAdjustmentRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT id, product_id, adjustment_quantity, reason, adjusted_by, adjusted_at
		FROM stock_adjustments WHERE product_id = $1
		ORDER BY adjusted_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.AdjustmentQuantity, &a.Reason, &a.AdjustedBy, &a.AdjustedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
