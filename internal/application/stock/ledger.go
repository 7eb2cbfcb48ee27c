package stock

import (
	"context"
	"time"

	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// El libro de stock (ledger) es el único camino para mutar
// Product.CurrentStock: cada cambio queda emparejado, en la misma
// transacción, con exactamente una fila en stock_movements. Los llamadores
// deben tener la fila del producto bloqueada (GetForUpdate) antes de entrar.

// ledgerIncrease suma qty (> 0) al stock físico y registra el movimiento.
func ledgerIncrease(ctx context.Context, r Repos, product *entity.Product, typ entity.MovementType, qty int64, reason, reference, actor string, now time.Time) (*entity.StockMovement, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return ledgerApply(ctx, r, product, typ, qty, reason, reference, actor, now)
}

// ledgerDecrease resta qty (> 0) del stock físico y registra el movimiento.
// Falla con ErrInsufficientStock si dejaría el stock negativo.
func ledgerDecrease(ctx context.Context, r Repos, product *entity.Product, typ entity.MovementType, qty int64, reason, reference, actor string, now time.Time) (*entity.StockMovement, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return ledgerApply(ctx, r, product, typ, -qty, reason, reference, actor, now)
}

// ledgerApply aplica una cantidad con signo: actualiza current_stock y crea
// la fila de movimiento. Nunca deja el libro sin su fila de auditoría.
func ledgerApply(ctx context.Context, r Repos, product *entity.Product, typ entity.MovementType, signedQty int64, reason, reference, actor string, now time.Time) (*entity.StockMovement, error) {
	newStock := product.CurrentStock + signedQty
	if newStock < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if err := r.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ProductID:    product.ID,
		Type:         typ,
		Quantity:     signedQty,
		Reason:       reason,
		Reference:    reference,
		MovedBy:      actor,
		MovementDate: now,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	product.CurrentStock = newStock
	return mov, nil
}
