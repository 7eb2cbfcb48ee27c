package stock

import (
	"context"
	"time"

	"github.com/jhoicas/erp-stock-api/internal/application/dto"
	"github.com/jhoicas/erp-stock-api/internal/domain"
	domstock "github.com/jhoicas/erp-stock-api/internal/domain/stock"
)

// QueryUseCase agrupa las lecturas del subsistema de stock: disponibilidad,
// historiales y la verificación de conciliación. Solo lectura, sin mutación.
type QueryUseCase struct {
	tx TxRunner
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(tx TxRunner) *QueryUseCase {
	return &QueryUseCase{tx: tx}
}

// GetStockInfo devuelve stock físico, reservado y disponible más las reservas
// activas, todo leído dentro de un único snapshot (tx de solo lectura con
// REPEATABLE READ): dos consultas descoordinadas podrían reportar una
// disponibilidad que nunca existió.
func (uc *QueryUseCase) GetStockInfo(ctx context.Context, productID string) (*dto.ProductStockInfoResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp dto.ProductStockInfoResponse
	err := uc.tx.RunReadOnly(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}

		active, err := r.Reservations.ListActiveByProduct(ctx, productID)
		if err != nil {
			return err
		}

		resp = dto.ToProductStockInfoResponse(domstock.BuildStockInfo(product, active))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMovements devuelve el historial de movimientos del producto, más reciente primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	var out []dto.StockMovementResponse
	err := uc.tx.RunReadOnly(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}
		movements, err := r.Movements.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.StockMovementResponse, 0, len(movements))
		for _, m := range movements {
			out = append(out, dto.ToStockMovementResponse(m))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAdjustments devuelve el historial de ajustes manuales del producto.
func (uc *QueryUseCase) ListAdjustments(ctx context.Context, productID string, page dto.PageRequest) ([]dto.StockAdjustmentResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	var out []dto.StockAdjustmentResponse
	err := uc.tx.RunReadOnly(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}
		adjustments, err := r.Adjustments.ListByProduct(ctx, productID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.StockAdjustmentResponse, 0, len(adjustments))
		for _, a := range adjustments {
			out = append(out, dto.StockAdjustmentResponse{
				ID:                 a.ID,
				ProductID:          a.ProductID,
				ProductName:        product.Name,
				SKU:                product.SKU,
				AdjustmentQuantity: a.AdjustmentQuantity,
				Reason:             a.Reason,
				AdjustedBy:         a.AdjustedBy,
				AdjustedAt:         a.AdjustedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveReservations devuelve las reservas activas del producto.
func (uc *QueryUseCase) ListActiveReservations(ctx context.Context, productID string) ([]dto.ReservationResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	var out []dto.ReservationResponse
	err := uc.tx.RunReadOnly(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}
		active, err := r.Reservations.ListActiveByProduct(ctx, productID)
		if err != nil {
			return err
		}
		out = make([]dto.ReservationResponse, 0, len(active))
		for _, resv := range active {
			out = append(out, dto.ToReservationResponse(resv))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reconcile reconstruye el stock desde la bitácora de movimientos y lo
// compara con current_stock. La suma debe coincidir en todo momento; una
// discrepancia indica corrupción y se reporta, no se corrige.
func (uc *QueryUseCase) Reconcile(ctx context.Context, productID string) (*dto.ReconciliationResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp dto.ReconciliationResponse
	err := uc.tx.RunReadOnly(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}
		sum, err := r.Movements.SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		resp = dto.ReconciliationResponse{
			ProductID:    productID,
			CurrentStock: product.CurrentStock,
			MovementSum:  sum,
			Consistent:   sum == product.CurrentStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
