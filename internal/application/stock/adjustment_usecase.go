package stock

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/erp-stock-api/internal/application/audit"
	"github.com/jhoicas/erp-stock-api/internal/application/dto"
	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
	"github.com/jhoicas/erp-stock-api/pkg/metrics"
)

const maxReasonLength = 255

// AdjustmentUseCase registra correcciones manuales de stock (recuento, merma)
// de forma transaccional: fila de ajuste + fila de movimiento + actualización
// del libro, con la fila del producto bloqueada (SELECT FOR UPDATE).
type AdjustmentUseCase struct {
	tx      TxRunner
	auditor audit.Notifier
	metrics *metrics.Metrics
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(tx TxRunner, auditor audit.Notifier, m *metrics.Metrics) *AdjustmentUseCase {
	return &AdjustmentUseCase{tx: tx, auditor: auditor, metrics: m}
}

// AdjustStockInput entrada para un ajuste manual.
type AdjustStockInput struct {
	ProductID          string
	AdjustmentQuantity int64 // con signo, nunca cero
	Reason             string
	ActorID            string
}

// AdjustStock valida la entrada, bloquea la fila del producto y aplica el
// ajuste como una unidad atómica. Ajustes negativos fallan con
// ErrInsufficientStock si dejarían el stock físico por debajo de cero.
func (uc *AdjustmentUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*dto.StockAdjustmentResponse, error) {
	if input.ProductID == "" || input.AdjustmentQuantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" || len(reason) > maxReasonLength {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp dto.StockAdjustmentResponse
	var oldStock int64

	err := uc.tx.Run(ctx, func(r Repos) error {
		// Bloquea la fila del producto: serializa los ajustes con cualquier
		// otra mutación de stock del mismo producto.
		product, err := r.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}
		oldStock = product.CurrentStock

		if input.AdjustmentQuantity > 0 {
			_, err = ledgerIncrease(ctx, r, product, entity.MovementAdjustment, input.AdjustmentQuantity, reason, "", input.ActorID, now)
		} else {
			_, err = ledgerDecrease(ctx, r, product, entity.MovementAdjustment, -input.AdjustmentQuantity, reason, "", input.ActorID, now)
		}
		if err != nil {
			return err
		}

		adj := &entity.StockAdjustment{
			ProductID:          product.ID,
			AdjustmentQuantity: input.AdjustmentQuantity,
			Reason:             reason,
			AdjustedBy:         input.ActorID,
			AdjustedAt:         now,
		}
		if err := r.Adjustments.Create(ctx, adj); err != nil {
			return err
		}

		// Snapshot denormalizado para el cliente; se arma con la misma tx.
		resp = dto.StockAdjustmentResponse{
			ID:                 adj.ID,
			ProductID:          product.ID,
			ProductName:        product.Name,
			SKU:                product.SKU,
			AdjustmentQuantity: adj.AdjustmentQuantity,
			Reason:             adj.Reason,
			CurrentStock:       product.CurrentStock,
			AdjustedBy:         adj.AdjustedBy,
			AdjustedAt:         adj.AdjustedAt,
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.RecordInsufficientStock("adjust")
		}
		return nil, err
	}

	// Efectos post-commit: métricas y auditoría, nunca dentro de la tx.
	uc.metrics.RecordStockOperation("adjust")
	uc.auditor.Notify(audit.Event{
		ActivityType: "stock.adjusted",
		EntityType:   "product",
		EntityID:     resp.ProductID,
		Title:        "Ajuste de stock",
		Description:  reason,
		OldValues:    map[string]int64{"current_stock": oldStock},
		NewValues:    map[string]int64{"current_stock": resp.CurrentStock},
		Severity:     "info",
		Icon:         "tune",
	})
	return &resp, nil
}
