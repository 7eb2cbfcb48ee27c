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

// MovementUseCase registra eventos de stock dirigidos por negocio:
// recepciones de compra y devoluciones (entradas) y mermas por daño (salida).
// SALE entra únicamente por fulfil de reserva y ADJUSTMENT por adjust-stock,
// para que cada tipo tenga un solo punto de entrada.
type MovementUseCase struct {
	tx      TxRunner
	auditor audit.Notifier
	metrics *metrics.Metrics
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(tx TxRunner, auditor audit.Notifier, m *metrics.Metrics) *MovementUseCase {
	return &MovementUseCase{tx: tx, auditor: auditor, metrics: m}
}

// RegisterMovementInput entrada para registrar un movimiento.
type RegisterMovementInput struct {
	ProductID string
	Type      entity.MovementType
	Quantity  int64 // siempre > 0; el signo lo determina el tipo
	Reason    string
	Reference string
	ActorID   string
}

// RegisterMovement valida tipo y cantidad, bloquea la fila del producto y
// aplica libro + movimiento como una unidad atómica.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, input RegisterMovementInput) (*dto.StockMovementResponse, error) {
	if input.ProductID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" || len(reason) > maxReasonLength {
		return nil, domain.ErrInvalidInput
	}

	switch input.Type {
	case entity.MovementPurchase, entity.MovementReturn, entity.MovementDamage:
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp dto.StockMovementResponse

	err := uc.tx.Run(ctx, func(r Repos) error {
		product, err := r.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}

		var mov *entity.StockMovement
		if input.Type == entity.MovementDamage {
			mov, err = ledgerDecrease(ctx, r, product, input.Type, input.Quantity, reason, input.Reference, input.ActorID, now)
		} else {
			mov, err = ledgerIncrease(ctx, r, product, input.Type, input.Quantity, reason, input.Reference, input.ActorID, now)
		}
		if err != nil {
			return err
		}
		resp = dto.ToStockMovementResponse(mov)
		return nil
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.RecordInsufficientStock("movement")
		}
		return nil, err
	}

	uc.metrics.RecordStockOperation("movement")
	uc.auditor.Notify(audit.Event{
		ActivityType: "stock.moved",
		EntityType:   "product",
		EntityID:     input.ProductID,
		Title:        "Movimiento de stock " + input.Type.String(),
		Description:  reason,
		NewValues:    resp,
		Severity:     "info",
		Icon:         "swap_vert",
	})
	return &resp, nil
}
