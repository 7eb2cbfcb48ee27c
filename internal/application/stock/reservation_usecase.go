package stock

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/erp-stock-api/internal/application/audit"
	"github.com/jhoicas/erp-stock-api/internal/application/dto"
	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
	domstock "github.com/jhoicas/erp-stock-api/internal/domain/stock"
	"github.com/jhoicas/erp-stock-api/pkg/metrics"
)

// ReservationUseCase maneja retenciones provisionales contra el stock
// disponible. Reservar no toca el stock físico; fulfil es la transición de
// "retenido" a "despachado" (libera la reserva y descuenta el libro en una
// sola transacción, con movimiento tipo SALE).
//
// Desempate entre reservas concurrentes: orden de llegada. El bloqueo de la
// fila del producto serializa las mutaciones del mismo producto; quien pierde
// la carrera relee los totales actualizados y falla rápido con
// ErrInsufficientStock en vez de quedar encolado.
type ReservationUseCase struct {
	tx      TxRunner
	auditor audit.Notifier
	metrics *metrics.Metrics
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(tx TxRunner, auditor audit.Notifier, m *metrics.Metrics) *ReservationUseCase {
	return &ReservationUseCase{tx: tx, auditor: auditor, metrics: m}
}

// ReserveInput entrada para crear una reserva.
type ReserveInput struct {
	ProductID string
	Quantity  int64 // > 0
	Reference string
	Reason    string
	Notes     string
	ActorID   string
}

// Reserve valida contra el stock disponible (físico - reservas activas) y
// crea la reserva. No modifica Product.CurrentStock.
func (uc *ReservationUseCase) Reserve(ctx context.Context, input ReserveInput) (*dto.ReservationResponse, error) {
	if input.ProductID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(input.Reference) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp dto.ReservationResponse

	err := uc.tx.Run(ctx, func(r Repos) error {
		// El bloqueo de la fila del producto serializa esta reserva con
		// cualquier otra reserva/ajuste/fulfil del mismo producto.
		product, err := r.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrNotFound
		}

		reserved, err := r.Reservations.SumActiveByProduct(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if input.Quantity > domstock.Available(product.CurrentStock, reserved) {
			return domain.ErrInsufficientStock
		}

		resv := &entity.StockReservation{
			ProductID:        product.ID,
			ReservedQuantity: input.Quantity,
			Reference:        input.Reference,
			Reason:           input.Reason,
			Notes:            input.Notes,
			ReservedBy:       input.ActorID,
			ReservedAt:       now,
		}
		if err := r.Reservations.Create(ctx, resv); err != nil {
			return err
		}
		resp = dto.ToReservationResponse(resv)
		return nil
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.RecordInsufficientStock("reserve")
		}
		return nil, err
	}

	uc.metrics.RecordStockOperation("reserve")
	uc.metrics.RecordReservationEvent("created")
	uc.auditor.Notify(audit.Event{
		ActivityType: "reservation.created",
		EntityType:   "reservation",
		EntityID:     resp.ID,
		Title:        "Reserva creada",
		Description:  "reserva contra " + input.Reference,
		NewValues:    resp,
		Severity:     "info",
		Icon:         "lock",
	})
	return &resp, nil
}

// Release libera una reserva. Idempotente: liberar una reserva ya liberada es
// un no-op exitoso (simplifica los reintentos del cliente); ErrNotFound solo
// cuando el ID no existe.
func (uc *ReservationUseCase) Release(ctx context.Context, reservationID string) (*dto.ReservationResponse, error) {
	if reservationID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp dto.ReservationResponse
	var wasActive bool

	err := uc.tx.Run(ctx, func(r Repos) error {
		resv, err := r.Reservations.GetForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if resv == nil {
			return domain.ErrNotFound
		}
		if resv.IsReleased {
			// Ya liberada: historial inmutable, no-op.
			resp = dto.ToReservationResponse(resv)
			return nil
		}
		resv.Release(now)
		if err := r.Reservations.Release(ctx, resv); err != nil {
			return err
		}
		wasActive = true
		resp = dto.ToReservationResponse(resv)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if wasActive {
		uc.metrics.RecordStockOperation("release")
		uc.metrics.RecordReservationEvent("released")
		uc.auditor.Notify(audit.Event{
			ActivityType: "reservation.released",
			EntityType:   "reservation",
			EntityID:     resp.ID,
			Title:        "Reserva liberada",
			NewValues:    resp,
			Severity:     "info",
			Icon:         "lock_open",
		})
	}
	return &resp, nil
}

// FulfilResult resultado del cumplimiento de una reserva.
type FulfilResult struct {
	Reservation dto.ReservationResponse   `json:"reservation"`
	Movement    dto.StockMovementResponse `json:"movement"`
}

// Fulfil cumple una reserva: en una sola transacción libera la reserva,
// descuenta el libro por la cantidad reservada y registra un movimiento tipo
// SALE con la referencia de la reserva. Una reserva ya liberada no puede
// cumplirse (ErrConflict).
func (uc *ReservationUseCase) Fulfil(ctx context.Context, reservationID, actorID string) (*FulfilResult, error) {
	if reservationID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result FulfilResult

	err := uc.tx.Run(ctx, func(r Repos) error {
		// Primera lectura sin bloqueo, solo para conocer el producto y
		// mantener el orden de bloqueo producto -> reserva.
		resv, err := r.Reservations.GetByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if resv == nil {
			return domain.ErrNotFound
		}
		if resv.IsReleased {
			return domain.ErrConflict
		}

		product, err := r.Products.GetForUpdate(ctx, resv.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		// Revalidar con la fila de la reserva bloqueada: otro fulfil/release
		// concurrente pudo ganarnos la carrera.
		resv, err = r.Reservations.GetForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if resv == nil {
			return domain.ErrNotFound
		}
		if resv.IsReleased {
			return domain.ErrConflict
		}

		mov, err := ledgerDecrease(ctx, r, product, entity.MovementSale, resv.ReservedQuantity,
			"despacho de reserva", resv.Reference, actorID, now)
		if err != nil {
			return err
		}

		resv.Release(now)
		if err := r.Reservations.Release(ctx, resv); err != nil {
			return err
		}

		result = FulfilResult{
			Reservation: dto.ToReservationResponse(resv),
			Movement:    dto.ToStockMovementResponse(mov),
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.RecordInsufficientStock("fulfil")
		}
		return nil, err
	}

	uc.metrics.RecordStockOperation("fulfil")
	uc.metrics.RecordReservationEvent("fulfilled")
	uc.auditor.Notify(audit.Event{
		ActivityType: "reservation.fulfilled",
		EntityType:   "reservation",
		EntityID:     result.Reservation.ID,
		Title:        "Reserva despachada",
		Description:  "referencia " + result.Reservation.Reference,
		NewValues:    result,
		Severity:     "info",
		Icon:         "local_shipping",
	})
	return &result, nil
}
