package stock

import (
	"context"

	"github.com/jhoicas/erp-stock-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products     repository.ProductRepository
	Movements    repository.StockMovementRepository
	Adjustments  repository.StockAdjustmentRepository
	Reservations repository.StockReservationRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// actualización del libro + fila de movimiento + fila de ajuste/reserva son
// una sola unidad todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
	// RunReadOnly abre una transacción de solo lectura con aislamiento
	// REPEATABLE READ: las consultas de disponibilidad ven un único snapshot.
	RunReadOnly(ctx context.Context, fn func(r Repos) error) error
}
