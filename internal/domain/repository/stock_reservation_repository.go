package repository

import (
	"context"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// StockReservationRepository define el puerto de persistencia para reservas.
// Las reservas liberadas se conservan como historial.
type StockReservationRepository interface {
	Create(ctx context.Context, reservation *entity.StockReservation) error
	GetByID(ctx context.Context, id string) (*entity.StockReservation, error)
	// GetForUpdate bloquea la fila de la reserva para release/fulfil.
	GetForUpdate(ctx context.Context, id string) (*entity.StockReservation, error)
	// Release marca la reserva como liberada (released_at + is_released).
	Release(ctx context.Context, reservation *entity.StockReservation) error
	// SumActiveByProduct suma reserved_quantity de las reservas activas del producto.
	SumActiveByProduct(ctx context.Context, productID string) (int64, error)
	ListActiveByProduct(ctx context.Context, productID string) ([]*entity.StockReservation, error)
}
