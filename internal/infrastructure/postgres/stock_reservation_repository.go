package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
	"github.com/jhoicas/erp-stock-api/internal/domain/repository"
)

var _ repository.StockReservationRepository = (*StockReservationRepo)(nil)

const reservationColumns = `id, product_id, reserved_quantity, reference, reason, notes, reserved_by, reserved_at, released_at, is_released`

// StockReservationRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las reservas liberadas se conservan: son historial, no se borran.
type StockReservationRepo struct {
	q Querier
}

// NewStockReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockReservationRepository(q Querier) *StockReservationRepo {
	return &StockReservationRepo{q: q}
}

// Create persiste una reserva activa.
func (r *StockReservationRepo) Create(ctx context.Context, reservation *entity.StockReservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_reservations (id, product_id, reserved_quantity, reference, reason, notes, reserved_by, reserved_at, released_at, is_released)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, false)`
	_, err := r.q.Exec(ctx, query,
		reservation.ID, reservation.ProductID, reservation.ReservedQuantity,
		reservation.Reference, reservation.Reason, reservation.Notes,
		reservation.ReservedBy, reservation.ReservedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *StockReservationRepo) GetByID(ctx context.Context, id string) (*entity.StockReservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM stock_reservations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get reservation")
}

// GetForUpdate obtiene la reserva y bloquea su fila (SELECT FOR UPDATE).
func (r *StockReservationRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockReservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM stock_reservations WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get reservation for update")
}

// Release marca la reserva como liberada. Solo transiciona filas activas:
// una reserva liberada es inmutable.
func (r *StockReservationRepo) Release(ctx context.Context, reservation *entity.StockReservation) error {
	query := `
		UPDATE stock_reservations
		SET released_at = $2, is_released = true
		WHERE id = $1 AND NOT is_released`
	tag, err := r.q.Exec(ctx, query, reservation.ID, reservation.ReleasedAt)
	if err != nil {
		return fmt.Errorf("release reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// SumActiveByProduct suma reserved_quantity de las reservas activas del producto.
func (r *StockReservationRepo) SumActiveByProduct(ctx context.Context, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(reserved_quantity), 0)
		FROM stock_reservations WHERE product_id = $1 AND NOT is_released`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum active reservations: %w", err)
	}
	return sum, nil
}

// ListActiveByProduct lista las reservas activas del producto, más antigua primero.
func (r *StockReservationRepo) ListActiveByProduct(ctx context.Context, productID string) ([]*entity.StockReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM stock_reservations WHERE product_id = $1 AND NOT is_released
		ORDER BY reserved_at`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockReservation
	for rows.Next() {
		var resv entity.StockReservation
		if err := rows.Scan(
			&resv.ID, &resv.ProductID, &resv.ReservedQuantity, &resv.Reference,
			&resv.Reason, &resv.Notes, &resv.ReservedBy, &resv.ReservedAt,
			&resv.ReleasedAt, &resv.IsReleased,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &resv)
	}
	return list, rows.Err()
}

func (r *StockReservationRepo) scanOne(row pgx.Row, op string) (*entity.StockReservation, error) {
	var resv entity.StockReservation
	err := row.Scan(
		&resv.ID, &resv.ProductID, &resv.ReservedQuantity, &resv.Reference,
		&resv.Reason, &resv.Notes, &resv.ReservedBy, &resv.ReservedAt,
		&resv.ReleasedAt, &resv.IsReleased,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resv, nil
}
