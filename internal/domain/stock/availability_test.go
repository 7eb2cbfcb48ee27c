package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

func TestAvailable(t *testing.T) {
	assert.Equal(t, int64(70), Available(90, 20))
	assert.Equal(t, int64(0), Available(20, 20))
	// Un ajuste pudo bajar el físico por debajo de lo reservado; el cálculo
	// reporta el negativo y el caller decide.
	assert.Equal(t, int64(-5), Available(15, 20))
}

func TestSumReserved_IgnoraLiberadas(t *testing.T) {
	now := time.Now()
	released := &entity.StockReservation{ReservedQuantity: 8}
	released.Release(now)

	total := SumReserved([]*entity.StockReservation{
		{ReservedQuantity: 5},
		{ReservedQuantity: 7},
		released,
	})
	assert.Equal(t, int64(12), total, "las liberadas ya no retienen disponibilidad")
}

func TestSumMovements_CantidadesConSigno(t *testing.T) {
	total := SumMovements([]*entity.StockMovement{
		{Type: entity.MovementPurchase, Quantity: 100},
		{Type: entity.MovementAdjustment, Quantity: -10},
		{Type: entity.MovementSale, Quantity: -20},
	})
	assert.Equal(t, int64(70), total)
}

func TestReservation_ReleaseIdempotente(t *testing.T) {
	r := &entity.StockReservation{ReservedQuantity: 3}
	assert.True(t, r.IsActive())

	first := time.Now()
	r.Release(first)
	assert.False(t, r.IsActive())
	assert.Equal(t, first, *r.ReleasedAt)

	r.Release(first.Add(time.Hour))
	assert.Equal(t, first, *r.ReleasedAt, "la segunda liberación no reescribe el historial")
}
