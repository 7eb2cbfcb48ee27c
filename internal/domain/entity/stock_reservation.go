package entity

import "time"

// StockReservation es una retención provisional contra el stock disponible
// (no contra el físico): reservar no cambia Product.CurrentStock, solo
// restringe la disponibilidad. Una reserva liberada es historial inmutable,
// no se borra. No hay expiración automática: vive hasta release o fulfil.
type StockReservation struct {
	ID               string
	ProductID        string
	ReservedQuantity int64  // siempre > 0
	Reference        string // identificador de la orden/contexto (ej. "ORD-001")
	Reason           string
	Notes            string
	ReservedBy       string // UserID del actor
	ReservedAt       time.Time
	ReleasedAt       *time.Time // nil = activa
	IsReleased       bool       // espejo denormalizado de ReleasedAt != nil
}

// IsActive indica si la reserva sigue reteniendo disponibilidad.
func (r *StockReservation) IsActive() bool {
	return !r.IsReleased
}

// Release marca la reserva como liberada. Idempotente: liberar dos veces no cambia nada.
func (r *StockReservation) Release(now time.Time) {
	if r.IsReleased {
		return
	}
	r.IsReleased = true
	r.ReleasedAt = &now
}
