package dto

import (
	"time"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// CreateReservationRequest body para POST /api/reservations.
type CreateReservationRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // > 0
	Reference string `json:"reference"`
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ReservationResponse salida de una reserva.
type ReservationResponse struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"product_id"`
	ReservedQuantity int64      `json:"reserved_quantity"`
	Reference        string     `json:"reference"`
	Reason           string     `json:"reason,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	ReservedBy       string     `json:"reserved_by"`
	ReservedAt       time.Time  `json:"reserved_at"`
	ReleasedAt       *time.Time `json:"released_at,omitempty"`
	IsReleased       bool       `json:"is_released"`
}

// ToReservationResponse proyecta la entidad al DTO de salida.
func ToReservationResponse(r *entity.StockReservation) ReservationResponse {
	return ReservationResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		ReservedQuantity: r.ReservedQuantity,
		Reference:        r.Reference,
		Reason:           r.Reason,
		Notes:            r.Notes,
		ReservedBy:       r.ReservedBy,
		ReservedAt:       r.ReservedAt,
		ReleasedAt:       r.ReleasedAt,
		IsReleased:       r.IsReleased,
	}
}
