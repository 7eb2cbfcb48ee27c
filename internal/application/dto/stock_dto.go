package dto

import (
	"time"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/products/:id/adjust-stock.
type AdjustStockRequest struct {
	AdjustmentQuantity int64  `json:"adjustment_quantity"` // con signo, nunca cero
	Reason             string `json:"reason"`              // obligatorio, máx 255
}

// StockAdjustmentResponse snapshot denormalizado del ajuste (conveniencia de
// lectura, no una segunda fuente de verdad).
type StockAdjustmentResponse struct {
	ID                 string    `json:"id"`
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	SKU                string    `json:"sku"`
	AdjustmentQuantity int64     `json:"adjustment_quantity"`
	Reason             string    `json:"reason"`
	CurrentStock       int64     `json:"current_stock"` // stock resultante tras el ajuste
	AdjustedBy         string    `json:"adjusted_by"`
	AdjustedAt         time.Time `json:"adjusted_at"`
}

// RegisterMovementRequest body para POST /api/inventory/movements.
// Tipos permitidos aquí: PURCHASE, RETURN (entradas) y DAMAGE (salida).
// SALE entra solo por fulfil de reserva y ADJUSTMENT por adjust-stock.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int64  `json:"quantity"` // siempre positivo; el signo lo pone el tipo
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	Reason       string    `json:"reason"`
	Reference    string    `json:"reference,omitempty"`
	MovedBy      string    `json:"moved_by"`
	MovementDate time.Time `json:"movement_date"`
}

// ToStockMovementResponse proyecta la entidad al DTO de salida.
func ToStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type.String(),
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		Reference:    m.Reference,
		MovedBy:      m.MovedBy,
		MovementDate: m.MovementDate,
	}
}

// ProductStockInfoResponse salida de GET /api/products/:id/stock-info.
type ProductStockInfoResponse struct {
	ProductID          string                `json:"product_id"`
	SKU                string                `json:"sku"`
	Name               string                `json:"name"`
	CurrentStock       int64                 `json:"current_stock"`
	ReservedStock      int64                 `json:"reserved_stock"`
	AvailableStock     int64                 `json:"available_stock"`
	ActiveReservations []ReservationResponse `json:"active_reservations"`
}

// ToProductStockInfoResponse proyecta la vista de dominio al DTO de salida.
func ToProductStockInfoResponse(info *entity.ProductStockInfo) ProductStockInfoResponse {
	resp := ProductStockInfoResponse{
		ProductID:          info.ProductID,
		SKU:                info.SKU,
		Name:               info.Name,
		CurrentStock:       info.CurrentStock,
		ReservedStock:      info.ReservedStock,
		AvailableStock:     info.AvailableStock,
		ActiveReservations: make([]ReservationResponse, 0, len(info.ActiveReservations)),
	}
	for _, r := range info.ActiveReservations {
		resp.ActiveReservations = append(resp.ActiveReservations, ToReservationResponse(r))
	}
	return resp
}

// ReconciliationResponse salida de la verificación de conciliación:
// la suma de movimientos debe coincidir con current_stock.
type ReconciliationResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int64  `json:"current_stock"`
	MovementSum  int64  `json:"movement_sum"`
	Consistent   bool   `json:"consistent"`
}
