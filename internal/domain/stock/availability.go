package stock

import "github.com/jhoicas/erp-stock-api/internal/domain/entity"

// Available calcula el stock disponible (servicio de dominio):
// Disponible = StockActual - suma(reservas activas). Puede ser negativo si un
// ajuste bajó el físico por debajo de lo reservado; los llamadores deciden.
func Available(currentStock, reservedStock int64) int64 {
	return currentStock - reservedStock
}

// SumReserved suma las cantidades de las reservas activas de la lista.
func SumReserved(reservations []*entity.StockReservation) int64 {
	var total int64
	for _, r := range reservations {
		if r.IsActive() {
			total += r.ReservedQuantity
		}
	}
	return total
}

// BuildStockInfo arma la proyección de disponibilidad de un producto a partir
// de sus reservas activas. Los datos deben venir del mismo snapshot de lectura.
func BuildStockInfo(p *entity.Product, active []*entity.StockReservation) *entity.ProductStockInfo {
	reserved := SumReserved(active)
	return &entity.ProductStockInfo{
		ProductID:          p.ID,
		SKU:                p.SKU,
		Name:               p.Name,
		CurrentStock:       p.CurrentStock,
		ReservedStock:      reserved,
		AvailableStock:     Available(p.CurrentStock, reserved),
		ActiveReservations: active,
	}
}

// SumMovements suma las cantidades con signo de los movimientos.
// Invariante de conciliación: para cada producto la suma de sus movimientos
// debe ser igual a CurrentStock en todo momento.
func SumMovements(movements []*entity.StockMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.Quantity
	}
	return total
}
