package entity

// ProductStockInfo es una proyección derivada, nunca persistida: se calcula
// en el momento de la consulta dentro de un solo snapshot de lectura para no
// reportar disponibilidad que nunca existió.
type ProductStockInfo struct {
	ProductID          string
	SKU                string
	Name               string
	CurrentStock       int64
	ReservedStock      int64 // suma de reservas activas
	AvailableStock     int64 // CurrentStock - ReservedStock
	ActiveReservations []*StockReservation
}
