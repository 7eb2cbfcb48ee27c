package entity

import "time"

// StockAdjustment registra una corrección manual de stock (recuento, merma,
// daño). Inmutable una vez creado: es un registro de auditoría, distinto de
// los movimientos originados por órdenes.
type StockAdjustment struct {
	ID                 string
	ProductID          string
	AdjustmentQuantity int64  // con signo: positivo aumenta, negativo disminuye; nunca cero
	Reason             string // obligatorio, máx 255 caracteres
	AdjustedBy         string // UserID del actor
	AdjustedAt         time.Time
}
