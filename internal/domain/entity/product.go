package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// CurrentStock es la cantidad física autoritativa y solo se muta a través de
// un movimiento registrado en stock_movements; nunca baja de cero.
// La unicidad del SKU aplica solo entre productos no eliminados (índice parcial).
type Product struct {
	ID           string
	SKU          string // código único entre productos activos, inmutable
	Name         string
	Description  string
	UnitPrice    decimal.Decimal // precio de venta
	CostPrice    decimal.Decimal // costo de compra
	CurrentStock int64           // existencia física (>= 0)
	MinimumStock *int64          // umbral de reorden; nil = sin umbral
	IsDeleted    bool            // borrado lógico; el historial impide borrado físico
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
