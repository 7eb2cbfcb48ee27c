package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
// El stock inicial siempre es 0: las existencias entran por movimientos.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	MinimumStock *int64          `json:"minimum_stock,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Sin SKU (inmutable) ni CurrentStock (solo vía movimientos).
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	MinimumStock *int64           `json:"minimum_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	CurrentStock int64           `json:"current_stock"`
	MinimumStock *int64          `json:"minimum_stock,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse proyecta la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		UnitPrice:    p.UnitPrice,
		CostPrice:    p.CostPrice,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
