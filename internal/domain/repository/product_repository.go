package repository

import (
	"context"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// Los métodos de lectura excluyen productos con borrado lógico salvo que se indique.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar todas las mutaciones de stock del mismo producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija current_stock; solo lo usan el libro de stock dentro
	// de una transacción con la fila bloqueada.
	UpdateStock(ctx context.Context, id string, currentStock int64) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
