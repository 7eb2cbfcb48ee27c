package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock-api/internal/application/audit"
	"github.com/jhoicas/erp-stock-api/internal/application/dto"
	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
	"github.com/jhoicas/erp-stock-api/internal/domain/repository"
)

// UseCase maneja el catálogo de productos: CRUD con borrado lógico.
// El stock nunca se toca desde aquí: entra y sale por movimientos.
type UseCase struct {
	repo    repository.ProductRepository
	auditor audit.Notifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository, auditor audit.Notifier) *UseCase {
	return &UseCase{repo: repo, auditor: auditor}
}

// Create crea un producto con stock inicial 0. El SKU debe ser único entre
// productos no eliminados; la carrera contra el índice parcial se mapea a
// ErrDuplicate en el repositorio.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) || in.CostPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock != nil && *in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	// Verificación previa para un error amable; el índice parcial sigue
	// siendo la garantía real bajo concurrencia.
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	p := &entity.Product{
		SKU:          sku,
		Name:         name,
		Description:  in.Description,
		UnitPrice:    in.UnitPrice,
		CostPrice:    in.CostPrice,
		CurrentStock: 0,
		MinimumStock: in.MinimumStock,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	resp := dto.ToProductResponse(p)
	uc.auditor.Notify(audit.Event{
		ActivityType: "product.created",
		EntityType:   "product",
		EntityID:     p.ID,
		Title:        "Producto creado",
		Description:  p.SKU + " " + p.Name,
		NewValues:    resp,
		Severity:     "info",
		Icon:         "add_box",
	})
	return &resp, nil
}

// GetByID devuelve un producto activo; ErrNotFound si no existe o está eliminado.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsDeleted {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// Update actualiza los campos editables. SKU es inmutable y CurrentStock
// solo cambia vía movimientos.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsDeleted {
		return nil, domain.ErrNotFound
	}

	old := dto.ToProductResponse(p)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p.UnitPrice = *in.UnitPrice
	}
	if in.CostPrice != nil {
		if in.CostPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p.CostPrice = *in.CostPrice
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.MinimumStock = in.MinimumStock
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	resp := dto.ToProductResponse(p)
	uc.auditor.Notify(audit.Event{
		ActivityType: "product.updated",
		EntityType:   "product",
		EntityID:     p.ID,
		Title:        "Producto actualizado",
		OldValues:    old,
		NewValues:    resp,
		Severity:     "info",
		Icon:         "edit",
	})
	return &resp, nil
}

// Delete aplica borrado lógico. El historial (movimientos, ajustes, reservas)
// impide el borrado físico por diseño del esquema.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || p.IsDeleted {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	uc.auditor.Notify(audit.Event{
		ActivityType: "product.deleted",
		EntityType:   "product",
		EntityID:     id,
		Title:        "Producto eliminado",
		Description:  p.SKU + " " + p.Name,
		Severity:     "warning",
		Icon:         "delete",
	})
	return nil
}

// List devuelve los productos activos, paginados.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(products, page), nil
}

// ListLowStock devuelve los productos con umbral definido cuyo stock actual
// está en o por debajo de minimum_stock.
func (uc *UseCase) ListLowStock(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.ListLowStock(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(products, page), nil
}

func toListResponse(products []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		resp.Items = append(resp.Items, dto.ToProductResponse(p))
	}
	return resp
}
