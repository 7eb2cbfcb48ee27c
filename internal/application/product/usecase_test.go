package product

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock-api/internal/application/audit"
	"github.com/jhoicas/erp-stock-api/internal/application/dto"
	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// fakeRepo implementación en memoria de repository.ProductRepository.
type fakeRepo struct {
	products map[string]*entity.Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU && !existing.IsDeleted {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku && !p.IsDeleted {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) Update(_ context.Context, p *entity.Product) error {
	existing, ok := r.products[p.ID]
	if !ok || existing.IsDeleted {
		return domain.ErrNotFound
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateStock(_ context.Context, id string, currentStock int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = currentStock
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.products[id]
	if !ok || p.IsDeleted {
		return domain.ErrNotFound
	}
	p.IsDeleted = true
	return nil
}

func (r *fakeRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if !p.IsDeleted {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeRepo) ListLowStock(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if !p.IsDeleted && p.MinimumStock != nil && p.CurrentStock <= *p.MinimumStock {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func newUC() (*fakeRepo, *UseCase) {
	repo := newFakeRepo()
	return repo, NewUseCase(repo, audit.NopNotifier{})
}

func createReq(sku, name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:       sku,
		Name:      name,
		UnitPrice: decimal.NewFromInt(100),
		CostPrice: decimal.NewFromInt(60),
	}
}

func TestCreate_StockInicialCero(t *testing.T) {
	_, uc := newUC()

	resp, err := uc.Create(context.Background(), createReq("SKU-A", "Tornillo"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, int64(0), resp.CurrentStock, "las existencias entran solo por movimientos")
	assert.Equal(t, "SKU-A", resp.SKU)
}

func TestCreate_SKUDuplicado(t *testing.T) {
	_, uc := newUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, createReq("SKU-A", "Tornillo"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, createReq("SKU-A", "Otro"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El SKU de un producto eliminado puede reutilizarse (índice parcial).
func TestCreate_SKUDeEliminado_Reutilizable(t *testing.T) {
	_, uc := newUC()
	ctx := context.Background()

	first, err := uc.Create(ctx, createReq("SKU-A", "Tornillo"))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, first.ID))

	_, err = uc.Create(ctx, createReq("SKU-A", "Tornillo v2"))
	assert.NoError(t, err)
}

func TestCreate_Validaciones(t *testing.T) {
	_, uc := newUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, createReq("", "Sin SKU"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, createReq("SKU-B", "  "))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := createReq("SKU-C", "Precio negativo")
	bad.UnitPrice = decimal.NewFromInt(-1)
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := int64(-5)
	bad = createReq("SKU-D", "Umbral negativo")
	bad.MinimumStock = &neg
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_CamposParciales(t *testing.T) {
	repo, uc := newUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, createReq("SKU-A", "Tornillo"))
	require.NoError(t, err)

	name := "Tornillo M8"
	price := decimal.NewFromInt(120)
	resp, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)

	assert.Equal(t, "Tornillo M8", resp.Name)
	assert.True(t, resp.UnitPrice.Equal(price))
	assert.True(t, resp.CostPrice.Equal(created.CostPrice), "los campos no enviados no cambian")
	assert.Equal(t, "SKU-A", repo.products[created.ID].SKU, "el SKU es inmutable")
}

func TestDelete_BorradoLogico(t *testing.T) {
	repo, uc := newUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, createReq("SKU-A", "Tornillo"))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, created.ID))

	assert.True(t, repo.products[created.ID].IsDeleted, "la fila se conserva marcada")

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar dos veces es not found")
}

func TestListLowStock_SoloBajoUmbral(t *testing.T) {
	repo, uc := newUC()
	ctx := context.Background()

	min := int64(10)
	low := createReq("SKU-LOW", "Crítico")
	low.MinimumStock = &min
	created, err := uc.Create(ctx, low)
	require.NoError(t, err)
	repo.products[created.ID].CurrentStock = 5

	okMin := int64(3)
	fine := createReq("SKU-OK", "Sano")
	fine.MinimumStock = &okMin
	createdOK, err := uc.Create(ctx, fine)
	require.NoError(t, err)
	repo.products[createdOK.ID].CurrentStock = 50

	// Sin umbral definido nunca aparece en el reporte.
	_, err = uc.Create(ctx, createReq("SKU-NONE", "Sin umbral"))
	require.NoError(t, err)

	resp, err := uc.ListLowStock(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SKU-LOW", resp.Items[0].SKU)
}
