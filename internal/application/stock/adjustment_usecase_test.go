package stock

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock-api/internal/application/audit"
	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

func newTestEnv() (*fakeStore, *fakeTxRunner) {
	store := newFakeStore()
	return store, &fakeTxRunner{store: store}
}

func seedProduct(store *fakeStore, sku string, stock int64) *entity.Product {
	p := &entity.Product{
		SKU:          sku,
		Name:         "Producto " + sku,
		UnitPrice:    decimal.NewFromInt(100),
		CostPrice:    decimal.NewFromInt(60),
		CurrentStock: stock,
	}
	store.addProduct(p)
	return p
}

// Escenario de recuento físico: stock 100, el conteo encontró 90.
// El ajuste debe dejar el libro en 90 y escribir fila de ajuste + movimiento.
func TestAdjustStock_Negativo_ActualizaLibroYEscribeFilas(t *testing.T) {
	store, runner := newTestEnv()
	p := seedProduct(store, "WM-001", 100)
	uc := NewAdjustmentUseCase(runner, audit.NopNotifier{}, nil)

	resp, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		ProductID:          p.ID,
		AdjustmentQuantity: -10,
		Reason:             "recuento físico de bodega",
		ActorID:            "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(90), resp.CurrentStock, "el stock resultante debe ser 90")
	assert.Equal(t, int64(-10), resp.AdjustmentQuantity)
	assert.Equal(t, p.SKU, resp.SKU)
	assert.Equal(t, int64(90), store.products[p.ID].CurrentStock)

	require.Len(t, store.adjustments, 1, "debe quedar exactamente una fila de ajuste")
	assert.Equal(t, int64(-10), store.adjustments[0].AdjustmentQuantity)
	assert.Equal(t, "user-1", store.adjustments[0].AdjustedBy)

	require.Len(t, store.movements, 1, "debe quedar exactamente un movimiento")
	assert.Equal(t, entity.MovementAdjustment, store.movements[0].Type)
	assert.Equal(t, int64(-10), store.movements[0].Quantity, "el movimiento lleva la cantidad con signo")
}

func TestAdjustStock_Positivo_SumaAlLibro(t *testing.T) {
	store, runner := newTestEnv()
	p := seedProduct(store, "SKU-A", 40)
	uc := NewAdjustmentUseCase(runner, audit.NopNotifier{}, nil)

	resp, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		ProductID:          p.ID,
		AdjustmentQuantity: 15,
		Reason:             "mercancía encontrada en recepción",
		ActorID:            "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), resp.CurrentStock)
	require.Len(t, store.movements, 1)
	assert.Equal(t, int64(15), store.movements[0].Quantity)
}

// Un ajuste que dejaría el stock negativo debe fallar sin escribir ninguna fila.
func TestAdjustStock_Insuficiente_NoEscribeNada(t *testing.T) {
	store, runner := newTestEnv()
	p := seedProduct(store, "WM-001", 100)
	uc := NewAdjustmentUseCase(runner, audit.NopNotifier{}, nil)

	_, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		ProductID:          p.ID,
		AdjustmentQuantity: -200,
		Reason:             "recuento físico de bodega",
		ActorID:            "user-1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(100), store.products[p.ID].CurrentStock, "el stock no debe cambiar")
	assert.Empty(t, store.adjustments, "no debe quedar fila de ajuste")
	assert.Empty(t, store.movements, "no debe quedar movimiento")
}

func TestAdjustStock_Validaciones(t *testing.T) {
	store, runner := newTestEnv()
	p := seedProduct(store, "SKU-A", 10)
	uc := NewAdjustmentUseCase(runner, audit.NopNotifier{}, nil)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, AdjustStockInput{ProductID: p.ID, AdjustmentQuantity: 0, Reason: "x", ActorID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero no es un ajuste")

	_, err = uc.AdjustStock(ctx, AdjustStockInput{ProductID: p.ID, AdjustmentQuantity: 1, Reason: "   ", ActorID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la razón es obligatoria")

	_, err = uc.AdjustStock(ctx, AdjustStockInput{ProductID: p.ID, AdjustmentQuantity: 1, Reason: strings.Repeat("a", 256), ActorID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "razón de más de 255 caracteres")

	_, err = uc.AdjustStock(ctx, AdjustStockInput{ProductID: "no-existe", AdjustmentQuantity: 1, Reason: "x", ActorID: "u"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, store.movements, "ninguna validación fallida debe escribir filas")
}

func TestAdjustStock_ProductoEliminado_NotFound(t *testing.T) {
	store, runner := newTestEnv()
	p := seedProduct(store, "SKU-DEL", 10)
	store.products[p.ID].IsDeleted = true
	uc := NewAdjustmentUseCase(runner, audit.NopNotifier{}, nil)

	_, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		ProductID:          p.ID,
		AdjustmentQuantity: 5,
		Reason:             "recuento",
		ActorID:            "u",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
