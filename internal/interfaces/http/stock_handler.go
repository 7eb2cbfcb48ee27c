package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-stock-api/internal/application/dto"
	"github.com/jhoicas/erp-stock-api/internal/application/stock"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// StockHandler maneja ajustes, movimientos y consultas de stock (protegido).
type StockHandler struct {
	adjustments *stock.AdjustmentUseCase
	movements   *stock.MovementUseCase
	queries     *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(adjustments *stock.AdjustmentUseCase, movements *stock.MovementUseCase, queries *stock.QueryUseCase) *StockHandler {
	return &StockHandler{adjustments: adjustments, movements: movements, queries: queries}
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  Corrección manual (recuento, merma). Atómico: fila de ajuste +
// @Description  movimiento ADJUSTMENT + actualización del stock físico.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "adjustment_quantity (con signo, != 0), reason (máx 255)"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/products/{id}/adjust-stock [post]
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "token inválido"))
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	resp, err := h.adjustments.AdjustStock(c.Context(), stock.AdjustStockInput{
		ProductID:          c.Params("id"),
		AdjustmentQuantity: in.AdjustmentQuantity,
		Reason:             in.Reason,
		ActorID:            actorID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, resp)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  PURCHASE y RETURN entran, DAMAGE sale. SALE solo vía fulfil de
// @Description  reserva y ADJUSTMENT solo vía adjust-stock.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity (> 0), reason, reference (opcional)"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/inventory/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "token inválido"))
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	typ, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "tipo de movimiento desconocido"))
	}
	resp, err := h.movements.RegisterMovement(c.Context(), stock.RegisterMovementInput{
		ProductID: in.ProductID,
		Type:      typ,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		ActorID:   actorID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, resp)
}

// GetStockInfo godoc
// @Summary      Stock físico, reservado y disponible de un producto
// @Description  Leído en un único snapshot (tx solo lectura REPEATABLE READ).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/products/{id}/stock-info [get]
func (h *StockHandler) GetStockInfo(c *fiber.Ctx) error {
	resp, err := h.queries.GetStockInfo(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, resp)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "máx 100, default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.Response
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_QUERY", "query inválido"))
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "from inválido (RFC3339)"))
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "to inválido (RFC3339)"))
	}
	resp, err := h.queries.ListMovements(c.Context(), c.Params("id"), from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, resp)
}

// ListAdjustments godoc
// @Summary      Historial de ajustes manuales de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/products/{id}/adjustments [get]
func (h *StockHandler) ListAdjustments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_QUERY", "query inválido"))
	}
	resp, err := h.queries.ListAdjustments(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, resp)
}

// Reconcile godoc
// @Summary      Conciliación stock vs bitácora de movimientos
// @Description  Reconstruye el stock sumando los movimientos y lo compara con
// @Description  current_stock. Una discrepancia se reporta, no se corrige.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/inventory/reconcile/{productId} [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	resp, err := h.queries.Reconcile(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, resp)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
