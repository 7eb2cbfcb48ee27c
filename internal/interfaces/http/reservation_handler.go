package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-stock-api/internal/application/dto"
	"github.com/jhoicas/erp-stock-api/internal/application/stock"
)

// ReservationHandler maneja reservas de stock (protegido).
type ReservationHandler struct {
	uc      *stock.ReservationUseCase
	queries *stock.QueryUseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *stock.ReservationUseCase, queries *stock.QueryUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc, queries: queries}
}

// Create godoc
// @Summary      Crear reserva contra stock disponible
// @Description  No modifica el stock físico; solo restringe disponibilidad.
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReservationRequest  true  "product_id, quantity (> 0), reference"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "token inválido"))
	}
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	resp, err := h.uc.Reserve(c.Context(), stock.ReserveInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Reason:    in.Reason,
		Notes:     in.Notes,
		ActorID:   actorID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, resp)
}

// Release godoc
// @Summary      Liberar una reserva
// @Description  Idempotente: liberar una reserva ya liberada es un no-op exitoso.
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/reservations/{id}/release [post]
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	resp, err := h.uc.Release(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, resp)
}

// Fulfil godoc
// @Summary      Cumplir (despachar) una reserva
// @Description  Libera la reserva, descuenta el stock físico y registra un
// @Description  movimiento SALE en una sola transacción.
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/reservations/{id}/fulfil [post]
func (h *ReservationHandler) Fulfil(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "token inválido"))
	}
	resp, err := h.uc.Fulfil(c.Context(), c.Params("id"), actorID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, resp)
}

// ListByProduct godoc
// @Summary      Reservas activas de un producto
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/products/{id}/reservations [get]
func (h *ReservationHandler) ListByProduct(c *fiber.Ctx) error {
	resp, err := h.queries.ListActiveReservations(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, resp)
}
