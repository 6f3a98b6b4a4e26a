package handlers

import (
	"costsmap/internal/dto"
	"costsmap/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CostHandler struct {
	costService *service.CostService
	logger      *zap.Logger
}

func NewCostHandler(costService *service.CostService, logger *zap.Logger) *CostHandler {
	return &CostHandler{
		costService: costService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Record an expense
// @Description Creates a cost and debits its card atomically
// @Tags costs
// @Accept json
// @Produce json
// @Param request body dto.CreateCostRequest true "Cost"
// @Security Bearer
// @Success 201 {object} dto.CostResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /costs [post]
func (h *CostHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validateAmounts(req.Amount, req.CardCurrencyAmount); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.costService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List the user's costs for a month
// @Tags costs
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {array} dto.CostResponse
// @Router /costs [get]
func (h *CostHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.costService.List(c.Context(), userID, c.Query("month"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get a cost
// @Tags costs
// @Produce json
// @Param id path string true "Cost ID"
// @Security Bearer
// @Success 200 {object} dto.CostResponse
// @Failure 404 {object} map[string]string
// @Router /costs/{id} [get]
func (h *CostHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid cost id")
	}

	resp, err := h.costService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update a cost and rebalance its card(s)
// @Tags costs
// @Accept json
// @Produce json
// @Param id path string true "Cost ID"
// @Param request body dto.UpdateCostRequest true "Cost"
// @Security Bearer
// @Success 200 {object} dto.CostResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /costs/{id} [put]
func (h *CostHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid cost id")
	}

	var req dto.UpdateCostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validateAmounts(req.Amount, req.CardCurrencyAmount); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.costService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a cost and credit the amount back to its card
// @Tags costs
// @Param id path string true "Cost ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /costs/{id} [delete]
func (h *CostHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid cost id")
	}

	if err := h.costService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MonthTotal godoc
// @Summary Total spent in a month, in the user's currency
// @Tags costs
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {object} dto.TotalResponse
// @Router /costs/total [get]
func (h *CostHandler) MonthTotal(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.costService.MonthTotal(c.Context(), userID, c.Query("month"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}
