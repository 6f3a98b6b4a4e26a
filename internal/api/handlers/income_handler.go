package handlers

import (
	"costsmap/internal/dto"
	"costsmap/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type IncomeHandler struct {
	incomeService *service.IncomeService
	logger        *zap.Logger
}

func NewIncomeHandler(incomeService *service.IncomeService, logger *zap.Logger) *IncomeHandler {
	return &IncomeHandler{
		incomeService: incomeService,
		logger:        logger,
	}
}

// Create godoc
// @Summary Record a deposit
// @Description Creates an income and credits its card atomically
// @Tags incomes
// @Accept json
// @Produce json
// @Param request body dto.CreateIncomeRequest true "Income"
// @Security Bearer
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /incomes [post]
func (h *IncomeHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validateAmounts(req.Amount, req.CardCurrencyAmount); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.incomeService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List the user's incomes for a month
// @Tags incomes
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {array} dto.IncomeResponse
// @Router /incomes [get]
func (h *IncomeHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.incomeService.List(c.Context(), userID, c.Query("month"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get an income
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Security Bearer
// @Success 200 {object} dto.IncomeResponse
// @Failure 404 {object} map[string]string
// @Router /incomes/{id} [get]
func (h *IncomeHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid income id")
	}

	resp, err := h.incomeService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update an income and rebalance its card(s)
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param request body dto.UpdateIncomeRequest true "Income"
// @Security Bearer
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /incomes/{id} [put]
func (h *IncomeHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid income id")
	}

	var req dto.UpdateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validateAmounts(req.Amount, req.CardCurrencyAmount); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.incomeService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete an income and debit the amount back from its card
// @Tags incomes
// @Param id path string true "Income ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid income id")
	}

	if err := h.incomeService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MonthTotal godoc
// @Summary Total received in a month, in the user's currency
// @Tags incomes
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Security Bearer
// @Success 200 {object} dto.TotalResponse
// @Router /incomes/total [get]
func (h *IncomeHandler) MonthTotal(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.incomeService.MonthTotal(c.Context(), userID, c.Query("month"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}
