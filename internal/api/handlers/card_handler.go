package handlers

import (
	"costsmap/internal/dto"
	"costsmap/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CardHandler struct {
	cardService *service.CardService
	logger      *zap.Logger
}

func NewCardHandler(cardService *service.CardService, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create a card
// @Tags cards
// @Accept json
// @Produce json
// @Param request body dto.CreateCardRequest true "Card"
// @Security Bearer
// @Success 201 {object} dto.CardResponse
// @Failure 409 {object} map[string]string
// @Router /cards [post]
func (h *CardHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.Currency == "" {
		return badRequest(c, "Title and currency are required")
	}

	resp, err := h.cardService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List the user's cards
// @Tags cards
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CardResponse
// @Router /cards [get]
func (h *CardHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.cardService.List(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get a card
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Security Bearer
// @Success 200 {object} dto.CardResponse
// @Failure 404 {object} map[string]string
// @Router /cards/{id} [get]
func (h *CardHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	resp, err := h.cardService.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update a card's title, currency or color
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body dto.UpdateCardRequest true "Card"
// @Security Bearer
// @Success 200 {object} dto.CardResponse
// @Failure 404 {object} map[string]string
// @Router /cards/{id} [put]
func (h *CardHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	var req dto.UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.Currency == "" {
		return badRequest(c, "Title and currency are required")
	}

	resp, err := h.cardService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a card and its transactions
// @Tags cards
// @Param id path string true "Card ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /cards/{id} [delete]
func (h *CardHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid card id")
	}

	if err := h.cardService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Transfer godoc
// @Summary Transfer money between two cards
// @Tags cards
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer"
// @Security Bearer
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cards/transfer [post]
func (h *CardHandler) Transfer(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !req.FromAmount.IsPositive() {
		return badRequest(c, "from_amount must be positive")
	}
	if req.ToAmount != nil && !req.ToAmount.IsPositive() {
		return badRequest(c, "to_amount must be positive")
	}

	resp, err := h.cardService.Transfer(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(resp)
}
