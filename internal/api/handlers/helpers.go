package handlers

import (
	"errors"

	"costsmap/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errMissingUserID = errors.New("user id missing from request context")

// getUserID extracts the authenticated user set by the auth middleware.
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("userID").(string)
	if !ok || raw == "" {
		return uuid.Nil, errMissingUserID
	}
	return uuid.Parse(raw)
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// statusFor maps the service error taxonomy onto HTTP statuses. Unknown
// errors mean a genuine server failure.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrCostNotFound),
		errors.Is(err, service.ErrIncomeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrMissingCardCurrencyAmount),
		errors.Is(err, service.ErrMissingToAmount),
		errors.Is(err, service.ErrSameCardTransfer),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidMonth):
		return fiber.StatusBadRequest, true
	case errors.Is(err, service.ErrDuplicateTitle),
		errors.Is(err, service.ErrUserExists):
		return fiber.StatusConflict, true
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, true
	}
	return fiber.StatusInternalServerError, false
}

// respondError translates a service error into the client-facing response,
// logging only unexpected failures.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status, expected := statusFor(err)
	if !expected {
		logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// validateAmounts checks the dual-currency amount pair of cost/income
// payloads.
func validateAmounts(amount decimal.Decimal, cardAmount *decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if cardAmount != nil && !cardAmount.IsPositive() {
		return errors.New("card_currency_amount must be positive")
	}
	return nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
