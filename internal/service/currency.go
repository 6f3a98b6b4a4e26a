package service

import (
	"costsmap/internal/models"

	"github.com/shopspring/decimal"
)

// resolveOperationAmount picks the amount that applies to the card balance:
// the card-currency amount when supplied, the user-currency amount otherwise.
func resolveOperationAmount(userAmount decimal.Decimal, cardAmount *decimal.Decimal) decimal.Decimal {
	if cardAmount != nil {
		return *cardAmount
	}
	return userAmount
}

// validateCurrencyFields enforces the foreign-currency rule: an operation on
// a card whose currency differs from the user's default must carry an explicit
// card-currency amount. Runs before any ledger mutation.
func validateCurrencyFields(card *models.Card, user *models.User, cardAmount *decimal.Decimal) error {
	if card.Currency != user.Currency && cardAmount == nil {
		return ErrMissingCardCurrencyAmount
	}
	return nil
}
