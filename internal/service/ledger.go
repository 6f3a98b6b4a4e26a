package service

import (
	"context"

	"costsmap/internal/models"
	"costsmap/internal/repository"

	"github.com/shopspring/decimal"
)

// direction tells whether a transaction debits (cost) or credits (income)
// its card.
type direction int

const (
	debit direction = iota
	credit
)

// cardLedger is the balance-mutation primitive for cards. All methods expect
// the card row to be locked by the enclosing transaction (GetForUpdate) and
// mirror the change on the in-memory struct so later steps in the same
// transaction see the updated balance.
type cardLedger struct {
	cards cardStore
}

// debit subtracts amount from the card, rejecting operations that would take
// the balance negative.
func (l cardLedger) debit(ctx context.Context, q repository.Querier, card *models.Card, amount decimal.Decimal) error {
	if card.Amount.LessThan(amount) {
		return ErrInsufficientFunds
	}
	if err := l.cards.ApplyDelta(ctx, q, card.ID, amount.Neg()); err != nil {
		return err
	}
	card.Amount = card.Amount.Sub(amount)
	return nil
}

// credit adds amount to the card. No upper bound.
func (l cardLedger) credit(ctx context.Context, q repository.Querier, card *models.Card, amount decimal.Decimal) error {
	if err := l.cards.ApplyDelta(ctx, q, card.ID, amount); err != nil {
		return err
	}
	card.Amount = card.Amount.Add(amount)
	return nil
}

// apply performs the operation for dir: debit for costs, credit for incomes.
func (l cardLedger) apply(ctx context.Context, q repository.Querier, card *models.Card, amount decimal.Decimal, dir direction) error {
	if dir == debit {
		return l.debit(ctx, q, card, amount)
	}
	return l.credit(ctx, q, card, amount)
}

// reverse undoes a previously applied operation. Reversal is always valid:
// crediting a debit back has no bound, and taking back a credit may drive the
// balance negative without a funds check.
func (l cardLedger) reverse(ctx context.Context, q repository.Querier, card *models.Card, amount decimal.Decimal, dir direction) error {
	delta := amount
	if dir == credit {
		delta = amount.Neg()
	}
	if err := l.cards.ApplyDelta(ctx, q, card.ID, delta); err != nil {
		return err
	}
	card.Amount = card.Amount.Add(delta)
	return nil
}
