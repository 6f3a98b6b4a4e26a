package service

import (
	"bytes"
	"context"

	"costsmap/internal/models"
	"costsmap/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// cardOperation is the card-affecting slice of a cost or income: which card
// it touches and the dual-currency amount pair.
type cardOperation struct {
	CardID             uuid.UUID
	UserCurrencyAmount decimal.Decimal
	CardCurrencyAmount *decimal.Decimal
}

func (op cardOperation) resolved() decimal.Decimal {
	return resolveOperationAmount(op.UserCurrencyAmount, op.CardCurrencyAmount)
}

// mutationHooks supply the pieces that differ between costs and incomes.
type mutationHooks struct {
	// loadRelated validates ownership of entities beyond the card (the
	// category, for costs). Runs before any balance change. Optional.
	loadRelated func(ctx context.Context, q repository.Querier) error
	// persist writes the transaction row after the balance has moved. It
	// receives the locked target card so responses can embed its state.
	persist func(ctx context.Context, q repository.Querier, card *models.Card) error
}

// transactionMutator factors the create/delete/update-with-balance-adjustment
// algorithm shared by costs and incomes. Each step set runs inside one pgx
// transaction with the touched card rows locked, so a failure at any point
// leaves no partial state behind.
type transactionMutator struct {
	db     DB
	users  userStore
	cards  cardStore
	ledger cardLedger
	dir    direction
	logger *zap.Logger
}

func newTransactionMutator(db DB, users userStore, cards cardStore, dir direction, logger *zap.Logger) *transactionMutator {
	return &transactionMutator{
		db:     db,
		users:  users,
		cards:  cards,
		ledger: cardLedger{cards: cards},
		dir:    dir,
		logger: logger,
	}
}

func (m *transactionMutator) create(ctx context.Context, userID uuid.UUID, op cardOperation, hooks mutationHooks) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if hooks.loadRelated != nil {
		if err := hooks.loadRelated(ctx, tx); err != nil {
			return err
		}
	}

	card, err := m.cards.GetForUpdate(ctx, tx, op.CardID, userID)
	if err != nil {
		return translateNotFound(err, ErrCardNotFound)
	}

	user, err := m.users.GetByID(ctx, tx, userID)
	if err != nil {
		return translateNotFound(err, ErrUserNotFound)
	}

	if err := validateCurrencyFields(card, user, op.CardCurrencyAmount); err != nil {
		return err
	}

	if err := m.ledger.apply(ctx, tx, card, op.resolved(), m.dir); err != nil {
		return err
	}

	if err := hooks.persist(ctx, tx, card); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// remove reverses the balance effect of an existing transaction and deletes
// its row. fetch loads the row scoped to userID (its error is surfaced as-is,
// already translated by the caller); deleteRow removes it.
func (m *transactionMutator) remove(
	ctx context.Context,
	userID uuid.UUID,
	fetch func(ctx context.Context, q repository.Querier) (cardOperation, error),
	deleteRow func(ctx context.Context, q repository.Querier) error,
) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	op, err := fetch(ctx, tx)
	if err != nil {
		return err
	}

	card, err := m.cards.GetForUpdate(ctx, tx, op.CardID, userID)
	if err != nil {
		return translateNotFound(err, ErrCardNotFound)
	}

	if err := m.ledger.reverse(ctx, tx, card, op.resolved(), m.dir); err != nil {
		return err
	}

	if err := deleteRow(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// update rebalances an existing transaction to newOp: the old amount is
// reversed on the old card before the new amount is applied to the (possibly
// different) new card. When card and amount are both unchanged the ledger
// calls are skipped and only the row fields are rewritten.
func (m *transactionMutator) update(
	ctx context.Context,
	userID uuid.UUID,
	newOp cardOperation,
	fetch func(ctx context.Context, q repository.Querier) (cardOperation, error),
	hooks mutationHooks,
) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	oldOp, err := fetch(ctx, tx)
	if err != nil {
		return err
	}

	if hooks.loadRelated != nil {
		if err := hooks.loadRelated(ctx, tx); err != nil {
			return err
		}
	}

	user, err := m.users.GetByID(ctx, tx, userID)
	if err != nil {
		return translateNotFound(err, ErrUserNotFound)
	}

	var target *models.Card
	if oldOp.CardID == newOp.CardID {
		card, err := m.cards.GetForUpdate(ctx, tx, oldOp.CardID, userID)
		if err != nil {
			return translateNotFound(err, ErrCardNotFound)
		}
		target = card

		if err := validateCurrencyFields(card, user, newOp.CardCurrencyAmount); err != nil {
			return err
		}

		oldDelta, newDelta := oldOp.resolved(), newOp.resolved()
		if !oldDelta.Equal(newDelta) {
			if err := m.ledger.reverse(ctx, tx, card, oldDelta, m.dir); err != nil {
				return err
			}
			if err := m.ledger.apply(ctx, tx, card, newDelta, m.dir); err != nil {
				return err
			}
		}
	} else {
		oldCard, newCard, err := m.lockPair(ctx, tx, userID, oldOp.CardID, newOp.CardID)
		if err != nil {
			return err
		}
		target = newCard

		if err := validateCurrencyFields(newCard, user, newOp.CardCurrencyAmount); err != nil {
			return err
		}

		if err := m.ledger.reverse(ctx, tx, oldCard, oldOp.resolved(), m.dir); err != nil {
			return err
		}
		if err := m.ledger.apply(ctx, tx, newCard, newOp.resolved(), m.dir); err != nil {
			return err
		}
	}

	if err := hooks.persist(ctx, tx, target); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// lockPair locks two distinct cards in ascending ID order so concurrent
// mutators touching the same pair cannot deadlock.
func (m *transactionMutator) lockPair(ctx context.Context, q repository.Querier, userID, aID, bID uuid.UUID) (a, b *models.Card, err error) {
	first, second := aID, bID
	if bytes.Compare(bID[:], aID[:]) < 0 {
		first, second = bID, aID
	}

	firstCard, err := m.cards.GetForUpdate(ctx, q, first, userID)
	if err != nil {
		return nil, nil, translateNotFound(err, ErrCardNotFound)
	}
	secondCard, err := m.cards.GetForUpdate(ctx, q, second, userID)
	if err != nil {
		return nil, nil, translateNotFound(err, ErrCardNotFound)
	}

	if firstCard.ID == aID {
		return firstCard, secondCard, nil
	}
	return secondCard, firstCard, nil
}

// translateNotFound maps a missing-row error onto the domain error kind; any
// other storage failure propagates untouched.
func translateNotFound(err, kind error) error {
	if repository.IsNotFound(err) {
		return kind
	}
	return err
}
