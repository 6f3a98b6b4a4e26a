package service

import (
	"bytes"
	"context"
	"time"

	"costsmap/internal/dto"
	"costsmap/internal/models"
	"costsmap/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CardService struct {
	db     DB
	cards  cardStore
	ledger cardLedger
	logger *zap.Logger
}

func NewCardService(db DB, cards cardStore, logger *zap.Logger) *CardService {
	return &CardService{
		db:     db,
		cards:  cards,
		ledger: cardLedger{cards: cards},
		logger: logger,
	}
}

func (s *CardService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	now := time.Now()
	card := &models.Card{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     req.Title,
		Currency:  req.Currency,
		Color:     req.Color,
		Amount:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.cards.Create(ctx, s.db, card); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	resp := cardResponse(card)
	return &resp, nil
}

func (s *CardService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.CardResponse, error) {
	card, err := s.cards.GetByID(ctx, s.db, id, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCardNotFound)
	}
	resp := cardResponse(card)
	return &resp, nil
}

func (s *CardService) List(ctx context.Context, userID uuid.UUID) ([]dto.CardResponse, error) {
	cards, err := s.cards.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CardResponse, 0, len(cards))
	for _, card := range cards {
		resp = append(resp, cardResponse(card))
	}
	return resp, nil
}

func (s *CardService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	card, err := s.cards.GetByID(ctx, s.db, id, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCardNotFound)
	}

	card.Title = req.Title
	card.Currency = req.Currency
	card.Color = req.Color
	card.UpdatedAt = time.Now()

	if err := s.cards.Update(ctx, s.db, card); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, translateNotFound(err, ErrCardNotFound)
	}

	resp := cardResponse(card)
	return &resp, nil
}

// Delete removes the card; its costs and incomes go with it via the schema's
// ON DELETE CASCADE.
func (s *CardService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.cards.Delete(ctx, s.db, id, userID); err != nil {
		return translateNotFound(err, ErrCardNotFound)
	}
	return nil
}

// Transfer moves money between two of the user's cards. Both legs run inside
// one transaction with both card rows locked; nothing is persisted beyond the
// two balance changes.
func (s *CardService) Transfer(ctx context.Context, userID uuid.UUID, req *dto.TransferRequest) (*dto.TransferResponse, error) {
	if req.FromID == req.ToID {
		return nil, ErrSameCardTransfer
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// lock in ascending ID order to avoid deadlocks with concurrent transfers
	firstID, secondID := req.FromID, req.ToID
	if bytes.Compare(secondID[:], firstID[:]) < 0 {
		firstID, secondID = secondID, firstID
	}

	first, err := s.cards.GetForUpdate(ctx, tx, firstID, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCardNotFound)
	}
	second, err := s.cards.GetForUpdate(ctx, tx, secondID, userID)
	if err != nil {
		return nil, translateNotFound(err, ErrCardNotFound)
	}

	from, to := first, second
	if from.ID != req.FromID {
		from, to = second, first
	}

	toAmount := req.FromAmount
	if from.Currency != to.Currency {
		if req.ToAmount == nil {
			return nil, ErrMissingToAmount
		}
		toAmount = *req.ToAmount
	} else if req.ToAmount != nil {
		toAmount = *req.ToAmount
	}

	if err := s.ledger.debit(ctx, tx, from, req.FromAmount); err != nil {
		return nil, err
	}
	if err := s.ledger.credit(ctx, tx, to, toAmount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &dto.TransferResponse{
		From: cardResponse(from),
		To:   cardResponse(to),
	}, nil
}

func cardResponse(card *models.Card) dto.CardResponse {
	return dto.CardResponse{
		ID:        card.ID.String(),
		Title:     card.Title,
		Currency:  card.Currency,
		Color:     card.Color,
		Amount:    card.Amount,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
	}
}
