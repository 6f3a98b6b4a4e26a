package service

import (
	"context"
	"time"

	"costsmap/internal/models"
	"costsmap/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// In-memory doubles for the store interfaces. The Querier argument is
// ignored: atomicity is the database's job, these tests exercise the
// orchestration order and the balance arithmetic.

type fakeDB struct {
	commits   int
	rollbacks int
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return &fakeTx{db: d}, nil
}

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

type fakeTx struct {
	db     *fakeDB
	closed bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.db.rollbacks++
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, q repository.Querier, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, q repository.Querier, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) GetByID(ctx context.Context, q repository.Querier, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

type fakeCardStore struct {
	cards map[uuid.UUID]*models.Card
}

func newFakeCardStore(cards ...*models.Card) *fakeCardStore {
	s := &fakeCardStore{cards: make(map[uuid.UUID]*models.Card)}
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	return s
}

func (s *fakeCardStore) balance(id uuid.UUID) decimal.Decimal {
	return s.cards[id].Amount
}

func (s *fakeCardStore) Create(ctx context.Context, q repository.Querier, card *models.Card) error {
	s.cards[card.ID] = card
	return nil
}

func (s *fakeCardStore) GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Card, error) {
	stored, ok := s.cards[id]
	if !ok || stored.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	card := *stored
	return &card, nil
}

func (s *fakeCardStore) GetForUpdate(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Card, error) {
	return s.GetByID(ctx, q, id, userID)
}

func (s *fakeCardStore) ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID) ([]*models.Card, error) {
	var out []*models.Card
	for _, stored := range s.cards {
		if stored.UserID == userID {
			card := *stored
			out = append(out, &card)
		}
	}
	return out, nil
}

func (s *fakeCardStore) Update(ctx context.Context, q repository.Querier, card *models.Card) error {
	stored, ok := s.cards[card.ID]
	if !ok || stored.UserID != card.UserID {
		return pgx.ErrNoRows
	}
	stored.Title = card.Title
	stored.Currency = card.Currency
	stored.Color = card.Color
	return nil
}

func (s *fakeCardStore) ApplyDelta(ctx context.Context, q repository.Querier, id uuid.UUID, delta decimal.Decimal) error {
	stored, ok := s.cards[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Amount = stored.Amount.Add(delta)
	return nil
}

func (s *fakeCardStore) Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error {
	stored, ok := s.cards[id]
	if !ok || stored.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(s.cards, id)
	return nil
}

type fakeCategoryStore struct {
	categories map[uuid.UUID]*models.Category
}

func newFakeCategoryStore(categories ...*models.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{categories: make(map[uuid.UUID]*models.Category)}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

func (s *fakeCategoryStore) Create(ctx context.Context, q repository.Querier, category *models.Category) error {
	s.categories[category.ID] = category
	return nil
}

func (s *fakeCategoryStore) GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (s *fakeCategoryStore) ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCategoryStore) Update(ctx context.Context, q repository.Querier, category *models.Category) error {
	if _, ok := s.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.categories[category.ID] = category
	return nil
}

func (s *fakeCategoryStore) Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error {
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(s.categories, id)
	return nil
}

type fakeCostStore struct {
	costs map[uuid.UUID]*models.Cost
}

func newFakeCostStore() *fakeCostStore {
	return &fakeCostStore{costs: make(map[uuid.UUID]*models.Cost)}
}

func (s *fakeCostStore) Create(ctx context.Context, q repository.Querier, cost *models.Cost) error {
	c := *cost
	s.costs[cost.ID] = &c
	return nil
}

func (s *fakeCostStore) GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Cost, error) {
	stored, ok := s.costs[id]
	if !ok || stored.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	cost := *stored
	return &cost, nil
}

func (s *fakeCostStore) ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) ([]*models.Cost, error) {
	var out []*models.Cost
	for _, c := range s.costs {
		if c.UserID == userID && !c.Date.Before(from) && c.Date.Before(to) {
			cost := *c
			out = append(out, &cost)
		}
	}
	return out, nil
}

func (s *fakeCostStore) Update(ctx context.Context, q repository.Querier, cost *models.Cost) error {
	if _, ok := s.costs[cost.ID]; !ok {
		return pgx.ErrNoRows
	}
	c := *cost
	s.costs[cost.ID] = &c
	return nil
}

func (s *fakeCostStore) Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error {
	stored, ok := s.costs[id]
	if !ok || stored.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(s.costs, id)
	return nil
}

func (s *fakeCostStore) SumByCategory(ctx context.Context, q repository.Querier, categoryID, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range s.costs {
		if c.CategoryID == categoryID && c.UserID == userID && !c.Date.Before(from) && c.Date.Before(to) {
			sum = sum.Add(c.UserCurrencyAmount)
		}
	}
	return sum, nil
}

func (s *fakeCostStore) SumByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range s.costs {
		if c.UserID == userID && !c.Date.Before(from) && c.Date.Before(to) {
			sum = sum.Add(c.UserCurrencyAmount)
		}
	}
	return sum, nil
}

type fakeIncomeStore struct {
	incomes map[uuid.UUID]*models.Income
}

func newFakeIncomeStore() *fakeIncomeStore {
	return &fakeIncomeStore{incomes: make(map[uuid.UUID]*models.Income)}
}

func (s *fakeIncomeStore) Create(ctx context.Context, q repository.Querier, income *models.Income) error {
	i := *income
	s.incomes[income.ID] = &i
	return nil
}

func (s *fakeIncomeStore) GetByID(ctx context.Context, q repository.Querier, id, userID uuid.UUID) (*models.Income, error) {
	stored, ok := s.incomes[id]
	if !ok || stored.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	income := *stored
	return &income, nil
}

func (s *fakeIncomeStore) ListByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) ([]*models.Income, error) {
	var out []*models.Income
	for _, i := range s.incomes {
		if i.UserID == userID && !i.Date.Before(from) && i.Date.Before(to) {
			income := *i
			out = append(out, &income)
		}
	}
	return out, nil
}

func (s *fakeIncomeStore) Update(ctx context.Context, q repository.Querier, income *models.Income) error {
	if _, ok := s.incomes[income.ID]; !ok {
		return pgx.ErrNoRows
	}
	i := *income
	s.incomes[income.ID] = &i
	return nil
}

func (s *fakeIncomeStore) Delete(ctx context.Context, q repository.Querier, id, userID uuid.UUID) error {
	stored, ok := s.incomes[id]
	if !ok || stored.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(s.incomes, id)
	return nil
}

func (s *fakeIncomeStore) SumByUser(ctx context.Context, q repository.Querier, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, i := range s.incomes {
		if i.UserID == userID && !i.Date.Before(from) && i.Date.Before(to) {
			sum = sum.Add(i.UserCurrencyAmount)
		}
	}
	return sum, nil
}
