package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/repository"
)

type fakeFetcher struct {
	data    []byte
	err     error
	calls   int
	lastURL string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls++
	f.lastURL = url
	return f.data, f.err
}

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeExtractor struct {
	raw *models.RawExtraction
	err error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (*models.RawExtraction, error) {
	return f.raw, f.err
}

type fakeTranscriptionRepo struct {
	saved []*models.Transcription
	err   error
}

func (f *fakeTranscriptionRepo) Save(_ context.Context, tr *models.Transcription) (*models.Transcription, error) {
	if f.err != nil {
		return nil, f.err
	}
	tr.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, tr)
	return tr, nil
}

func (f *fakeTranscriptionRepo) FindByID(context.Context, int64) (*models.Transcription, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeTranscriptionRepo) ListByUser(context.Context, int64, int) ([]*models.Transcription, error) {
	return f.saved, nil
}

type fakeExtractionLogRepo struct {
	saves int
	err   error
}

func (f *fakeExtractionLogRepo) Save(context.Context, int64, string, *models.RawExtraction, float64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saves++
	return int64(f.saves), nil
}

type fakeTransactionRepo struct {
	saved      []*models.Transaction
	batchErr   error
	totals     map[models.TransactionType]decimal.Decimal
	byCategory map[string]decimal.Decimal
	count      int
}

func (f *fakeTransactionRepo) Save(_ context.Context, tx *models.Transaction) (*models.Transaction, error) {
	tx.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, tx)
	return tx, nil
}

func (f *fakeTransactionRepo) SaveBatch(_ context.Context, txs []*models.Transaction) ([]int64, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	var ids []int64
	for _, tx := range txs {
		tx.ID = int64(len(f.saved) + 1)
		f.saved = append(f.saved, tx)
		ids = append(ids, tx.ID)
	}
	return ids, nil
}

func (f *fakeTransactionRepo) FindByID(context.Context, int64, int64) (*models.Transaction, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeTransactionRepo) ListByUser(context.Context, int64, repository.TransactionFilter) ([]*models.Transaction, error) {
	return f.saved, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, tx *models.Transaction) (*models.Transaction, error) {
	return tx, nil
}

func (f *fakeTransactionRepo) Delete(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (f *fakeTransactionRepo) TotalByType(_ context.Context, _ int64, txType models.TransactionType, _, _ *time.Time) (decimal.Decimal, error) {
	if total, ok := f.totals[txType]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

func (f *fakeTransactionRepo) SumExpensesByCategory(context.Context, int64, *time.Time, *time.Time) (map[string]decimal.Decimal, error) {
	return f.byCategory, nil
}

func (f *fakeTransactionRepo) CountInRange(context.Context, int64, time.Time, time.Time) (int, error) {
	return f.count, nil
}

type fakeAccountRepo struct {
	existing       map[string]*models.Account
	saved          []*models.Account
	balanceUpdates map[int64]decimal.Decimal
	activeCount    int
	totalBalance   decimal.Decimal
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		existing:       make(map[string]*models.Account),
		balanceUpdates: make(map[int64]decimal.Decimal),
	}
}

func (f *fakeAccountRepo) Save(_ context.Context, acc *models.Account) (*models.Account, error) {
	acc.ID = int64(len(f.saved) + 100)
	f.saved = append(f.saved, acc)
	f.existing[acc.Name] = acc
	return acc, nil
}

func (f *fakeAccountRepo) FindByID(context.Context, int64, int64) (*models.Account, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) FindByUserAndName(_ context.Context, _ int64, name string) (*models.Account, error) {
	if acc, ok := f.existing[name]; ok {
		return acc, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) ListByUser(context.Context, int64, bool, int) ([]*models.Account, error) {
	return f.saved, nil
}

func (f *fakeAccountRepo) Update(_ context.Context, acc *models.Account) (*models.Account, error) {
	return acc, nil
}

func (f *fakeAccountRepo) UpdateBalance(_ context.Context, id, _ int64, balance decimal.Decimal) error {
	f.balanceUpdates[id] = balance
	return nil
}

func (f *fakeAccountRepo) Delete(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (f *fakeAccountRepo) CountActive(context.Context, int64) (int, error) {
	return f.activeCount, nil
}

func (f *fakeAccountRepo) TotalBalance(context.Context, int64, bool) (decimal.Decimal, error) {
	return f.totalBalance, nil
}

type fakeGoalRepo struct {
	saved    []*models.Goal
	saveErr  error
	total    int
	active   int
	avgRatio float64
}

func (f *fakeGoalRepo) Save(_ context.Context, goal *models.Goal) (*models.Goal, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	goal.ID = int64(len(f.saved) + 1000)
	f.saved = append(f.saved, goal)
	return goal, nil
}

func (f *fakeGoalRepo) FindByID(context.Context, int64, int64) (*models.Goal, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeGoalRepo) ListByUser(context.Context, int64, repository.GoalFilter) ([]*models.Goal, error) {
	return f.saved, nil
}

func (f *fakeGoalRepo) Update(_ context.Context, goal *models.Goal) (*models.Goal, error) {
	return goal, nil
}

func (f *fakeGoalRepo) Delete(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (f *fakeGoalRepo) Count(_ context.Context, _ int64, status *models.GoalStatus) (int, error) {
	if status == nil {
		return f.total, nil
	}
	return f.active, nil
}

func (f *fakeGoalRepo) AverageCompletion(context.Context, int64) (float64, error) {
	return f.avgRatio, nil
}
