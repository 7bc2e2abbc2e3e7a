package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/fbarbosa/granavoz/internal/models"
)

// ErrNotFound is returned when an update or lookup targets a row that does
// not exist. Callers distinguish it from other persistence failures.
var ErrNotFound = errors.New("not found")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	defaultLimit = 50
	maxLimit     = 200
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// TransactionFilter narrows ListByUser. Nil fields mean "no filter".
type TransactionFilter struct {
	Type     *models.TransactionType
	Category *string
	From     *time.Time
	To       *time.Time
	Limit    int
}

type TransactionRepository interface {
	Save(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	// SaveBatch inserts all transactions inside a single database
	// transaction: either every row commits or none do.
	SaveBatch(ctx context.Context, txs []*models.Transaction) ([]int64, error)
	FindByID(ctx context.Context, id, userID int64) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID int64, filter TransactionFilter) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
	TotalByType(ctx context.Context, userID int64, txType models.TransactionType, from, to *time.Time) (decimal.Decimal, error)
	SumExpensesByCategory(ctx context.Context, userID int64, from, to *time.Time) (map[string]decimal.Decimal, error)
	CountInRange(ctx context.Context, userID int64, from, to time.Time) (int, error)
}

type AccountRepository interface {
	Save(ctx context.Context, acc *models.Account) (*models.Account, error)
	FindByID(ctx context.Context, id, userID int64) (*models.Account, error)
	// FindByUserAndName returns ErrNotFound when no account with that name
	// exists for the user. The save flow uses it to dedupe by (user, name).
	FindByUserAndName(ctx context.Context, userID int64, name string) (*models.Account, error)
	ListByUser(ctx context.Context, userID int64, activeOnly bool, limit int) ([]*models.Account, error)
	Update(ctx context.Context, acc *models.Account) (*models.Account, error)
	UpdateBalance(ctx context.Context, id, userID int64, balance decimal.Decimal) error
	Delete(ctx context.Context, id, userID int64) (bool, error)
	CountActive(ctx context.Context, userID int64) (int, error)
	TotalBalance(ctx context.Context, userID int64, includeCredit bool) (decimal.Decimal, error)
}

// GoalFilter narrows goal listings. Nil fields mean "no filter".
type GoalFilter struct {
	Status   *models.GoalStatus
	Category *string
	Limit    int
}

type GoalRepository interface {
	Save(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	FindByID(ctx context.Context, id, userID int64) (*models.Goal, error)
	ListByUser(ctx context.Context, userID int64, filter GoalFilter) ([]*models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
	// Count counts the user's goals, optionally restricted to one status.
	Count(ctx context.Context, userID int64, status *models.GoalStatus) (int, error)
	// AverageCompletion returns the mean current/target ratio over active
	// goals, each ratio capped at 1, as a value in [0, 1]. Zero when the
	// user has no active goals.
	AverageCompletion(ctx context.Context, userID int64) (float64, error)
}

type TranscriptionRepository interface {
	Save(ctx context.Context, tr *models.Transcription) (*models.Transcription, error)
	FindByID(ctx context.Context, id int64) (*models.Transcription, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Transcription, error)
}

type ExtractionLogRepository interface {
	Save(ctx context.Context, userID int64, transcriptionText string, raw *models.RawExtraction, confidence float64) (int64, error)
}
