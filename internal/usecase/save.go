package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/repository"
)

// SaveResult reports what was actually written. Only the entities listed here
// may be shown to the user as recorded; extracted items whose write failed are
// absent.
type SaveResult struct {
	TransactionIDs []int64
	AccountIDs     []int64
	GoalIDs        []int64

	Transactions []*models.Transaction
	Accounts     []*models.Account
	Goals        []*models.Goal

	// BelowThreshold is set when the extraction confidence did not reach the
	// persistence policy threshold and nothing was written.
	BelowThreshold bool
}

func (r *SaveResult) Saved() int {
	return len(r.TransactionIDs) + len(r.AccountIDs) + len(r.GoalIDs)
}

// SaveFinancialData persists an extracted aggregate. Transactions go in one
// atomic batch; accounts are deduplicated by (user, name); goals are saved
// one by one. Per-group failures are logged, not fatal.
type SaveFinancialData struct {
	transactions  repository.TransactionRepository
	accounts      repository.AccountRepository
	goals         repository.GoalRepository
	minConfidence float64
	log           zerolog.Logger
}

func NewSaveFinancialData(transactions repository.TransactionRepository, accounts repository.AccountRepository, goals repository.GoalRepository, minConfidence float64, log zerolog.Logger) *SaveFinancialData {
	return &SaveFinancialData{
		transactions:  transactions,
		accounts:      accounts,
		goals:         goals,
		minConfidence: minConfidence,
		log:           log,
	}
}

func (uc *SaveFinancialData) Execute(ctx context.Context, data *models.ExtractedFinancialData, user models.User) (*SaveResult, error) {
	log := uc.log.With().
		Str("run_id", uuid.NewString()).
		Int64("user_id", user.ID).
		Logger()

	result := &SaveResult{}

	if data.Confidence < uc.minConfidence {
		log.Info().
			Float64("confidence", data.Confidence).
			Float64("threshold", uc.minConfidence).
			Msg("extraction below confidence threshold, not persisting")
		result.BelowThreshold = true
		return result, nil
	}

	if len(data.Transactions) > 0 {
		ids, err := uc.transactions.SaveBatch(ctx, data.Transactions)
		if err != nil {
			log.Error().Err(err).Int("count", len(data.Transactions)).Msg("transaction batch not saved")
		} else {
			result.TransactionIDs = ids
			result.Transactions = data.Transactions
		}
	}

	for _, acc := range data.Accounts {
		id, err := uc.saveAccount(ctx, acc)
		if err != nil {
			log.Error().Err(err).Str("account", acc.Name).Msg("account not saved")
			continue
		}
		result.AccountIDs = append(result.AccountIDs, id)
		result.Accounts = append(result.Accounts, acc)
	}

	for _, goal := range data.Goals {
		saved, err := uc.goals.Save(ctx, goal)
		if err != nil {
			log.Error().Err(err).Str("goal", goal.Title).Msg("goal not saved")
			continue
		}
		result.GoalIDs = append(result.GoalIDs, saved.ID)
		result.Goals = append(result.Goals, goal)
	}

	log.Info().
		Int("transactions", len(result.TransactionIDs)).
		Int("accounts", len(result.AccountIDs)).
		Int("goals", len(result.GoalIDs)).
		Msg("extracted data persisted")

	return result, nil
}

// saveAccount inserts the account unless one with the same name already
// exists for the user; then only a changed balance is written back.
func (uc *SaveFinancialData) saveAccount(ctx context.Context, acc *models.Account) (int64, error) {
	existing, err := uc.accounts.FindByUserAndName(ctx, acc.UserID, acc.Name)
	if errors.Is(err, repository.ErrNotFound) {
		saved, err := uc.accounts.Save(ctx, acc)
		if err != nil {
			return 0, err
		}
		return saved.ID, nil
	}
	if err != nil {
		return 0, err
	}

	if acc.Balance != nil && (existing.Balance == nil || !existing.Balance.Equal(*acc.Balance)) {
		if err := uc.accounts.UpdateBalance(ctx, existing.ID, existing.UserID, *acc.Balance); err != nil {
			return 0, err
		}
	}
	return existing.ID, nil
}
