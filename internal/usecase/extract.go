package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/repository"
)

// ExtractFinancialData turns a transcript into validated financial entities.
// Mapping is best-effort: the model is not guaranteed to produce well-formed
// items, so invalid ones are skipped with a warning instead of aborting the
// batch.
type ExtractFinancialData struct {
	extractor FinancialExtractor
	logs      repository.ExtractionLogRepository
	log       zerolog.Logger
}

func NewExtractFinancialData(extractor FinancialExtractor, logs repository.ExtractionLogRepository, log zerolog.Logger) *ExtractFinancialData {
	return &ExtractFinancialData{
		extractor: extractor,
		logs:      logs,
		log:       log,
	}
}

func (uc *ExtractFinancialData) Execute(ctx context.Context, text string, user models.User) (*models.ExtractedFinancialData, error) {
	log := uc.log.With().
		Str("run_id", uuid.NewString()).
		Int64("user_id", user.ID).
		Logger()

	raw, err := uc.extractor.Extract(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("extraction failed")
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	data := &models.ExtractedFinancialData{
		Notes:      raw.Notes,
		Confidence: raw.Confidence,
	}

	now := time.Now()
	for i, rt := range raw.Transactions {
		tx, err := mapTransaction(rt, user.ID, now)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping invalid transaction")
			continue
		}
		data.Transactions = append(data.Transactions, tx)
	}
	for i, ra := range raw.Accounts {
		acc, err := mapAccount(ra, user.ID)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping invalid account")
			continue
		}
		data.Accounts = append(data.Accounts, acc)
	}
	for i, rg := range raw.Goals {
		goal, err := mapGoal(rg, user.ID)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping invalid goal")
			continue
		}
		data.Goals = append(data.Goals, goal)
	}

	// Audit row is best-effort.
	if _, err := uc.logs.Save(ctx, user.ID, text, raw, raw.Confidence); err != nil {
		log.Warn().Err(err).Msg("could not persist extraction log")
	}

	log.Info().
		Int("transactions", len(data.Transactions)).
		Int("accounts", len(data.Accounts)).
		Int("goals", len(data.Goals)).
		Float64("confidence", data.Confidence).
		Msg("financial data extracted")

	return data, nil
}

func mapTransaction(raw models.RawTransaction, userID int64, now time.Time) (*models.Transaction, error) {
	if raw.Amount == nil {
		return nil, fmt.Errorf("%w: transaction amount missing", models.ErrValidation)
	}

	date := now
	if raw.Date != nil && *raw.Date != "" {
		parsed, err := time.Parse("2006-01-02", *raw.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid transaction date %q", models.ErrValidation, *raw.Date)
		}
		date = parsed
	}

	tx, err := models.NewTransaction(userID, decimal.NewFromFloat(*raw.Amount),
		models.TransactionType(raw.Type), raw.Category, raw.Description, date)
	if err != nil {
		return nil, err
	}
	tx.Account = raw.Account
	tx.Tags = raw.Tags
	return tx, nil
}

func mapAccount(raw models.RawAccount, userID int64) (*models.Account, error) {
	acc, err := models.NewAccount(userID, raw.Name, models.AccountType(raw.Type))
	if err != nil {
		return nil, err
	}
	acc.Bank = raw.Bank
	if raw.Balance != nil {
		if err := acc.SetBalance(decimal.NewFromFloat(*raw.Balance)); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func mapGoal(raw models.RawGoal, userID int64) (*models.Goal, error) {
	if raw.TargetAmount == nil {
		return nil, fmt.Errorf("%w: goal target amount missing", models.ErrValidation)
	}
	if raw.CurrentAmount == nil {
		return nil, fmt.Errorf("%w: goal current amount missing", models.ErrValidation)
	}

	goal, err := models.NewGoal(userID, raw.Title,
		decimal.NewFromFloat(*raw.TargetAmount), decimal.NewFromFloat(*raw.CurrentAmount), raw.Category)
	if err != nil {
		return nil, err
	}
	goal.Description = raw.Description
	if raw.TargetDate != nil && *raw.TargetDate != "" {
		parsed, err := time.Parse("2006-01-02", *raw.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid goal target date %q", models.ErrValidation, *raw.TargetDate)
		}
		goal.TargetDate = &parsed
	}
	return goal, nil
}
