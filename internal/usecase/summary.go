package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/repository"
)

// defaultSummaryWindow is applied when the caller gives no date range.
const defaultSummaryWindow = 30 * 24 * time.Hour

type Summary struct {
	From time.Time
	To   time.Time

	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetBalance    decimal.Decimal

	ActiveAccounts int
	// TotalBalance excludes credit accounts.
	TotalBalance decimal.Decimal

	TotalGoals  int
	ActiveGoals int
	// AverageGoalCompletion is a percentage over active goals, 0 when none.
	AverageGoalCompletion float64

	ExpensesByCategory map[string]decimal.Decimal
	TransactionCount   int
}

// FinancialSummary is a read-only fan-out over the aggregate queries. The
// sub-queries are independent; no cross-validation between them.
type FinancialSummary struct {
	transactions repository.TransactionRepository
	accounts     repository.AccountRepository
	goals        repository.GoalRepository
	log          zerolog.Logger
}

func NewFinancialSummary(transactions repository.TransactionRepository, accounts repository.AccountRepository, goals repository.GoalRepository, log zerolog.Logger) *FinancialSummary {
	return &FinancialSummary{
		transactions: transactions,
		accounts:     accounts,
		goals:        goals,
		log:          log,
	}
}

func (uc *FinancialSummary) Execute(ctx context.Context, userID int64, from, to *time.Time) (*Summary, error) {
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.Add(-defaultSummaryWindow)
	if from != nil {
		start = *from
	}

	s := &Summary{From: start, To: end}

	var err error
	if s.TotalIncome, err = uc.transactions.TotalByType(ctx, userID, models.TransactionTypeIncome, &start, &end); err != nil {
		return nil, fmt.Errorf("failed to compute total income: %w", err)
	}
	if s.TotalExpenses, err = uc.transactions.TotalByType(ctx, userID, models.TransactionTypeExpense, &start, &end); err != nil {
		return nil, fmt.Errorf("failed to compute total expenses: %w", err)
	}
	s.NetBalance = s.TotalIncome.Sub(s.TotalExpenses)

	if s.ActiveAccounts, err = uc.accounts.CountActive(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if s.TotalBalance, err = uc.accounts.TotalBalance(ctx, userID, false); err != nil {
		return nil, fmt.Errorf("failed to compute total balance: %w", err)
	}

	if s.TotalGoals, err = uc.goals.Count(ctx, userID, nil); err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}
	active := models.GoalStatusActive
	if s.ActiveGoals, err = uc.goals.Count(ctx, userID, &active); err != nil {
		return nil, fmt.Errorf("failed to count active goals: %w", err)
	}
	avg, err := uc.goals.AverageCompletion(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute goal completion: %w", err)
	}
	s.AverageGoalCompletion = avg * 100

	if s.ExpensesByCategory, err = uc.transactions.SumExpensesByCategory(ctx, userID, &start, &end); err != nil {
		return nil, fmt.Errorf("failed to group expenses by category: %w", err)
	}
	if s.TransactionCount, err = uc.transactions.CountInRange(ctx, userID, start, end); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	uc.log.Debug().Int64("user_id", userID).Time("from", start).Time("to", end).Msg("summary computed")

	return s, nil
}
