package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbarbosa/granavoz/internal/models"
)

func TestFinancialSummary(t *testing.T) {
	txRepo := &fakeTransactionRepo{
		totals: map[models.TransactionType]decimal.Decimal{
			models.TransactionTypeIncome:  decimal.NewFromInt(2000),
			models.TransactionTypeExpense: decimal.NewFromInt(50),
		},
		byCategory: map[string]decimal.Decimal{"alimentação": decimal.NewFromInt(50)},
		count:      2,
	}
	accRepo := newFakeAccountRepo()
	accRepo.activeCount = 2
	accRepo.totalBalance = decimal.NewFromInt(1200)
	goalRepo := &fakeGoalRepo{total: 3, active: 2, avgRatio: 0.4}

	uc := NewFinancialSummary(txRepo, accRepo, goalRepo, zerolog.Nop())

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	s, err := uc.Execute(context.Background(), 42, &from, &to)
	require.NoError(t, err)

	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(2000)))
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(50)))
	assert.True(t, s.NetBalance.Equal(decimal.NewFromInt(1950)))
	assert.Equal(t, 2, s.ActiveAccounts)
	assert.True(t, s.TotalBalance.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 3, s.TotalGoals)
	assert.Equal(t, 2, s.ActiveGoals)
	assert.InDelta(t, 40.0, s.AverageGoalCompletion, 0.001)
	assert.Equal(t, 2, s.TransactionCount)
	assert.True(t, s.ExpensesByCategory["alimentação"].Equal(decimal.NewFromInt(50)))
	assert.Equal(t, from, s.From)
	assert.Equal(t, to, s.To)
}

func TestFinancialSummaryDefaultsToLast30Days(t *testing.T) {
	uc := NewFinancialSummary(&fakeTransactionRepo{}, newFakeAccountRepo(), &fakeGoalRepo{}, zerolog.Nop())

	s, err := uc.Execute(context.Background(), 42, nil, nil)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now(), s.To, time.Minute)
	assert.Equal(t, s.To.Add(-30*24*time.Hour), s.From)
}

func TestFinancialSummaryEmptyUser(t *testing.T) {
	uc := NewFinancialSummary(&fakeTransactionRepo{}, newFakeAccountRepo(), &fakeGoalRepo{}, zerolog.Nop())

	s, err := uc.Execute(context.Background(), 42, nil, nil)
	require.NoError(t, err)

	assert.True(t, s.TotalIncome.IsZero(), "no rows means zero, not an error")
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.NetBalance.IsZero())
	assert.Zero(t, s.AverageGoalCompletion)
	assert.Zero(t, s.TransactionCount)
}
