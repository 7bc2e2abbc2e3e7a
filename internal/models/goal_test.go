package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoal(t *testing.T, target, current int64) *Goal {
	t.Helper()
	goal, err := NewGoal(7, "Viagem", decimal.NewFromInt(target), decimal.NewFromInt(current), "lazer")
	require.NoError(t, err)
	return goal
}

func TestNewGoal(t *testing.T) {
	goal := newTestGoal(t, 5000, 0)
	assert.Equal(t, GoalStatusActive, goal.Status)

	_, err := NewGoal(7, "", decimal.NewFromInt(100), decimal.Zero, "lazer")
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewGoal(7, "Viagem", decimal.Zero, decimal.Zero, "lazer")
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewGoal(7, "Viagem", decimal.NewFromInt(100), decimal.NewFromInt(-1), "lazer")
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewGoal(7, "Viagem", decimal.NewFromInt(100), decimal.Zero, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestGoalCompletesOnConstructionWhenTargetReached(t *testing.T) {
	goal := newTestGoal(t, 100, 100)
	assert.Equal(t, GoalStatusCompleted, goal.Status)
}

func TestGoalAutoCompletion(t *testing.T) {
	t.Run("via UpdateCurrentAmount", func(t *testing.T) {
		goal := newTestGoal(t, 100, 10)
		require.NoError(t, goal.UpdateCurrentAmount(decimal.NewFromInt(150)))
		assert.Equal(t, GoalStatusCompleted, goal.Status)
	})

	t.Run("via AddProgress", func(t *testing.T) {
		goal := newTestGoal(t, 100, 90)
		require.NoError(t, goal.AddProgress(decimal.NewFromInt(10)))
		assert.Equal(t, GoalStatusCompleted, goal.Status)
	})

	t.Run("via UpdateTargetAmount", func(t *testing.T) {
		goal := newTestGoal(t, 100, 50)
		require.NoError(t, goal.UpdateTargetAmount(decimal.NewFromInt(50)))
		assert.Equal(t, GoalStatusCompleted, goal.Status)
	})

	t.Run("never from paused", func(t *testing.T) {
		goal := newTestGoal(t, 100, 50)
		require.NoError(t, goal.Pause())
		require.NoError(t, goal.UpdateCurrentAmount(decimal.NewFromInt(100)))
		assert.Equal(t, GoalStatusPaused, goal.Status)
	})

	t.Run("never from cancelled", func(t *testing.T) {
		goal := newTestGoal(t, 100, 50)
		require.NoError(t, goal.Cancel())
		require.NoError(t, goal.AddProgress(decimal.NewFromInt(100)))
		assert.Equal(t, GoalStatusCancelled, goal.Status)
	})
}

func TestGoalStatusTransitions(t *testing.T) {
	goal := newTestGoal(t, 100, 0)

	require.NoError(t, goal.Pause())
	require.ErrorIs(t, goal.Pause(), ErrValidation)

	require.NoError(t, goal.Reactivate())
	assert.Equal(t, GoalStatusActive, goal.Status)

	require.NoError(t, goal.Cancel())
	require.ErrorIs(t, goal.Cancel(), ErrValidation)
	require.ErrorIs(t, goal.Reactivate(), ErrValidation)
}

func TestGoalReactivateCompletesWhenTargetAlreadyReached(t *testing.T) {
	goal := newTestGoal(t, 100, 50)
	require.NoError(t, goal.Pause())
	require.NoError(t, goal.UpdateCurrentAmount(decimal.NewFromInt(120)))
	assert.Equal(t, GoalStatusPaused, goal.Status)

	require.NoError(t, goal.Reactivate())
	assert.Equal(t, GoalStatusCompleted, goal.Status)
}

func TestGoalProgressValidation(t *testing.T) {
	goal := newTestGoal(t, 100, 10)
	require.ErrorIs(t, goal.AddProgress(decimal.Zero), ErrValidation)
	require.ErrorIs(t, goal.UpdateCurrentAmount(decimal.NewFromInt(-1)), ErrValidation)
	require.ErrorIs(t, goal.UpdateTargetAmount(decimal.Zero), ErrValidation)
}

func TestGoalCompletionPercent(t *testing.T) {
	goal := newTestGoal(t, 200, 50)
	assert.InDelta(t, 25.0, goal.CompletionPercent(), 0.001)

	require.NoError(t, goal.UpdateCurrentAmount(decimal.NewFromInt(500)))
	assert.Equal(t, 100.0, goal.CompletionPercent())
}
