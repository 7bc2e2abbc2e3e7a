package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

type Goal struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	Status        GoalStatus      `json:"status"`
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewGoal(userID int64, title string, targetAmount, currentAmount decimal.Decimal, category string) (*Goal, error) {
	g := &Goal{
		UserID:        userID,
		Title:         strings.TrimSpace(title),
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Status:        GoalStatusActive,
		Category:      strings.TrimSpace(category),
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	g.maybeComplete()
	return g, nil
}

func (g *Goal) validate() error {
	if g.UserID == 0 {
		return validationErrorf("goal requires a user")
	}
	if g.Title == "" {
		return validationErrorf("goal title must not be empty")
	}
	if !g.TargetAmount.IsPositive() {
		return validationErrorf("goal target amount must be positive, got %s", g.TargetAmount)
	}
	if g.CurrentAmount.IsNegative() {
		return validationErrorf("goal current amount must not be negative, got %s", g.CurrentAmount)
	}
	if g.Category == "" {
		return validationErrorf("goal category must not be empty")
	}
	if !g.Status.Valid() {
		return validationErrorf("invalid goal status %q", g.Status)
	}
	return nil
}

// maybeComplete flips an active goal to completed once the target is reached.
// Paused and cancelled goals are never completed implicitly.
func (g *Goal) maybeComplete() {
	if g.Status == GoalStatusActive && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalStatusCompleted
	}
}

func (g *Goal) UpdateCurrentAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return validationErrorf("goal current amount must not be negative, got %s", amount)
	}
	g.CurrentAmount = amount
	g.maybeComplete()
	return nil
}

func (g *Goal) UpdateTargetAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationErrorf("goal target amount must be positive, got %s", amount)
	}
	g.TargetAmount = amount
	g.maybeComplete()
	return nil
}

// AddProgress increments the current amount by a positive delta.
func (g *Goal) AddProgress(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationErrorf("goal progress must be positive, got %s", amount)
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.maybeComplete()
	return nil
}

func (g *Goal) Pause() error {
	if g.Status != GoalStatusActive {
		return validationErrorf("only active goals can be paused, status is %q", g.Status)
	}
	g.Status = GoalStatusPaused
	return nil
}

func (g *Goal) Cancel() error {
	if g.Status != GoalStatusActive && g.Status != GoalStatusPaused {
		return validationErrorf("goal with status %q cannot be cancelled", g.Status)
	}
	g.Status = GoalStatusCancelled
	return nil
}

func (g *Goal) Reactivate() error {
	if g.Status != GoalStatusPaused {
		return validationErrorf("only paused goals can be reactivated, status is %q", g.Status)
	}
	g.Status = GoalStatusActive
	g.maybeComplete()
	return nil
}

// CompletionPercent returns progress as a percentage capped at 100.
func (g *Goal) CompletionPercent() float64 {
	ratio := g.CurrentAmount.Div(g.TargetAmount)
	pct, _ := ratio.Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	return pct
}
