package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Account     *string         `json:"account,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewTransaction builds a validated transaction. Construction is
// all-or-nothing: an invariant violation returns an error and no entity.
func NewTransaction(userID int64, amount decimal.Decimal, txType TransactionType, category, description string, date time.Time) (*Transaction, error) {
	tx := &Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		Date:        date,
	}
	if err := tx.validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

func (t *Transaction) validate() error {
	if t.UserID == 0 {
		return validationErrorf("transaction requires a user")
	}
	if !t.Amount.IsPositive() {
		return validationErrorf("transaction amount must be positive, got %s", t.Amount)
	}
	if !t.Type.Valid() {
		return validationErrorf("invalid transaction type %q", t.Type)
	}
	if t.Category == "" {
		return validationErrorf("transaction category must not be empty")
	}
	if t.Description == "" {
		return validationErrorf("transaction description must not be empty")
	}
	if t.Date.IsZero() {
		return validationErrorf("transaction date must be set")
	}
	return nil
}

func (t *Transaction) UpdateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationErrorf("transaction amount must be positive, got %s", amount)
	}
	t.Amount = amount
	return nil
}

func (t *Transaction) UpdateCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return validationErrorf("transaction category must not be empty")
	}
	t.Category = category
	return nil
}

func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}
