package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCash       AccountType = "cash"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeInvestment, AccountTypeCash:
		return true
	}
	return false
}

type Account struct {
	ID     int64       `json:"id"`
	UserID int64       `json:"user_id"`
	Name   string      `json:"name"`
	Type   AccountType `json:"type"`
	Bank   *string     `json:"bank,omitempty"`

	// Balance may stay nil until the first transaction references the account.
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewAccount(userID int64, name string, accType AccountType) (*Account, error) {
	acc := &Account{
		UserID:   userID,
		Name:     strings.TrimSpace(name),
		Type:     accType,
		IsActive: true,
	}
	if err := acc.validate(); err != nil {
		return nil, err
	}
	return acc, nil
}

func (a *Account) validate() error {
	if a.UserID == 0 {
		return validationErrorf("account requires a user")
	}
	if a.Name == "" {
		return validationErrorf("account name must not be empty")
	}
	if !a.Type.Valid() {
		return validationErrorf("invalid account type %q", a.Type)
	}
	if a.Balance != nil && a.Balance.IsNegative() {
		return validationErrorf("account balance must not be negative, got %s", a.Balance)
	}
	return nil
}

// Deposit adds a positive amount to the balance. A nil balance counts as zero.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationErrorf("deposit amount must be positive, got %s", amount)
	}
	current := decimal.Zero
	if a.Balance != nil {
		current = *a.Balance
	}
	next := current.Add(amount)
	a.Balance = &next
	return nil
}

// Withdraw subtracts a positive amount and refuses to drive the balance negative.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationErrorf("withdrawal amount must be positive, got %s", amount)
	}
	current := decimal.Zero
	if a.Balance != nil {
		current = *a.Balance
	}
	next := current.Sub(amount)
	if next.IsNegative() {
		return validationErrorf("withdrawal of %s exceeds balance %s", amount, current)
	}
	a.Balance = &next
	return nil
}

func (a *Account) SetBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return validationErrorf("account balance must not be negative, got %s", balance)
	}
	a.Balance = &balance
	return nil
}

func (a *Account) Deactivate() {
	a.IsActive = false
}
