package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	acc, err := NewAccount(7, " Nubank ", AccountTypeChecking)
	require.NoError(t, err)
	assert.Equal(t, "Nubank", acc.Name)
	assert.True(t, acc.IsActive)
	assert.Nil(t, acc.Balance, "balance stays undefined until first use")

	_, err = NewAccount(7, "", AccountTypeChecking)
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewAccount(7, "Carteira", AccountType("wallet"))
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewAccount(0, "Carteira", AccountTypeCash)
	require.ErrorIs(t, err, ErrValidation)
}

func TestAccountDeposit(t *testing.T) {
	acc, err := NewAccount(7, "Poupança", AccountTypeSavings)
	require.NoError(t, err)

	require.NoError(t, acc.Deposit(decimal.NewFromInt(100)))
	require.NotNil(t, acc.Balance)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))

	require.NoError(t, acc.Deposit(decimal.NewFromFloat(0.50)))
	assert.True(t, acc.Balance.Equal(decimal.NewFromFloat(100.50)))

	require.ErrorIs(t, acc.Deposit(decimal.Zero), ErrValidation)
	require.ErrorIs(t, acc.Deposit(decimal.NewFromInt(-10)), ErrValidation)
}

func TestAccountWithdraw(t *testing.T) {
	acc, err := NewAccount(7, "Corrente", AccountTypeChecking)
	require.NoError(t, err)
	require.NoError(t, acc.SetBalance(decimal.NewFromInt(100)))

	require.NoError(t, acc.Withdraw(decimal.NewFromInt(40)))
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(60)))

	err = acc.Withdraw(decimal.NewFromInt(61))
	require.ErrorIs(t, err, ErrValidation)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(60)), "failed withdrawal must not mutate")

	require.ErrorIs(t, acc.Withdraw(decimal.NewFromInt(-1)), ErrValidation)
}

func TestAccountWithdrawFromNilBalance(t *testing.T) {
	acc, err := NewAccount(7, "Carteira", AccountTypeCash)
	require.NoError(t, err)

	require.ErrorIs(t, acc.Withdraw(decimal.NewFromInt(1)), ErrValidation)
	assert.Nil(t, acc.Balance)
}

func TestAccountSetBalanceRejectsNegative(t *testing.T) {
	acc, err := NewAccount(7, "Corrente", AccountTypeChecking)
	require.NoError(t, err)
	require.ErrorIs(t, acc.SetBalance(decimal.NewFromInt(-5)), ErrValidation)
}
