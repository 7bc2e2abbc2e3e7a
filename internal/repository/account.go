package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fbarbosa/granavoz/internal/database"
	"github.com/fbarbosa/granavoz/internal/models"
)

const accountColumns = `id, user_id, name, type, bank, balance, is_active, created_at, updated_at`

type PgAccountRepository struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) *PgAccountRepository {
	return &PgAccountRepository{db: db}
}

func (r *PgAccountRepository) Save(ctx context.Context, acc *models.Account) (*models.Account, error) {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO financial_accounts (user_id, name, type, bank, balance, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		acc.UserID, acc.Name, acc.Type, acc.Bank, acc.Balance, acc.IsActive,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return acc, nil
}

func (r *PgAccountRepository) FindByID(ctx context.Context, id, userID int64) (*models.Account, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM financial_accounts WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return acc, nil
}

func (r *PgAccountRepository) FindByUserAndName(ctx context.Context, userID int64, name string) (*models.Account, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM financial_accounts WHERE user_id = $1 AND name = $2
		 ORDER BY created_at LIMIT 1`,
		userID, name,
	)
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by name: %w", err)
	}
	return acc, nil
}

func (r *PgAccountRepository) ListByUser(ctx context.Context, userID int64, activeOnly bool, limit int) ([]*models.Account, error) {
	q := psql.Select(accountColumns).
		From("financial_accounts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(clampLimit(limit)))
	if activeOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accs []*models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accs = append(accs, acc)
	}
	return accs, rows.Err()
}

func (r *PgAccountRepository) Update(ctx context.Context, acc *models.Account) (*models.Account, error) {
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE financial_accounts
		 SET name = $1, type = $2, bank = $3, balance = $4, is_active = $5
		 WHERE id = $6 AND user_id = $7
		 RETURNING updated_at`,
		acc.Name, acc.Type, acc.Bank, acc.Balance, acc.IsActive, acc.ID, acc.UserID,
	).Scan(&acc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", acc.ID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return acc, nil
}

func (r *PgAccountRepository) UpdateBalance(ctx context.Context, id, userID int64, balance decimal.Decimal) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE financial_accounts SET balance = $1 WHERE id = $2 AND user_id = $3`,
		balance, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *PgAccountRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM financial_accounts WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgAccountRepository) CountActive(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM financial_accounts WHERE user_id = $1 AND is_active`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active accounts: %w", err)
	}
	return count, nil
}

func (r *PgAccountRepository) TotalBalance(ctx context.Context, userID int64, includeCredit bool) (decimal.Decimal, error) {
	q := psql.Select("COALESCE(SUM(balance), 0)").
		From("financial_accounts").
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		Where("balance IS NOT NULL")
	if !includeCredit {
		q = q.Where(sq.NotEq{"type": models.AccountTypeCredit})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build balance query: %w", err)
	}

	var total decimal.Decimal
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balances: %w", err)
	}
	return total, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	acc := &models.Account{}
	err := row.Scan(&acc.ID, &acc.UserID, &acc.Name, &acc.Type, &acc.Bank, &acc.Balance,
		&acc.IsActive, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return acc, nil
}
