package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fbarbosa/granavoz/internal/database"
	"github.com/fbarbosa/granavoz/internal/models"
)

const transactionColumns = `id, user_id, amount, type, category, description, date, account, tags, metadata, created_at, updated_at`

type PgTransactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) *PgTransactionRepository {
	return &PgTransactionRepository{db: db}
}

func (r *PgTransactionRepository) Save(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO financial_transactions (user_id, amount, type, category, description, date, account, tags, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		tx.UserID, tx.Amount, tx.Type, tx.Category, tx.Description, tx.Date, tx.Account, tx.Tags, tx.Metadata,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return tx, nil
}

func (r *PgTransactionRepository) SaveBatch(ctx context.Context, txs []*models.Transaction) ([]int64, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(txs))
	err := pgx.BeginFunc(ctx, r.db.Pool, func(dbTx pgx.Tx) error {
		for _, tx := range txs {
			err := dbTx.QueryRow(ctx,
				`INSERT INTO financial_transactions (user_id, amount, type, category, description, date, account, tags, metadata)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				 RETURNING id, created_at, updated_at`,
				tx.UserID, tx.Amount, tx.Type, tx.Category, tx.Description, tx.Date, tx.Account, tx.Tags, tx.Metadata,
			).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
			if err != nil {
				return err
			}
			ids = append(ids, tx.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction batch: %w", err)
	}
	return ids, nil
}

func (r *PgTransactionRepository) FindByID(ctx context.Context, id, userID int64) (*models.Transaction, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM financial_transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return tx, nil
}

func (r *PgTransactionRepository) ListByUser(ctx context.Context, userID int64, filter TransactionFilter) ([]*models.Transaction, error) {
	q := psql.Select(transactionColumns).
		From("financial_transactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		Limit(uint64(clampLimit(filter.Limit)))

	if filter.Type != nil {
		q = q.Where(sq.Eq{"type": *filter.Type})
	}
	if filter.Category != nil {
		q = q.Where(sq.Eq{"category": *filter.Category})
	}
	if filter.From != nil {
		q = q.Where(sq.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(sq.LtOrEq{"date": *filter.To})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *PgTransactionRepository) Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE financial_transactions
		 SET amount = $1, type = $2, category = $3, description = $4, date = $5, account = $6, tags = $7, metadata = $8
		 WHERE id = $9 AND user_id = $10
		 RETURNING updated_at`,
		tx.Amount, tx.Type, tx.Category, tx.Description, tx.Date, tx.Account, tx.Tags, tx.Metadata, tx.ID, tx.UserID,
	).Scan(&tx.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", tx.ID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return tx, nil
}

func (r *PgTransactionRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM financial_transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgTransactionRepository) TotalByType(ctx context.Context, userID int64, txType models.TransactionType, from, to *time.Time) (decimal.Decimal, error) {
	q := psql.Select("COALESCE(SUM(amount), 0)").
		From("financial_transactions").
		Where(sq.Eq{"user_id": userID, "type": txType})
	if from != nil {
		q = q.Where(sq.GtOrEq{"date": *from})
	}
	if to != nil {
		q = q.Where(sq.LtOrEq{"date": *to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build total query: %w", err)
	}

	var total decimal.Decimal
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s transactions: %w", txType, err)
	}
	return total, nil
}

func (r *PgTransactionRepository) SumExpensesByCategory(ctx context.Context, userID int64, from, to *time.Time) (map[string]decimal.Decimal, error) {
	q := psql.Select("category", "COALESCE(SUM(amount), 0)").
		From("financial_transactions").
		Where(sq.Eq{"user_id": userID, "type": models.TransactionTypeExpense}).
		GroupBy("category")
	if from != nil {
		q = q.Where(sq.GtOrEq{"date": *from})
	}
	if to != nil {
		q = q.Where(sq.LtOrEq{"date": *to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category summary query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses by category: %w", err)
	}
	defer rows.Close()

	summary := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summary[category] = total
	}
	return summary, rows.Err()
}

func (r *PgTransactionRepository) CountInRange(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM financial_transactions WHERE user_id = $1 AND date >= $2 AND date <= $3`,
		userID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	tx := &models.Transaction{}
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Category, &tx.Description,
		&tx.Date, &tx.Account, &tx.Tags, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
