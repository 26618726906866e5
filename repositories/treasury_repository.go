package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReserveAccount is the ledger account holding the prize pool.
const ReserveAccount = "reserve"

var ErrReserveUnderfunded = errors.New("treasury reserve has insufficient balance")

// PostgresTreasury implements the league.Treasury collaborator over the
// treasury_accounts table. The reserve row holds the prize pool; user rows are
// keyed "user:<id>" and credited on reward transfers.
type PostgresTreasury struct {
	db *sql.DB
}

func NewPostgresTreasury(db *sql.DB) *PostgresTreasury {
	return &PostgresTreasury{db: db}
}

// EnsureReserve creates the reserve account with the given opening balance if
// it does not exist yet. An existing reserve is left untouched.
func (t *PostgresTreasury) EnsureReserve(ctx context.Context, initialBalance uint64) error {
	query := `
		INSERT INTO treasury_accounts (account, balance)
		VALUES ($1, $2)
		ON CONFLICT (account) DO NOTHING`

	if _, err := t.db.ExecContext(ctx, query, ReserveAccount, int64(initialBalance)); err != nil {
		return fmt.Errorf("failed to ensure treasury reserve: %w", err)
	}
	return nil
}

// Balance returns the current reserve balance.
func (t *PostgresTreasury) Balance(ctx context.Context) (uint64, error) {
	query := `SELECT balance FROM treasury_accounts WHERE account = $1`

	var balance int64
	err := t.db.QueryRowContext(ctx, query, ReserveAccount).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read reserve balance: %w", err)
	}
	return uint64(balance), nil
}

// Transfer moves amount from the reserve to the user's account in one
// transaction. The debit is guarded by the balance so a concurrent spend can
// never drive the reserve negative.
func (t *PostgresTreasury) Transfer(ctx context.Context, toUserID int, amount uint64) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer tx.Rollback()

	debit := `
		UPDATE treasury_accounts
		SET balance = balance - $1
		WHERE account = $2 AND balance >= $1`

	result, err := tx.ExecContext(ctx, debit, int64(amount), ReserveAccount)
	if err != nil {
		return fmt.Errorf("failed to debit reserve: %w", err)
	}
	if err := checkAffectedRows(result, ErrReserveUnderfunded); err != nil {
		return err
	}

	credit := `
		INSERT INTO treasury_accounts (account, balance)
		VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET balance = treasury_accounts.balance + EXCLUDED.balance`

	userAccount := fmt.Sprintf("user:%d", toUserID)
	if _, err := tx.ExecContext(ctx, credit, userAccount, int64(amount)); err != nil {
		return fmt.Errorf("failed to credit account %s: %w", userAccount, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}
