package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
)

type PgxBankAccountRepository struct {
	BaseRepository
}

// NewBankAccountRepository creates a new repository for bank account data.
func NewBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepository {
	return &PgxBankAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBankAccountRepository implements portsrepo.BankAccountRepository
var _ portsrepo.BankAccountRepository = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `
	bank_account_id, name, bank_name, account_number, initial_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var a domain.BankAccount
	err := row.Scan(
		&a.BankAccountID,
		&a.Name,
		&a.BankName,
		&a.AccountNumber,
		&a.InitialBalance,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.BankAccountID,
		account.Name,
		account.BankName,
		account.AccountNumber,
		account.InitialBalance,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	account, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	return account, nil
}

func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, includeInactive bool) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bank account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxBankAccountRepository) SetBankAccountActive(ctx context.Context, bankAccountID string, active bool, updatedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE bank_accounts
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE bank_account_id = $4;
	`, active, time.Now().UTC(), updatedBy, bankAccountID)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", bankAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
