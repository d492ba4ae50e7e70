package expense

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles expense and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpenseWithShares inserts an expense and all of its shares in a
// single transaction. Either the expense and every share exist, or none
// do; readers can never observe a partial allocation.
func (r *Repository) CreateExpenseWithShares(ctx context.Context, exp *Expense, shares []*Share) (*Expense, []*Share, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := &Expense{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO expenses (payer_id, description, total_amount, split_method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, payer_id, description, total_amount, split_method, created_at
	`, exp.PayerID, exp.Description, exp.TotalAmount, exp.SplitMethod).Scan(
		&created.ID,
		&created.PayerID,
		&created.Description,
		&created.TotalAmount,
		&created.SplitMethod,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create expense: %w", err)
	}

	createdShares := make([]*Share, len(shares))
	for i, s := range shares {
		row := &Share{}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO shares (expense_id, user_id, amount, percentage, exact_amount, settled)
			VALUES ($1, $2, $3, $4, $5, FALSE)
			RETURNING id, expense_id, user_id, amount, percentage, exact_amount, settled, created_at
		`, created.ID, s.UserID, s.Amount, s.Percentage, s.ExactAmount).Scan(
			&row.ID,
			&row.ExpenseID,
			&row.UserID,
			&row.Amount,
			&row.Percentage,
			&row.ExactAmount,
			&row.Settled,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create share: %w", err)
		}
		createdShares[i] = row
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit allocation: %w", err)
	}

	return created, createdShares, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.payer_id, e.description, e.total_amount, e.split_method, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.PayerID,
		&expense.Description,
		&expense.TotalAmount,
		&expense.SplitMethod,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSharesByExpenseID retrieves all shares for an expense
func (r *Repository) GetSharesByExpenseID(ctx context.Context, expenseID int64) ([]*Share, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount, s.percentage, s.exact_amount, s.settled, s.created_at, u.name
		FROM shares s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	return scanShares(rows)
}

// ListSharesByUser retrieves all shares belonging to a user
func (r *Repository) ListSharesByUser(ctx context.Context, userID int64) ([]*Share, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount, s.percentage, s.exact_amount, s.settled, s.created_at, u.name
		FROM shares s
		JOIN users u ON s.user_id = u.id
		WHERE s.user_id = $1
		ORDER BY s.created_at, s.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	return scanShares(rows)
}

// ListLedgerRows retrieves a user's shares joined with their owning
// expenses, as consumed by balance aggregation and the ledger report
func (r *Repository) ListLedgerRows(ctx context.Context, userID int64) ([]*LedgerRow, error) {
	query := `
		SELECT u.name, e.description, e.total_amount, e.payer_id, s.amount, s.percentage, s.exact_amount, s.settled, s.created_at
		FROM shares s
		JOIN expenses e ON s.expense_id = e.id
		JOIN users u ON s.user_id = u.id
		WHERE s.user_id = $1
		ORDER BY s.created_at, s.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}
	defer rows.Close()

	var ledger []*LedgerRow
	for rows.Next() {
		row := &LedgerRow{}
		if err := rows.Scan(
			&row.UserName,
			&row.Description,
			&row.ExpenseTotal,
			&row.ExpensePayerID,
			&row.Amount,
			&row.Percentage,
			&row.ExactAmount,
			&row.Settled,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledger = append(ledger, row)
	}

	return ledger, rows.Err()
}

// ListExpenses retrieves all expenses system-wide with pagination
func (r *Repository) ListExpenses(ctx context.Context, limit, offset int) ([]*Expense, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.payer_id, e.description, e.total_amount, e.split_method, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		ORDER BY e.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// ListAllExpenses retrieves every expense with its payer name, oldest
// first, for the report roll-up
func (r *Repository) ListAllExpenses(ctx context.Context) ([]*Expense, error) {
	query := `
		SELECT e.id, e.payer_id, e.description, e.total_amount, e.split_method, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		ORDER BY e.created_at, e.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListByPayer retrieves all expenses created by a user
func (r *Repository) ListByPayer(ctx context.Context, payerID int64) ([]*Expense, error) {
	query := `
		SELECT e.id, e.payer_id, e.description, e.total_amount, e.split_method, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.payer_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, payerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by payer: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]*Expense, error) {
	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.PayerID,
			&expense.Description,
			&expense.TotalAmount,
			&expense.SplitMethod,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func scanShares(rows *sql.Rows) ([]*Share, error) {
	var shares []*Share
	for rows.Next() {
		share := &Share{}
		if err := rows.Scan(
			&share.ID,
			&share.ExpenseID,
			&share.UserID,
			&share.Amount,
			&share.Percentage,
			&share.ExactAmount,
			&share.Settled,
			&share.CreatedAt,
			&share.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	return shares, rows.Err()
}
