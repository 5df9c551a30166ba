package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/sqlinline"
)

type ExpenseRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewExpenseRepository(sql infra.SQLExecutor) *ExpenseRepositoryPG {
	return &ExpenseRepositoryPG{sql: sql}
}

func (r *ExpenseRepositoryPG) Create(ctx context.Context, e *domain.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.UpdatedAt = e.CreatedAt
	e.ActivityID = emptyToNil(e.ActivityID)
	e.Category = emptyToNil(e.Category)
	_, err := r.sql.Exec(ctx, sqlinline.QInsertExpense,
		e.ID, e.ActivityID, e.Title, e.Amount, e.Category, e.Description, e.CreatedAt)
	return mapErr("insert expense", err)
}

func (r *ExpenseRepositoryPG) Update(ctx context.Context, e *domain.Expense) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now().UTC()
	}
	e.ActivityID = emptyToNil(e.ActivityID)
	e.Category = emptyToNil(e.Category)
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateExpense,
		e.ID, e.ActivityID, e.Title, e.Amount, e.Category, e.Description, e.UpdatedAt)
	return mapErr("update expense", row.Scan(&e.CreatedAt))
}

func (r *ExpenseRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteExpense, id)
	return expectOne("delete expense", tag, err)
}

func (r *ExpenseRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	e, err := scanExpense(r.sql.QueryRow(ctx, sqlinline.QGetExpense, id))
	if err != nil {
		return nil, mapErr("get expense", err)
	}
	return e, nil
}

func (r *ExpenseRepositoryPG) List(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListExpenses,
		emptyToNil(f.ActivityID), f.Category, f.Since, f.Until, f.Limit, f.Offset,
		f.General, f.Uncategorized)
	if err != nil {
		return nil, mapErr("list expenses", err)
	}
	items, err := collect(rows, scanExpense)
	return items, mapErr("list expenses", err)
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	if err := row.Scan(&e.ID, &e.ActivityID, &e.Title, &e.Amount, &e.Category, &e.Description,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

var _ domain.ExpenseRepository = (*ExpenseRepositoryPG)(nil)
