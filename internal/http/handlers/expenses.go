package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"charity/internal/domain"
	"charity/internal/report"
)

type expenseDTO struct {
	ID          string    `json:"id"`
	ActivityID  *string   `json:"activityId"`
	Title       string    `json:"title"`
	Amount      int64     `json:"amount"`
	Category    *string   `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toExpenseDTO(e domain.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		ActivityID:  e.ActivityID,
		Title:       e.Title,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toExpenseDTOs(items []domain.Expense) []expenseDTO {
	out := make([]expenseDTO, 0, len(items))
	for _, e := range items {
		out = append(out, toExpenseDTO(e))
	}
	return out
}

type expenseRequest struct {
	ActivityID  *string `json:"activityId"`
	Title       string  `json:"title"`
	Amount      int64   `json:"amount"`
	Category    *string `json:"category"`
	Description string  `json:"description"`
}

func (req expenseRequest) apply(e *domain.Expense) error {
	activityID := trimPtr(req.ActivityID)
	if !validUUIDPtr(activityID) {
		return domain.Invalid("activityId", "malformed")
	}
	e.ActivityID = activityID
	e.Title = strings.TrimSpace(req.Title)
	e.Amount = req.Amount
	e.Category = trimPtr(req.Category)
	e.Description = strings.TrimSpace(req.Description)
	return e.Validate()
}

func (a *App) expenseFilter(r *http.Request) (domain.ExpenseFilter, error) {
	q := r.URL.Query()
	f := domain.ExpenseFilter{Category: strings.TrimSpace(q.Get("category"))}
	f.Uncategorized = f.Category == report.UncategorizedExpense
	switch activityID := strings.TrimSpace(q.Get("activityId")); activityID {
	case "":
	case "general":
		f.General = true
	default:
		if !validUUIDPtr(&activityID) {
			return f, domain.Invalid("activityId", "malformed")
		}
		f.ActivityID = &activityID
	}
	var err error
	if f.Limit, err = queryInt(r, "limit", defaultPageSize, maxPageSize); err != nil {
		return f, err
	}
	if f.Offset, err = queryInt(r, "offset", 0, 0); err != nil {
		return f, err
	}
	f.Since, f.Until, err = queryYear(r, a.loc())
	return f, err
}

func (a *App) ExpensesList(w http.ResponseWriter, r *http.Request) {
	filter, err := a.expenseFilter(r)
	if err != nil {
		a.fail(w, r, err, "parse expense filter")
		return
	}
	items, err := a.Expenses.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err, "list expenses failed")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"items":  toExpenseDTOs(items),
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func (a *App) ExpensesCreate(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !a.decode(w, r, &req) {
		return
	}
	e := &domain.Expense{CreatedAt: a.now().UTC()}
	if err := req.apply(e); err != nil {
		a.fail(w, r, err, "validate expense")
		return
	}
	if err := a.Expenses.Create(r.Context(), e); err != nil {
		a.fail(w, r, err, "create expense failed")
		return
	}
	a.json(w, http.StatusCreated, toExpenseDTO(*e))
}

func (a *App) ExpensesUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req expenseRequest
	if !a.decode(w, r, &req) {
		return
	}
	e := &domain.Expense{ID: id, UpdatedAt: a.now().UTC()}
	if err := req.apply(e); err != nil {
		a.fail(w, r, err, "validate expense")
		return
	}
	if err := a.Expenses.Update(r.Context(), e); err != nil {
		a.fail(w, r, err, "update expense failed")
		return
	}
	a.json(w, http.StatusOK, toExpenseDTO(*e))
}

func (a *App) ExpensesDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := a.Expenses.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err, "delete expense failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
