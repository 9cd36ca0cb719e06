package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/gastoctl/gastoctl/internal/model"
)

// ExpenseRequest carries the writable expense fields for create and edit.
type ExpenseRequest struct {
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria,omitempty"`
}

// ListExpenses returns all expenses recorded against one budget.
func (c *Client) ListExpenses(ctx context.Context, budgetID int) ([]model.Expense, error) {
	var gastos []model.Expense
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/gastos/presupuesto/%d/gastos/", budgetID), nil, &gastos)
	return gastos, err
}

// CreateExpense posts a new expense scoped to the budget.
func (c *Client) CreateExpense(ctx context.Context, budgetID int, req ExpenseRequest) (model.Expense, error) {
	var g model.Expense
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/gastos/presupuesto/%d/gastos/nuevo/", budgetID), req, &g)
	return g, err
}

// UpdateExpense issues a full replace of one expense.
func (c *Client) UpdateExpense(ctx context.Context, budgetID, expenseID int, req ExpenseRequest) (model.Expense, error) {
	var g model.Expense
	err := c.do(ctx, http.MethodPut,
		fmt.Sprintf("/gastos/presupuesto/%d/gastos/%d/editar/", budgetID, expenseID), req, &g)
	return g, err
}

// DeleteExpense removes one expense. Success is HTTP 204 exactly; any other
// status is a failure so callers never apply the optimistic list filter on
// an ambiguous response.
func (c *Client) DeleteExpense(ctx context.Context, budgetID, expenseID int) error {
	path := fmt.Sprintf("/gastos/presupuesto/%d/gastos/%d/eliminar/", budgetID, expenseID)
	status, data, err := c.request(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return parseServerError(status, data)
	}
}
