package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/gastoctl/gastoctl/internal/model"
)

// BudgetRequest carries the writable budget fields for create and edit.
// monto_restante is server-owned and never sent.
type BudgetRequest struct {
	Nombre      string          `json:"nombre_presupuesto"`
	FechaInicio string          `json:"fecha_inicio"`
	FechaFin    string          `json:"fecha_fin"`
	MontoTotal  decimal.Decimal `json:"monto_total"`
}

// ListBudgets returns all budgets owned by the current session.
func (c *Client) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	var budgets []model.Budget
	err := c.do(ctx, http.MethodGet, "/gastos/presupuesto/", nil, &budgets)
	return budgets, err
}

// GetBudget fetches one budget by id.
func (c *Client) GetBudget(ctx context.Context, id int) (model.Budget, error) {
	var b model.Budget
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/gastos/presupuesto/%d/", id), nil, &b)
	return b, err
}

// CreateBudget posts a new budget and returns the server record.
func (c *Client) CreateBudget(ctx context.Context, req BudgetRequest) (model.Budget, error) {
	var b model.Budget
	err := c.do(ctx, http.MethodPost, "/gastos/presupuesto/", req, &b)
	return b, err
}

// UpdateBudget replaces a budget's writable fields.
func (c *Client) UpdateBudget(ctx context.Context, id int, req BudgetRequest) (model.Budget, error) {
	var b model.Budget
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/gastos/presupuesto/%d/", id), req, &b)
	return b, err
}

// DeleteBudget removes a budget and all its expenses.
func (c *Client) DeleteBudget(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/gastos/presupuesto/%d/", id), nil, nil)
}

// GetSummary fetches the server-computed spend summary for a budget.
func (c *Client) GetSummary(ctx context.Context, id int) (model.Summary, error) {
	var s model.Summary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/gastos/presupuesto/%d/resumen/", id), nil, &s)
	return s, err
}
