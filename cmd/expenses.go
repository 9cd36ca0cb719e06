package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gastoctl/gastoctl/internal/api"
	"github.com/gastoctl/gastoctl/internal/cli"
	"github.com/gastoctl/gastoctl/internal/model"
)

var (
	flagExpBudget   int
	flagExpDesc     string
	flagExpAmount   string
	flagExpDate     string
	flagExpCategory string
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"gastos"},
	Short:   "Manage expenses within a budget",
	RunE:    runExpensesList,
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a budget's expenses",
	RunE:  runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new expense",
	RunE:  runExpensesAdd,
}

var expensesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesEdit,
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesDelete,
}

func init() {
	expensesCmd.PersistentFlags().IntVarP(&flagExpBudget, "budget", "b", 0, "Budget id (required)")
	for _, c := range []*cobra.Command{expensesAddCmd, expensesEditCmd} {
		c.Flags().StringVar(&flagExpDesc, "desc", "", "Description")
		c.Flags().StringVar(&flagExpAmount, "amount", "", "Amount")
		c.Flags().StringVar(&flagExpDate, "date", "", "Date (YYYY-MM-DD)")
		c.Flags().StringVar(&flagExpCategory, "category", "", "Category")
	}
	expensesCmd.AddCommand(expensesListCmd, expensesAddCmd, expensesEditCmd, expensesDeleteCmd)
	rootCmd.AddCommand(expensesCmd)
}

func requireBudgetFlag() error {
	if flagExpBudget == 0 {
		return errors.New("indica el presupuesto con --budget <id>")
	}
	return nil
}

func runExpensesList(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := requireBudgetFlag(); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	gastos, err := client.ListExpenses(context.Background(), flagExpBudget)
	if err != nil {
		return friendly(err)
	}
	if len(gastos) == 0 {
		fmt.Println("  Sin gastos registrados en este presupuesto.")
		return nil
	}

	currency := cfg.General.Currency
	rows := make([][]string, 0, len(gastos))
	for _, g := range gastos {
		categoria := g.Categoria
		if categoria == "" {
			categoria = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(g.ID),
			cli.FormatDate(g.Fecha),
			g.Descripcion,
			categoria,
			cli.FormatMoney(currency, g.Monto),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Gastos del presupuesto %d", flagExpBudget),
		Headers: []string{"ID", "Fecha", "Descripción", "Categoría", "Monto"},
		Rows:    rows,
	}))
	fmt.Printf("\n  Total listado: %s\n\n", cli.FormatMoney(currency, model.TotalAmount(gastos)))
	return nil
}

func expenseRequestFromFlags(base api.ExpenseRequest) (api.ExpenseRequest, error) {
	reader := bufio.NewReader(os.Stdin)
	prompt := func(label, current string) string {
		if current != "" {
			fmt.Printf("  %s [%s] > ", label, current)
		} else {
			fmt.Printf("  %s > ", label)
		}
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return current
		}
		return line
	}

	req := base
	if flagExpDesc != "" {
		req.Descripcion = flagExpDesc
	} else {
		req.Descripcion = prompt("Descripción", base.Descripcion)
	}

	amount := flagExpAmount
	if amount == "" {
		current := ""
		if !base.Monto.IsZero() {
			current = base.Monto.StringFixed(2)
		}
		amount = prompt("Monto", current)
	}
	monto, err := decimal.NewFromString(strings.ReplaceAll(amount, ",", ""))
	if err != nil {
		return req, fmt.Errorf("monto inválido: %q", amount)
	}
	req.Monto = monto

	if flagExpDate != "" {
		req.Fecha = flagExpDate
	} else {
		req.Fecha = prompt("Fecha (YYYY-MM-DD)", base.Fecha)
	}
	if flagExpCategory != "" {
		req.Categoria = flagExpCategory
	}

	if errs := model.ValidateExpense(req.Descripcion, req.Monto, req.Fecha); !errs.Ok() {
		for _, field := range []string{"descripcion", "monto", "fecha"} {
			if msg, ok := errs[field]; ok {
				return req, errors.New(msg)
			}
		}
	}
	return req, nil
}

func runExpensesAdd(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := requireBudgetFlag(); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	req, err := expenseRequestFromFlags(api.ExpenseRequest{})
	if err != nil {
		return err
	}

	gasto, err := client.CreateExpense(context.Background(), flagExpBudget, req)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("  Gasto %q registrado (%s).\n", gasto.Descripcion, cli.FormatMoney(cfg.General.Currency, gasto.Monto))
	return nil
}

func runExpensesEdit(_ *cobra.Command, args []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := requireBudgetFlag(); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("id inválido: %q", args[0])
	}

	// No single-expense endpoint; resolve current values from the list.
	ctx := context.Background()
	gastos, err := client.ListExpenses(ctx, flagExpBudget)
	if err != nil {
		return friendly(err)
	}
	current, ok := model.FindByID(gastos, id)
	if !ok {
		return fmt.Errorf("el gasto %d no existe en el presupuesto %d", id, flagExpBudget)
	}

	req, err := expenseRequestFromFlags(api.ExpenseRequest{
		Descripcion: current.Descripcion,
		Monto:       current.Monto,
		Fecha:       current.Fecha,
		Categoria:   current.Categoria,
	})
	if err != nil {
		return err
	}

	gasto, err := client.UpdateExpense(ctx, flagExpBudget, id, req)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("  Gasto %q actualizado.\n", gasto.Descripcion)
	return nil
}

func runExpensesDelete(_ *cobra.Command, args []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := requireBudgetFlag(); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("id inválido: %q", args[0])
	}

	if !flagYes && !confirm(fmt.Sprintf("¿Eliminar el gasto %d?", id)) {
		fmt.Println("  Cancelado.")
		return nil
	}

	if err := client.DeleteExpense(context.Background(), flagExpBudget, id); err != nil {
		return friendly(err)
	}
	fmt.Println("  Gasto eliminado.")
	return nil
}
