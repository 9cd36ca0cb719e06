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
	flagBudgetName   string
	flagBudgetStart  string
	flagBudgetEnd    string
	flagBudgetAmount string
)

var budgetsCmd = &cobra.Command{
	Use:     "budgets",
	Aliases: []string{"presupuestos"},
	Short:   "Manage budgets",
	RunE:    runBudgetsList,
}

var budgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budgets with spend progress",
	RunE:  runBudgetsList,
}

var budgetsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one budget with its server-computed summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsShow,
}

var budgetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a budget",
	RunE:  runBudgetsCreate,
}

var budgetsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a budget's name, dates, or total",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsEdit,
}

var budgetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a budget and all its expenses",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsDelete,
}

func init() {
	for _, c := range []*cobra.Command{budgetsCreateCmd, budgetsEditCmd} {
		c.Flags().StringVar(&flagBudgetName, "name", "", "Budget name")
		c.Flags().StringVar(&flagBudgetStart, "start", "", "Start date (YYYY-MM-DD)")
		c.Flags().StringVar(&flagBudgetEnd, "end", "", "End date (YYYY-MM-DD)")
		c.Flags().StringVar(&flagBudgetAmount, "amount", "", "Total amount")
	}
	budgetsCmd.AddCommand(budgetsListCmd, budgetsShowCmd, budgetsCreateCmd, budgetsEditCmd, budgetsDeleteCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgetsList(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	budgets, err := client.ListBudgets(context.Background())
	if err != nil {
		return friendly(err)
	}
	if len(budgets) == 0 {
		fmt.Println("  No tienes presupuestos aún. Crea uno con `gastoctl budgets create`.")
		return nil
	}

	printBudgetTable(cfg.General.Currency, budgets)
	return nil
}

func printBudgetTable(currency string, budgets []model.Budget) {
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		pct := b.SpentPercent()
		severity := model.SeverityFor(pct)
		rows = append(rows, []string{
			strconv.Itoa(b.ID),
			b.Nombre,
			cli.FormatDateRange(b.FechaInicio, b.FechaFin),
			cli.FormatMoney(currency, b.MontoTotal),
			cli.FormatMoney(currency, b.Spent()),
			cli.FormatMoney(currency, b.MontoRestante),
			cli.SeverityStyle(severity).Render(cli.FormatPercent(pct)),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Presupuestos",
		Headers: []string{"ID", "Nombre", "Período", "Total", "Gastado", "Disponible", "Uso"},
		Rows:    rows,
	}))
	fmt.Println()
}

func runBudgetsShow(_ *cobra.Command, args []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("id inválido: %q", args[0])
	}

	ctx := context.Background()
	budget, err := client.GetBudget(ctx, id)
	if err != nil {
		return friendly(err)
	}
	summary, err := client.GetSummary(ctx, id)
	if err != nil {
		return friendly(err)
	}

	currency := cfg.General.Currency
	pct := summary.SpentPercent()
	severity := model.SeverityFor(pct)

	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Presupuesto", budget.Nombre},
		{"Período", cli.FormatDateRange(budget.FechaInicio, budget.FechaFin)},
		{"Total", cli.FormatMoney(currency, summary.Total)},
		{"Gastado", cli.FormatMoney(currency, summary.Gastado)},
		{"Disponible", cli.FormatMoney(currency, summary.Restante)},
		{"Uso", cli.SeverityStyle(severity).Render(cli.FormatPercent(pct))},
	}))

	if series := summary.DailySeries(); len(series) > 0 {
		rows := make([][]string, 0, len(series))
		for _, d := range series {
			rows = append(rows, []string{cli.FormatDate(d.Fecha), cli.FormatMoney(currency, d.Monto)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Gastos por día",
			Headers: []string{"Fecha", "Monto"},
			Rows:    rows,
		}))
	}
	fmt.Println()
	return nil
}

// budgetRequestFromFlags builds the request from flags, prompting for any
// field left unset. base carries current values when editing.
func budgetRequestFromFlags(base api.BudgetRequest) (api.BudgetRequest, error) {
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
	if flagBudgetName != "" {
		req.Nombre = flagBudgetName
	} else {
		req.Nombre = prompt("Nombre", base.Nombre)
	}
	if flagBudgetStart != "" {
		req.FechaInicio = flagBudgetStart
	} else {
		req.FechaInicio = prompt("Fecha de inicio (YYYY-MM-DD)", base.FechaInicio)
	}
	if flagBudgetEnd != "" {
		req.FechaFin = flagBudgetEnd
	} else {
		req.FechaFin = prompt("Fecha de fin (YYYY-MM-DD)", base.FechaFin)
	}

	amount := flagBudgetAmount
	if amount == "" {
		current := ""
		if !base.MontoTotal.IsZero() {
			current = base.MontoTotal.StringFixed(2)
		}
		amount = prompt("Monto total", current)
	}
	monto, err := decimal.NewFromString(strings.ReplaceAll(amount, ",", ""))
	if err != nil {
		return req, fmt.Errorf("monto inválido: %q", amount)
	}
	req.MontoTotal = monto

	if errs := model.ValidateBudget(req.Nombre, req.FechaInicio, req.FechaFin, req.MontoTotal); !errs.Ok() {
		for _, field := range []string{"nombre_presupuesto", "fecha_inicio", "fecha_fin", "monto_total"} {
			if msg, ok := errs[field]; ok {
				return req, errors.New(msg)
			}
		}
	}
	return req, nil
}

func runBudgetsCreate(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	req, err := budgetRequestFromFlags(api.BudgetRequest{})
	if err != nil {
		return err
	}

	budget, err := client.CreateBudget(context.Background(), req)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("  Presupuesto %q creado (id %d).\n", budget.Nombre, budget.ID)
	return nil
}

func runBudgetsEdit(_ *cobra.Command, args []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("id inválido: %q", args[0])
	}

	ctx := context.Background()
	current, err := client.GetBudget(ctx, id)
	if err != nil {
		return friendly(err)
	}

	req, err := budgetRequestFromFlags(api.BudgetRequest{
		Nombre:      current.Nombre,
		FechaInicio: current.FechaInicio,
		FechaFin:    current.FechaFin,
		MontoTotal:  current.MontoTotal,
	})
	if err != nil {
		return err
	}

	budget, err := client.UpdateBudget(ctx, id, req)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("  Presupuesto %q actualizado.\n", budget.Nombre)
	return nil
}

func runBudgetsDelete(_ *cobra.Command, args []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("id inválido: %q", args[0])
	}

	if !flagYes && !confirm(fmt.Sprintf("¿Eliminar el presupuesto %d y todos sus gastos?", id)) {
		fmt.Println("  Cancelado.")
		return nil
	}

	if err := client.DeleteBudget(context.Background(), id); err != nil {
		return friendly(err)
	}
	fmt.Println("  Presupuesto eliminado.")
	return nil
}

func confirm(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("  %s [y/N] > ", question)
	line, _ := reader.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "s" || line == "si" || line == "sí"
}
