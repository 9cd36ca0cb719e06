package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gastoctl/gastoctl/internal/cli"
	"github.com/gastoctl/gastoctl/internal/model"
	"github.com/gastoctl/gastoctl/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download budgets and expenses into the local snapshot",
	Long:  "Fetches every budget and its expenses and stores them in a local SQLite snapshot for `gastoctl offline`.",
	RunE:  runSync,
}

var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Show the last synced snapshot without touching the network",
	RunE:  runOffline,
}

func init() {
	rootCmd.AddCommand(syncCmd, offlineCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()
	sess := openSession()
	if err := requireSession(sess); err != nil {
		return err
	}
	client := newClient(cfg, sess)

	ctx := context.Background()
	budgets, err := client.ListBudgets(ctx)
	if err != nil {
		return friendly(err)
	}

	snap, err := store.Open(store.DefaultPath())
	if err != nil {
		return fmt.Errorf("abriendo snapshot: %w", err)
	}
	defer snap.Close()

	if err := snap.ReplaceBudgets(budgets, time.Now()); err != nil {
		return fmt.Errorf("guardando presupuestos: %w", err)
	}

	total := 0
	for _, b := range budgets {
		gastos, err := client.ListExpenses(ctx, b.ID)
		if err != nil {
			return friendly(err)
		}
		if err := snap.ReplaceExpenses(b.ID, gastos); err != nil {
			return fmt.Errorf("guardando gastos de %q: %w", b.Nombre, err)
		}
		total += len(gastos)
	}

	fmt.Printf("  Sincronizado: %d presupuestos, %d gastos.\n", len(budgets), total)
	return nil
}

func runOffline(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()

	snap, err := store.Open(store.DefaultPath())
	if err != nil {
		return fmt.Errorf("abriendo snapshot: %w", err)
	}
	defer snap.Close()

	budgets, syncedAt, err := snap.Budgets()
	if err != nil {
		return fmt.Errorf("leyendo snapshot: %w", err)
	}
	if len(budgets) == 0 {
		fmt.Println("  Snapshot vacío. Ejecuta `gastoctl sync` con conexión.")
		return nil
	}

	printBudgetTable(cfg.General.Currency, budgets)

	currency := cfg.General.Currency
	for _, b := range budgets {
		gastos, err := snap.Expenses(b.ID)
		if err != nil {
			return fmt.Errorf("leyendo gastos de %q: %w", b.Nombre, err)
		}
		if len(gastos) == 0 {
			continue
		}
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
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("%s (total %s)", b.Nombre, cli.FormatMoney(currency, model.TotalAmount(gastos))),
			Headers: []string{"ID", "Fecha", "Descripción", "Categoría", "Monto"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if !syncedAt.IsZero() {
		fmt.Printf("  Última sincronización: %s\n", syncedAt.Format("02 Jan 2006 15:04"))
	}
	return nil
}
