// Package store provides a SQLite-backed offline snapshot of the last
// synced budgets and expenses. Views always hit the API directly; the
// snapshot only serves the explicit sync/offline flow.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/gastoctl/gastoctl/internal/config"
	"github.com/gastoctl/gastoctl/internal/model"
)

const syncedAtKey = "synced_at"

// Snapshot is the offline copy of server data.
type Snapshot struct {
	db *sql.DB
}

// DefaultPath returns the snapshot database location under the config dir.
func DefaultPath() string {
	return filepath.Join(config.Dir(), "snapshot.db")
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Snapshot, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Snapshot{db: db}, nil
}

// Close closes the snapshot database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// ReplaceBudgets swaps the stored budget list for the given one and stamps
// the sync time. Expenses of removed budgets cascade away.
func (s *Snapshot) ReplaceBudgets(budgets []model.Budget, syncedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM budgets"); err != nil {
		return err
	}

	for _, b := range budgets {
		_, err := tx.Exec(`INSERT INTO budgets
			(id, nombre, fecha_inicio, fecha_fin, monto_total, monto_restante)
			VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.Nombre, b.FechaInicio, b.FechaFin,
			b.MontoTotal.String(), b.MontoRestante.String(),
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO sync_meta (key, value) VALUES (?, ?)",
		syncedAtKey, syncedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceExpenses swaps the stored expenses of one budget.
func (s *Snapshot) ReplaceExpenses(budgetID int, gastos []model.Expense) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM expenses WHERE presupuesto_id = ?", budgetID); err != nil {
		return err
	}

	for _, g := range gastos {
		_, err := tx.Exec(`INSERT INTO expenses
			(id, presupuesto_id, descripcion, monto, fecha, categoria)
			VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, budgetID, g.Descripcion, g.Monto.String(), g.Fecha, g.Categoria,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Budgets returns the snapshotted budget list and when it was synced.
func (s *Snapshot) Budgets() ([]model.Budget, time.Time, error) {
	var syncedAt time.Time
	var stamp string
	err := s.db.QueryRow("SELECT value FROM sync_meta WHERE key = ?", syncedAtKey).Scan(&stamp)
	if err == nil {
		syncedAt, _ = time.Parse(time.RFC3339, stamp)
	} else if err != sql.ErrNoRows {
		return nil, time.Time{}, err
	}

	rows, err := s.db.Query(`SELECT id, nombre, fecha_inicio, fecha_fin, monto_total, monto_restante
		FROM budgets ORDER BY id`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var total, restante string
		if err := rows.Scan(&b.ID, &b.Nombre, &b.FechaInicio, &b.FechaFin, &total, &restante); err != nil {
			return nil, time.Time{}, err
		}
		if b.MontoTotal, err = decimal.NewFromString(total); err != nil {
			return nil, time.Time{}, fmt.Errorf("decoding monto_total: %w", err)
		}
		if b.MontoRestante, err = decimal.NewFromString(restante); err != nil {
			return nil, time.Time{}, fmt.Errorf("decoding monto_restante: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, syncedAt, rows.Err()
}

// Expenses returns the snapshotted expenses of one budget.
func (s *Snapshot) Expenses(budgetID int) ([]model.Expense, error) {
	rows, err := s.db.Query(`SELECT id, descripcion, monto, fecha, COALESCE(categoria, '')
		FROM expenses WHERE presupuesto_id = ? ORDER BY fecha, id`, budgetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var gastos []model.Expense
	for rows.Next() {
		g := model.Expense{Presupuesto: budgetID}
		var monto string
		if err := rows.Scan(&g.ID, &g.Descripcion, &monto, &g.Fecha, &g.Categoria); err != nil {
			return nil, err
		}
		if g.Monto, err = decimal.NewFromString(monto); err != nil {
			return nil, fmt.Errorf("decoding monto: %w", err)
		}
		gastos = append(gastos, g)
	}
	return gastos, rows.Err()
}
