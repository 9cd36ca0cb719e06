package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS budgets (
    id                 INTEGER PRIMARY KEY,
    nombre             TEXT NOT NULL,
    fecha_inicio       TEXT NOT NULL,
    fecha_fin          TEXT NOT NULL,
    monto_total        TEXT NOT NULL,
    monto_restante     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id                 INTEGER PRIMARY KEY,
    presupuesto_id     INTEGER NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
    descripcion        TEXT NOT NULL,
    monto              TEXT NOT NULL,
    fecha              TEXT NOT NULL,
    categoria          TEXT
);

CREATE TABLE IF NOT EXISTS sync_meta (
    key                TEXT PRIMARY KEY,
    value              TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_budget ON expenses(presupuesto_id);
`
