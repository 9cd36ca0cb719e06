package model

import "testing"

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantField string // "" means valid
	}{
		{"valid", "ana@example.com", "secreta1", ""},
		{"empty email", "", "secreta1", "email"},
		{"bad email shape", "not-an-email", "secreta1", "email"},
		{"empty password", "ana@example.com", "", "password"},
		{"short password", "ana@example.com", "abc", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.email, tt.password)
			if tt.wantField == "" {
				if !errs.Ok() {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	errs := ValidateRegistration("ana maria", "ana@example.com", "contraseña8")
	if _, ok := errs["username"]; !ok {
		t.Fatalf("username with spaces accepted: %v", errs)
	}

	errs = ValidateRegistration("ana", "ana@example.com", "corta")
	if _, ok := errs["password"]; !ok {
		t.Fatalf("7-char password accepted: %v", errs)
	}

	if errs := ValidateRegistration("ana", "ana@example.com", "ochocar8"); !errs.Ok() {
		t.Fatalf("valid registration rejected: %v", errs)
	}
}

func TestValidateBudget(t *testing.T) {
	if errs := ValidateBudget("Casa", "2026-01-01", "2026-01-31", dec(t, "1500")); !errs.Ok() {
		t.Fatalf("valid budget rejected: %v", errs)
	}

	errs := ValidateBudget("  ", "2026-01-01", "2026-01-31", dec(t, "1500"))
	if _, ok := errs["nombre_presupuesto"]; !ok {
		t.Fatalf("blank name accepted: %v", errs)
	}

	errs = ValidateBudget("Casa", "2026-02-01", "2026-01-01", dec(t, "1500"))
	if _, ok := errs["fecha_fin"]; !ok {
		t.Fatalf("inverted date range accepted: %v", errs)
	}

	errs = ValidateBudget("Casa", "2026-01-01", "2026-01-31", dec(t, "99.99"))
	if _, ok := errs["monto_total"]; !ok {
		t.Fatalf("below-minimum total accepted: %v", errs)
	}
}

func TestValidateExpense(t *testing.T) {
	if errs := ValidateExpense("taxi", dec(t, "12.50"), "2026-01-15"); !errs.Ok() {
		t.Fatalf("valid expense rejected: %v", errs)
	}

	errs := ValidateExpense("taxi", dec(t, "0"), "2026-01-15")
	if _, ok := errs["monto"]; !ok {
		t.Fatalf("zero amount accepted: %v", errs)
	}

	errs = ValidateExpense("", dec(t, "5"), "2026-01-15")
	if _, ok := errs["descripcion"]; !ok {
		t.Fatalf("empty description accepted: %v", errs)
	}
}
