package model

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// minBudgetTotal matches the server-side minimum for a new budget.
var minBudgetTotal = decimal.NewFromInt(100)

// FieldErrors maps form field names to validation messages. Validation runs
// before submission; a non-empty result blocks the request entirely.
type FieldErrors map[string]string

// Ok reports whether validation passed.
func (fe FieldErrors) Ok() bool { return len(fe) == 0 }

// ValidateLogin checks login credentials before they are sent.
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}
	switch {
	case email == "":
		errs["email"] = "el correo es requerido"
	case !emailRe.MatchString(email):
		errs["email"] = "el formato del correo no es válido"
	}
	switch {
	case password == "":
		errs["password"] = "la contraseña es requerida"
	case len(password) < 6:
		errs["password"] = "la contraseña debe tener al menos 6 caracteres"
	}
	return errs
}

// ValidateRegistration checks new-account fields before they are sent.
func ValidateRegistration(username, email, password string) FieldErrors {
	errs := FieldErrors{}
	switch {
	case username == "":
		errs["username"] = "el nombre de usuario es requerido"
	case strings.Contains(username, " "):
		errs["username"] = "el nombre de usuario no debe contener espacios"
	}
	switch {
	case email == "":
		errs["email"] = "el correo es requerido"
	case !emailRe.MatchString(email):
		errs["email"] = "el formato del correo no es válido"
	}
	switch {
	case password == "":
		errs["password"] = "la contraseña es requerida"
	case len(password) < 8:
		errs["password"] = "la contraseña debe tener al menos 8 caracteres"
	}
	return errs
}

// ValidateBudget checks budget form fields. Dates are ISO strings so the
// range check is a lexical comparison.
func ValidateBudget(nombre, fechaInicio, fechaFin string, montoTotal decimal.Decimal) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(nombre) == "" {
		errs["nombre_presupuesto"] = "el nombre del presupuesto no puede estar vacío"
	}
	if fechaInicio == "" {
		errs["fecha_inicio"] = "la fecha de inicio es requerida"
	}
	if fechaFin == "" {
		errs["fecha_fin"] = "la fecha de fin es requerida"
	} else if fechaInicio != "" && fechaFin < fechaInicio {
		errs["fecha_fin"] = "la fecha de fin no puede ser menor a la fecha de inicio"
	}
	if montoTotal.LessThan(minBudgetTotal) {
		errs["monto_total"] = "el monto mínimo del presupuesto debe ser de S/ 100"
	}
	return errs
}

// ValidateExpense checks expense form fields.
func ValidateExpense(descripcion string, monto decimal.Decimal, fecha string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(descripcion) == "" {
		errs["descripcion"] = "la descripción no puede estar vacía"
	}
	if !monto.IsPositive() {
		errs["monto"] = "el monto debe ser mayor que cero"
	}
	if fecha == "" {
		errs["fecha"] = "la fecha es requerida"
	}
	return errs
}
