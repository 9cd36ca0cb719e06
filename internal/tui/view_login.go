package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gastoctl/gastoctl/internal/model"
	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

type loginValues struct {
	email    string
	password string
}

type registerValues struct {
	username string
	email    string
	password string
}

// fieldError adapts a FieldErrors map to huh's per-field validation.
func fieldError(errs model.FieldErrors, field string) error {
	if msg, ok := errs[field]; ok {
		return errors.New(msg)
	}
	return nil
}

func newLoginForm(v *loginValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Correo electrónico").
				Placeholder("tu@email.com").
				Value(&v.email).
				Validate(func(s string) error {
					return fieldError(model.ValidateLogin(s, "placeholder"), "email")
				}),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(func(s string) error {
					return fieldError(model.ValidateLogin("a@b.co", s), "password")
				}),
		),
	)
}

func newRegisterForm(v *registerValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre de usuario").
				Value(&v.username).
				Validate(func(s string) error {
					return fieldError(model.ValidateRegistration(s, "a@b.co", "ochochars"), "username")
				}),
			huh.NewInput().
				Title("Correo electrónico").
				Placeholder("tu@email.com").
				Value(&v.email).
				Validate(func(s string) error {
					return fieldError(model.ValidateRegistration("user", s, "ochochars"), "email")
				}),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(func(s string) error {
					return fieldError(model.ValidateRegistration("user", "a@b.co", s), "password")
				}),
		),
	)
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+n":
			// Switch to registration.
			a.view = viewRegister
			a.regVals = registerValues{}
			a.registerForm = newRegisterForm(&a.regVals)
			a.notice = ""
			return a, a.registerForm.Init()
		case "esc":
			return a, tea.Quit
		}
	}

	if a.loginForm == nil || a.loggingIn {
		return a, nil
	}

	form, cmd := a.loginForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.loginForm = f
	}

	if a.loginForm.State == huh.StateCompleted {
		a.loggingIn = true
		a.loginErr = ""
		a.notice = ""
		return a, a.loginCmd(a.loginVals.email, a.loginVals.password)
	}
	if a.loginForm.State == huh.StateAborted {
		return a, tea.Quit
	}
	return a, cmd
}

func (a App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	a.loggingIn = false
	if !msg.ok {
		a.loginErr = msg.msg
		a.loginVals.password = ""
		a.loginForm = newLoginForm(&a.loginVals)
		return a, a.loginForm.Init()
	}
	a.loginErr = ""
	cmd := a.openDashboard()
	return a, cmd
}

func (a App) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.view = viewLogin
		a.loginForm = newLoginForm(&a.loginVals)
		return a, a.loginForm.Init()
	}

	if a.registerForm == nil || a.registering {
		return a, nil
	}

	form, cmd := a.registerForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.registerForm = f
	}

	if a.registerForm.State == huh.StateCompleted {
		a.registering = true
		return a, a.registerCmd(a.regVals.username, a.regVals.email, a.regVals.password)
	}
	if a.registerForm.State == huh.StateAborted {
		a.view = viewLogin
		a.loginForm = newLoginForm(&a.loginVals)
		return a, a.loginForm.Init()
	}
	return a, cmd
}

func (a App) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	a.registering = false
	if msg.err != nil {
		a.loginErr = userMessage(msg.err)
		a.regVals.password = ""
		a.registerForm = newRegisterForm(&a.regVals)
		return a, a.registerForm.Init()
	}

	// Registration does not log in; land on login with a confirmation.
	a.view = viewLogin
	a.notice = "Usuario registrado correctamente. Ahora puedes iniciar sesión."
	a.loginErr = ""
	a.loginVals = loginValues{email: a.regVals.email}
	a.loginForm = newLoginForm(&a.loginVals)
	return a, a.loginForm.Init()
}

// authCard centers a bordered card with a title, the form, and any
// notice or error lines beneath it.
func (a App) authCard(title, formView string) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Green)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(formView)
	b.WriteString("\n")
	if a.notice != "" {
		b.WriteString(noticeStyle.Render(a.notice))
		b.WriteString("\n")
	}
	if a.loginErr != "" {
		b.WriteString(errStyle.Render(a.loginErr))
		b.WriteString("\n")
	}
	if a.loggingIn || a.registering {
		b.WriteString(a.spinner.View())
		b.WriteString(hintStyle.Render(" enviando..."))
		b.WriteString("\n")
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) renderLogin() string {
	formView := ""
	if a.loginForm != nil {
		formView = a.loginForm.View()
	}
	hint := lipgloss.NewStyle().Foreground(theme.Active.TextDim).
		Render("ctrl+n regístrate · esc salir")
	return a.authCard("GastoControl · Iniciar sesión", formView+"\n"+hint)
}

func (a App) renderRegister() string {
	formView := ""
	if a.registerForm != nil {
		formView = a.registerForm.View()
	}
	hint := lipgloss.NewStyle().Foreground(theme.Active.TextDim).
		Render("esc volver al inicio de sesión")
	return a.authCard("GastoControl · Crear cuenta", formView+"\n"+hint)
}
