package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/nocturne-journal/nocturne/internal/cli/formatter"
)

// errNoText is returned when a command needs text and cannot prompt for it.
var errNoText = errors.New("--text is required when not running in a terminal")

func nocturneHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorIndigo).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorViolet)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorViolet)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorMoon)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateNotBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("please write something")
	}
	return nil
}

// resolveText returns flagValue when set, otherwise asks for it in a
// multi-line form on an interactive terminal.
func resolveText(app *App, flagValue, title, placeholder string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, nil
	}
	if !app.interactive() {
		return "", errNoText
	}

	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Placeholder(placeholder).
				CharLimit(4000).
				Value(&text).
				Validate(validateNotBlank),
		),
	).WithTheme(nocturneHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return text, nil
}

// withSpinner runs fn behind a spinner on interactive terminals and
// directly otherwise.
func withSpinner(app *App, title string, fn func() error) error {
	if !app.interactive() {
		return fn()
	}
	var fnErr error
	err := spinner.New().
		Title(" " + title).
		Style(lipgloss.NewStyle().Foreground(formatter.ColorViolet)).
		Action(func() { fnErr = fn() }).
		Run()
	if err != nil {
		return err
	}
	return fnErr
}
