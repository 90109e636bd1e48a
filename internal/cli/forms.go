package cli

import (
	"strings"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tempoHuhTheme returns a huh theme using the formatter palette.
func tempoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// paletteColors are offered by the activity form.
var paletteColors = []struct {
	Name  string
	Color domain.Color
}{
	{"Blue", "#83a598"},
	{"Green", "#8ec07c"},
	{"Yellow", "#fabd2f"},
	{"Orange", "#fe8019"},
	{"Red", "#fb4934"},
	{"Purple", "#d3869b"},
	{"Aqua", "#689d6a"},
	{"Gray", "#a89984"},
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &domain.ValidationError{Field: field, Reason: "must not be empty"}
		}
		return nil
	}
}

// activityForm collects a name and palette color for a new activity.
func activityForm(name, color *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(paletteColors))
	for _, p := range paletteColors {
		label := formatter.Swatch(p.Color) + " " + p.Name
		options = append(options, huh.NewOption(label, string(p.Color)))
	}
	if *color == "" {
		*color = string(domain.DefaultColor)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity name").
				Placeholder("Deep work").
				Value(name).
				Validate(validateRequired("activity name")),
			huh.NewSelect[string]().
				Title("Color").
				Options(options...).
				Value(color),
		),
	).WithTheme(tempoHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title, description string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).WithTheme(tempoHuhTheme()).WithShowHelp(false)
}
