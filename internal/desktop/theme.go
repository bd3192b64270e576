package desktop

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/username/reminder/internal/settings"
)

var (
	colorNeon      = color.NRGBA{R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF}
	colorNeonDark  = color.NRGBA{R: 0x16, G: 0xA3, B: 0x4A, A: 0xFF}
	colorAmber     = color.NRGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}
	colorDangerRed = color.NRGBA{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF}
)

// reminderTheme is the app theme. A non-nil variant overrides the system
// light/dark preference.
type reminderTheme struct {
	variant *fyne.ThemeVariant
}

// NewTheme returns the theme for the user's color scheme preference
func NewTheme(t settings.Theme) fyne.Theme {
	switch t {
	case settings.ThemeLight:
		v := theme.VariantLight
		return &reminderTheme{variant: &v}
	case settings.ThemeDark:
		v := theme.VariantDark
		return &reminderTheme{variant: &v}
	default:
		return &reminderTheme{}
	}
}

// ApplyTheme sets the theme of a
func ApplyTheme(a fyne.App, t settings.Theme) {
	a.Settings().SetTheme(NewTheme(t))
}

func (t *reminderTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.variant != nil {
		variant = *t.variant
	}

	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		if variant == theme.VariantDark {
			return colorNeon
		}
		return colorNeonDark
	case theme.ColorNameWarning:
		return colorAmber
	case theme.ColorNameError:
		return colorDangerRed
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *reminderTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *reminderTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *reminderTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameHeadingText:
		return 22
	default:
		return theme.DefaultTheme().Size(name)
	}
}
