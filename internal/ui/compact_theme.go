package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme keeps rows dense so many transfers fit on screen and tints
// progress bars with the status palette.
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

var (
	colorDone     = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	colorFailed   = color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	colorWarn     = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	colorProgress = color.NRGBA{R: 25, G: 118, B: 210, A: 255}
)

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return colorDone
	case theme.ColorNameError:
		return colorFailed
	case theme.ColorNameWarning:
		return colorWarn
	case theme.ColorNamePrimary:
		return colorProgress
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 22, G: 22, B: 24, A: 255}
		}
		return color.NRGBA{R: 248, G: 248, B: 250, A: 255}
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	}
	return theme.DefaultTheme().Size(name)
}
