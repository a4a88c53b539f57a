package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// Theme color and size names used by table cells and section headers.
const (
	ColorNameSectionHeader fyne.ThemeColorName = "sectionHeader"
	ColorNameSelectionGray fyne.ThemeColorName = "selectionGray"

	SizeNameRowHeight         fyne.ThemeSizeName = "rowHeight"
	SizeNameSubtitleRowHeight fyne.ThemeSizeName = "subtitleRowHeight"
	SizeNameHeaderHeight      fyne.ThemeSizeName = "sectionHeaderHeight"
)

// CustomTheme is the material-like theme of the section table browser.
type CustomTheme struct{}

var _ fyne.Theme = (*CustomTheme)(nil)

func (m CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantLight {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
		case theme.ColorNamePrimary, theme.ColorNameButton:
			return color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff}
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0xbb, G: 0xde, B: 0xfb, A: 0xff}
		case ColorNameSectionHeader:
			return color.NRGBA{R: 0xe3, G: 0xe3, B: 0xe8, A: 0xff}
		case ColorNameSelectionGray:
			return color.NRGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff}
		}
	} else {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
		case theme.ColorNamePrimary, theme.ColorNameButton:
			return color.NRGBA{R: 0x42, G: 0xa5, B: 0xf5, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff}
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
		case ColorNameSectionHeader:
			return color.NRGBA{R: 0x2d, G: 0x2d, B: 0x32, A: 0xff}
		case ColorNameSelectionGray:
			return color.NRGBA{R: 0x48, G: 0x48, B: 0x48, A: 0xff}
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 8
	case theme.SizeNameInlineIcon:
		return 24
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameSeparatorThickness:
		return 1
	case SizeNameRowHeight:
		return 44
	case SizeNameSubtitleRowHeight:
		return 64
	case SizeNameHeaderHeight:
		return 32
	}
	return theme.DefaultTheme().Size(name)
}

// selectionColorName maps a selection style onto a theme color. None has no
// highlight.
func selectionColorName(style sectiontable.SelectionStyle) (fyne.ThemeColorName, bool) {
	switch style {
	case sectiontable.SelectionNone:
		return "", false
	case sectiontable.SelectionGray:
		return ColorNameSelectionGray, true
	default:
		return theme.ColorNameSelection, true
	}
}
