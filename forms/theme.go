package forms

import (
	"image/color"
	"strings"
)

// Theme holds the colors renderers and canvases draw with.
type Theme struct {
	Name string

	Background         color.RGBA
	Foreground         color.RGBA
	DisabledForeground color.RGBA
	ControlBackground  color.RGBA
	ControlHover       color.RGBA
	Border             color.RGBA
	DisabledBorder     color.RGBA
	Accent             color.RGBA
	AccentForeground   color.RGBA
	Highlight          color.RGBA
	HighlightText      color.RGBA
	FocusRectangle     color.RGBA
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) color.RGBA {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// LightTheme returns the default light palette.
func LightTheme() *Theme {
	return &Theme{
		Name:               "light",
		Background:         Hex(0xf0f0f0),
		Foreground:         Hex(0x262626),
		DisabledForeground: Hex(0xa0a0a0),
		ControlBackground:  Hex(0xffffff),
		ControlHover:       Hex(0xe5f1fb),
		Border:             Hex(0x767676),
		DisabledBorder:     Hex(0xcccccc),
		Accent:             Hex(0x0078d7),
		AccentForeground:   Hex(0xffffff),
		Highlight:          Hex(0xcce8ff),
		HighlightText:      Hex(0x000000),
		FocusRectangle:     Hex(0x000000),
	}
}

// DarkTheme returns the dark palette.
func DarkTheme() *Theme {
	return &Theme{
		Name:               "dark",
		Background:         Hex(0x202020),
		Foreground:         Hex(0xe6e6e6),
		DisabledForeground: Hex(0x6d6d6d),
		ControlBackground:  Hex(0x2d2d2d),
		ControlHover:       Hex(0x3a3a3a),
		Border:             Hex(0x9a9a9a),
		DisabledBorder:     Hex(0x4a4a4a),
		Accent:             Hex(0x4cc2ff),
		AccentForeground:   Hex(0x000000),
		Highlight:          Hex(0x0f4c75),
		HighlightText:      Hex(0xffffff),
		FocusRectangle:     Hex(0xffffff),
	}
}

// ThemeByName returns a built-in palette. Names are case insensitive.
func ThemeByName(name string) (*Theme, bool) {
	switch strings.ToLower(name) {
	case "", "light":
		return LightTheme(), true
	case "dark":
		return DarkTheme(), true
	}
	return nil, false
}

// TextColor picks the text color for enabled or disabled content.
func (t *Theme) TextColor(disabled bool) color.RGBA {
	if disabled {
		return t.DisabledForeground
	}
	return t.Foreground
}

// BorderColor picks the glyph border for enabled or disabled content.
func (t *Theme) BorderColor(disabled bool) color.RGBA {
	if disabled {
		return t.DisabledBorder
	}
	return t.Border
}

// MarkColor is the fill used for check marks and radio dots.
func (t *Theme) MarkColor(disabled bool) color.RGBA {
	if disabled {
		return t.DisabledForeground
	}
	return t.Accent
}
