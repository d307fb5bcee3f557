// Package icon renders the status symbols printed by the CLI in the variant
// chosen by icons.variant.
package icon

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hoopreel/hoopreel/color"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Variant is a family of glyphs.
type Variant string

const (
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Plain   Variant = "plain"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Emoji, Nerd, Plain, Kaomoji, Squares}

// Variants lists the accepted values of icons.variant.
func Variants() []string {
	return lo.Map(variants, func(v Variant, _ int) string { return string(v) })
}

// Current is the configured variant. Unknown values render as Plain.
func Current() Variant {
	v := Variant(viper.GetString(key.IconsVariant))
	if !lo.Contains(variants, v) {
		return Plain
	}
	return v
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) in(v Variant) string {
	switch v {
	case Emoji:
		return d.emoji
	case Nerd:
		return d.nerd
	case Kaomoji:
		return d.kaomoji
	case Squares:
		return d.squares
	default:
		return d.plain
	}
}

// Get returns the glyph of i in the current variant.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.in(Current())
}

// outcome icons carry their own color.
var tints = map[Icon]lipgloss.Color{
	Success: color.Green,
	Fail:    color.Red,
	Warn:    color.Yellow,
}

// Render returns Get(i), colored when i reports an outcome.
func Render(i Icon) string {
	glyph := Get(i)
	if tint, ok := tints[i]; ok {
		return style.Fg(tint)(glyph)
	}
	return glyph
}
