package model1

import "github.com/derailed/tcell/v2"

var (
	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite

	// MarkColor selected row color
	MarkColor tcell.Color = tcell.ColorAqua

	// DisabledColor row disabled color
	DisabledColor tcell.Color = tcell.ColorGray

	// ErrColor row error color
	ErrColor tcell.Color = tcell.ColorRed

	// HeaderColor header color
	HeaderColor tcell.Color = tcell.ColorYellow

	// PendingColor loading color
	PendingColor tcell.Color = tcell.ColorDarkCyan
)

// Colorer picks a row color from its selection state and its disabled marker.
func Colorer(selected, disabled bool) tcell.Color {
	switch {
	case selected:
		return MarkColor
	case disabled:
		return DisabledColor
	default:
		return StdColor
	}
}
