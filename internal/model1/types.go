package model1

// NAValue marks a value that is not available.
const NAValue = "n/a"

// MissingValue marks an empty value.
const MissingValue = "--"

// DecoratorFunc decorates a string
type DecoratorFunc func(string) string

// Attrs tune how a column renders and sorts.
type Attrs struct {
	// Align is a tview alignment.
	Align int
	Kind  Kind

	// MaxWidth truncates cells, 0 is unbounded.
	MaxWidth  int
	Decorator DecoratorFunc
}

// Kind represents the value kind of a column, which drives ordering.
type Kind int

const (
	// KindText orders values naturally.
	KindText Kind = iota

	// KindNumber orders values numerically, ignoring grouping commas.
	KindNumber

	// KindDuration orders compact durations such as 3d4h.
	KindDuration

	// KindCapacity orders humanized sizes such as 1.2 GB.
	KindCapacity
)
