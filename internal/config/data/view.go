package data

import "slices"

// DefaultView is the default resource view when starting the app
const DefaultView = "user"

// View represents the active view state and the columns hidden per view.
type View struct {
	Active  string              `yaml:"active"`
	Columns map[string][]string `yaml:"hiddenColumns,omitempty"`
}

// NewView creates a View with default settings
func NewView() *View {
	return &View{
		Active:  DefaultView,
		Columns: make(map[string][]string),
	}
}

// Validate ensures the View has valid settings
func (v *View) Validate() {
	if v.Active == "" {
		v.Active = DefaultView
	}
	if v.Columns == nil {
		v.Columns = make(map[string][]string)
	}
}

// HiddenColumns returns the columns hidden in a view.
func (v *View) HiddenColumns(view string) []string {
	return slices.Clone(v.Columns[view])
}

// SetHiddenColumns records the columns hidden in a view.
func (v *View) SetHiddenColumns(view string, cols []string) {
	if v.Columns == nil {
		v.Columns = make(map[string][]string)
	}
	if len(cols) == 0 {
		delete(v.Columns, view)
		return
	}
	cc := slices.Clone(cols)
	slices.Sort(cc)
	v.Columns[view] = cc
}
