// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/grid"
)

const (
	allOption        = "All"
	filterFieldWidth = 32
)

// FilterForm edits the grid filters. Selector params render as drop downs,
// the others as text inputs.
type FilterForm struct {
	*tview.Form

	filters []grid.FilterControl
	doneFn  func()
}

// NewFilterForm returns a form seeded with the current filter values.
func NewFilterForm(ff []grid.FilterControl, done func()) *FilterForm {
	f := FilterForm{
		Form:    tview.NewForm(),
		filters: ff,
		doneFn:  done,
	}
	f.SetBorder(true)
	f.SetTitle(" Filters ")
	f.SetBorderColor(tcell.ColorDarkCyan)
	f.SetFieldBackgroundColor(tcell.ColorDarkSlateGray)
	f.SetButtonBackgroundColor(tcell.ColorDarkCyan)

	for _, fc := range ff {
		label := fc.Placeholder
		if label == "" {
			label = fc.Key
		}
		if fc.IsSelector() {
			f.AddDropDown(label, optionLabels(fc.Options), optionIndex(fc), nil)
			continue
		}
		f.AddInputField(label, fc.Value, filterFieldWidth, nil, nil)
	}
	f.AddButton("Apply", f.Apply)
	f.AddButton("Clear", f.Clear)
	f.AddButton("Cancel", f.close)
	f.SetCancelFunc(f.close)

	return &f
}

// Height returns the rows the form needs.
func (f *FilterForm) Height() int {
	return len(f.filters)*2 + 5
}

// Values returns the form values keyed by filter key.
func (f *FilterForm) Values() map[string]string {
	vv := make(map[string]string, len(f.filters))
	for i, fc := range f.filters {
		switch item := f.GetFormItem(i).(type) {
		case *tview.DropDown:
			idx, _ := item.GetCurrentOption()
			vv[fc.Key] = ""
			if idx > 0 && idx <= len(fc.Options) {
				vv[fc.Key] = fc.Options[idx-1].Value
			}
		case *tview.InputField:
			vv[fc.Key] = item.GetText()
		}
	}

	return vv
}

// Apply sets every changed filter.
func (f *FilterForm) Apply() {
	vv := f.Values()
	f.close()
	for _, fc := range f.filters {
		if v := vv[fc.Key]; v != fc.Value && fc.Set != nil {
			fc.Set(v)
		}
	}
}

// Clear drops every active filter.
func (f *FilterForm) Clear() {
	f.close()
	for _, fc := range f.filters {
		if fc.Value != "" && fc.Set != nil {
			fc.Set("")
		}
	}
}

func (f *FilterForm) close() {
	if f.doneFn != nil {
		f.doneFn()
	}
}

func optionLabels(oo []grid.Option) []string {
	ll := make([]string, 0, len(oo)+1)
	ll = append(ll, allOption)
	for _, o := range oo {
		ll = append(ll, o.Label)
	}
	return ll
}

func optionIndex(fc grid.FilterControl) int {
	for i, o := range fc.Options {
		if o.Value == fc.Value {
			return i + 1
		}
	}
	return 0
}
