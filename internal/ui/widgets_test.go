package ui

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyActions(t *testing.T) {
	noop := func(*tcell.EventKey) *tcell.EventKey { return nil }

	t.Run("Should list hints in key order", func(t *testing.T) {
		aa := NewKeyActions()
		aa.Bulk(KeyMap{
			KeyS:           NewKeyAction("Sort", noop, true),
			tcell.KeyCtrlR: NewKeyAction("Refresh", noop, true),
			KeySpace:       NewKeyAction("Mark", noop, false),
		})

		hh := aa.Hints()

		require.Len(t, hh, 3)
		assert.Equal(t, MenuHint{Mnemonic: "Ctrl-R", Description: "Refresh", Visible: true}, hh[0])
		assert.Equal(t, MenuHint{Mnemonic: "space", Description: "Mark"}, hh[1])
		assert.Equal(t, MenuHint{Mnemonic: "s", Description: "Sort", Visible: true}, hh[2])
	})

	t.Run("Should keep shared actions", func(t *testing.T) {
		aa := NewKeyActions()
		aa.Add(KeyQ, NewSharedKeyAction("Quit", noop, true))
		aa.Add(KeyE, NewKeyAction("Edit", noop, true))

		aa.ClearDynamic()

		_, ok := aa.Get(KeyE)
		assert.False(t, ok)
		_, ok = aa.Get(KeyQ)
		assert.True(t, ok)
	})

	t.Run("Should map runes to keys", func(t *testing.T) {
		assert.Equal(t, KeyShiftZ, AsKey(tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModNone)))
		assert.Equal(t, tcell.KeyEsc, AsKey(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))
	})
}

func TestPicker(t *testing.T) {
	var done, picked int
	p := NewPicker("Columns", []PickerItem{
		{Label: "ID", Disabled: true, Selected: func() { picked++ }},
		{Label: "EMAIL", Selected: func() { picked++ }},
	}, func() { done++ })

	assert.False(t, p.Select(0))
	assert.False(t, p.Select(5))
	assert.Equal(t, 0, done)

	assert.True(t, p.Select(1))
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, picked)
	assert.Equal(t, 2, p.GetItemCount())
}

func TestFilterForm(t *testing.T) {
	set := make(map[string]string)
	ff := []grid.FilterControl{
		{
			Key:         "enable",
			Placeholder: "Status",
			Options:     []grid.Option{{Label: "Show", Value: "false"}, {Label: "Hide", Value: "true"}},
			Value:       "true",
			Set:         func(v string) { set["enable"] = v },
		},
		{
			Key:         "search",
			Placeholder: "Search",
			Set:         func(v string) { set["search"] = v },
		},
	}

	t.Run("Should seed values", func(t *testing.T) {
		f := NewFilterForm(ff, nil)

		assert.Equal(t, map[string]string{"enable": "true", "search": ""}, f.Values())
		assert.Equal(t, 9, f.Height())
	})

	t.Run("Should apply changed values only", func(t *testing.T) {
		var closed bool
		f := NewFilterForm(ff, func() { closed = true })
		in, ok := f.GetFormItem(1).(*tview.InputField)
		require.True(t, ok)
		in.SetText("bob")

		f.Apply()

		assert.True(t, closed)
		assert.Equal(t, map[string]string{"search": "bob"}, set)
	})

	t.Run("Should clear set values", func(t *testing.T) {
		clear(set)
		f := NewFilterForm(ff, nil)
		dd, ok := f.GetFormItem(0).(*tview.DropDown)
		require.True(t, ok)
		dd.SetCurrentOption(0)
		assert.Equal(t, "", f.Values()["enable"])

		f.Clear()

		assert.Equal(t, map[string]string{"enable": ""}, set)
	})
}

func TestCmdBar(t *testing.T) {
	t.Run("Should suggest and run commands", func(t *testing.T) {
		var ran string
		c := NewCmdBar()
		c.SetCommands([]string{"user", "usr", "announcement", "user"})
		c.SetCommandFn(func(s string) { ran = s })

		assert.Equal(t, []string{"user", "usr"}, c.Suggest("us"))

		c.Activate(ModeCommand)
		for _, r := range "us" {
			c.keyboard(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		}
		c.keyboard(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
		assert.Equal(t, "user", c.GetText())

		c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
		assert.Equal(t, "user", ran)
		assert.False(t, c.IsActive())
	})

	t.Run("Should stream filters and clear on cancel", func(t *testing.T) {
		var filter string
		var cancelled bool
		c := NewCmdBar()
		c.SetFilterFn(func(s string) { filter = s })
		c.SetCancelFn(func() { cancelled = true })

		c.Activate(ModeFilter)
		c.keyboard(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
		assert.Equal(t, "a", filter)

		c.keyboard(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone))
		assert.True(t, cancelled)
		assert.Empty(t, c.FilterText())
	})
}

func TestParseKey(t *testing.T) {
	uu := map[string]struct {
		s  string
		k  tcell.Key
		ok bool
	}{
		"rune":  {s: "x", k: KeyX, ok: true},
		"shift": {s: "Shift-d", k: KeyShiftD, ok: true},
		"ctrl":  {s: "Ctrl-U", k: tcell.KeyCtrlU, ok: true},
		"space": {s: "space", k: KeySpace, ok: true},
		"bad":   {s: "Hyper-Q"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			key, ok := ParseKey(u.s)
			assert.Equal(t, u.ok, ok)
			if u.ok {
				assert.Equal(t, u.k, key)
			}
		})
	}
}
