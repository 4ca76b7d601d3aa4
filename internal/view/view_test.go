package view

import (
	"testing"

	"github.com/ppanel/ppadmin/internal/config"
	"github.com/ppanel/ppadmin/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpSections(t *testing.T) {
	hints := ui.MenuHints{
		{Mnemonic: "d", Description: "Describe", Visible: true},
		{},
		{Mnemonic: "x", Description: "Export", Visible: true},
	}

	ss := HelpSections(hints, config.NewAliases(), config.NewHotKeys())

	require.Len(t, ss, 3)
	assert.Equal(t, "RESOURCES", ss[0].Title)
	assert.Equal(t, HelpBind{Key: ":ann", Desc: "Announcements"}, ss[0].Binds[0])
	assert.Contains(t, ss[0].Binds, HelpBind{Key: ":u", Desc: "Users"})
	assert.Contains(t, ss[0].Binds, HelpBind{Key: ":config", Desc: "System Config"})
	assert.Equal(t, "GENERAL", ss[1].Title)
	assert.Equal(t, []HelpBind{{"<d>", "Describe"}, {"<x>", "Export"}}, ss[2].Binds)
}

func TestRenderRecord(t *testing.T) {
	t.Run("Should color yaml keys and values", func(t *testing.T) {
		out := RenderRecord(map[string]any{"enable": true, "name": "tokyo", "port": 443}, FormatYAML)

		assert.Contains(t, out, "[aqua::]enable:[-::] [green::]true[-::]")
		assert.Contains(t, out, "[aqua::]name:[-::] tokyo")
		assert.Contains(t, out, "[aqua::]port:[-::] [fuchsia::]443[-::]")
	})

	t.Run("Should escape json", func(t *testing.T) {
		out := RenderRecord(map[string]any{"note": "[red]x[white]"}, FormatJSON)

		assert.Contains(t, out, `"note": "[red[]x[white[]"`)
	})

	t.Run("Should flag missing records", func(t *testing.T) {
		assert.Contains(t, RenderRecord(nil, FormatYAML), "No data available")
	})
}

func TestColorizeValue(t *testing.T) {
	uu := map[string]struct {
		v, e string
	}{
		"true":   {v: "true", e: "[green::]true[-::]"},
		"false":  {v: "false", e: "[red::]false[-::]"},
		"null":   {v: "null", e: "[gray::]null[-::]"},
		"number": {v: "1.5", e: "[fuchsia::]1.5[-::]"},
		"text":   {v: "tokyo", e: "tokyo"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, colorizeValue(u.v))
		})
	}
}

func TestProfileSwitcher(t *testing.T) {
	app := NewApp(nil, "test")
	p := NewProfileSwitcher(app)
	p.rows = []ProfileRow{
		{Name: "prod", Endpoint: "https://api.example.com", Active: true},
		{Name: "staging"},
	}

	assert.Len(t, p.Rows(), 2)
	p.SetFilter("STA")
	require.Len(t, p.Rows(), 1)
	assert.Equal(t, "staging", p.Rows()[0].Name)

	name, ok := p.selected()
	require.True(t, ok)
	assert.Equal(t, "staging", name)
	assert.Equal(t, "n/a", p.GetCell(1, 2).Text)
}

func TestProfileSwitcherNoFactory(t *testing.T) {
	p := NewProfileSwitcher(NewApp(nil, "test"))
	p.Start()

	assert.Empty(t, p.Rows())
	_, ok := p.selected()
	assert.False(t, ok)
}

func TestFlash(t *testing.T) {
	f := NewFlash(nil)

	f.Info("Deleted user 3")
	assert.Contains(t, f.GetText(true), "Deleted user 3")

	f.Errf("boom %d", 1)
	assert.Contains(t, f.GetText(true), "boom 1")

	f.Clear()
	assert.Empty(t, f.GetText(true))
}

func TestExportResult(t *testing.T) {
	assert.Equal(t, "a.csv and s3://b/a.csv", ExportResult{Path: "a.csv", URL: "s3://b/a.csv"}.String())
	assert.Equal(t, "s3://b/a.csv", ExportResult{URL: "s3://b/a.csv"}.String())
}
