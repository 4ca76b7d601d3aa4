package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("Should default missing profile states", func(t *testing.T) {
		s := NewStore(t.TempDir())

		st, err := s.Load("prod")

		require.NoError(t, err)
		assert.Equal(t, "prod", st.Profile)
		assert.Equal(t, DefaultView, st.ActiveView())
		assert.False(t, st.IsReadOnly())
	})

	t.Run("Should round trip hidden columns", func(t *testing.T) {
		s := NewStore(t.TempDir())
		st, err := s.Load("prod")
		require.NoError(t, err)

		st.SetActiveView("node")
		st.SetHiddenColumns("node", []string{"speed_limit", "age"})
		st.SetReadOnly(true)
		require.NoError(t, s.Save(st))

		loaded, err := s.Load("prod")
		require.NoError(t, err)
		assert.Equal(t, "node", loaded.ActiveView())
		assert.Equal(t, []string{"age", "speed_limit"}, loaded.HiddenColumns("node"))
		assert.True(t, loaded.IsReadOnly())

		pp, err := s.Profiles()
		require.NoError(t, err)
		assert.Equal(t, []string{"prod"}, pp)

		require.NoError(t, s.Remove("prod"))
		pp, err = s.Profiles()
		require.NoError(t, err)
		assert.Empty(t, pp)
	})

	t.Run("Should surface broken states", func(t *testing.T) {
		s := NewStore(t.TempDir())
		path := s.StatePath("prod")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("view: [oops"), 0o600))

		_, err := s.Load("prod")
		assert.Error(t, err)
	})

	t.Run("Should list nothing without a root", func(t *testing.T) {
		pp, err := NewStore(filepath.Join(t.TempDir(), "nope")).Profiles()

		require.NoError(t, err)
		assert.Empty(t, pp)
	})

	t.Run("Should keep profile paths to one segment", func(t *testing.T) {
		assert.Equal(t, "/tmp/x/a-b", NewStore("/tmp/x").ProfilePath("a/b"))
	})
}

func TestSafeName(t *testing.T) {
	uu := map[string]struct {
		n, e string
	}{
		"plain":   {n: "user", e: "user"},
		"slash":   {n: "a/b", e: "a-b"},
		"runs":    {n: "https://x", e: "https-x"},
		"windows": {n: `c:\tmp`, e: "c-tmp"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, SafeName(u.n))
		})
	}
}

func TestYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	var out map[string]int

	ok, err := ReadYAML(path, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, WriteYAML(path, map[string]int{"pageSize": 20}))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	ok, err = ReadYAML(path, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 20, out["pageSize"])

	ee, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, ee, 1)
}

func TestView(t *testing.T) {
	v := NewView()

	v.SetHiddenColumns("user", []string{"balance"})
	assert.Equal(t, []string{"balance"}, v.HiddenColumns("user"))

	v.SetHiddenColumns("user", nil)
	assert.Empty(t, v.HiddenColumns("user"))
}

func TestGrid(t *testing.T) {
	g := Grid{PageSize: -1, ResetPageSize: 5000}
	g.Validate()

	assert.Equal(t, DefaultPageSize, g.PageSize)
	assert.Equal(t, DefaultResetPageSize, g.ResetPageSize)
	assert.True(t, NewGrid().DiscardStaleResponses)
}

func TestFeatureGates(t *testing.T) {
	f := NewFeatureGates()
	f.Merge(FeatureGates{S3Export: true})

	assert.True(t, f.S3Export)
	assert.False(t, f.ConfigEditor)
}
