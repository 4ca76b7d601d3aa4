package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppanel/ppadmin/internal/api"
	"github.com/ppanel/ppadmin/internal/config/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewConfig(nil)
	cfg.PPAdmin.SetStore(data.NewStore(t.TempDir()))
	return cfg
}

func testProfiles() *api.Profiles {
	return api.NewProfiles(
		&api.Profile{Name: "default", Endpoint: "https://a.test"},
		&api.Profile{Name: "staging", Endpoint: "https://b.test"},
	)
}

func TestConfigLoad(t *testing.T) {
	t.Run("Should keep defaults without a file", func(t *testing.T) {
		cfg := newTestConfig(t)

		require.NoError(t, cfg.Load(filepath.Join(t.TempDir(), "none.yaml"), false))
		assert.Equal(t, DefaultView, cfg.PPAdmin.DefaultView)
		assert.Equal(t, data.DefaultPageSize, cfg.PPAdmin.Grid.PageSize)
	})

	t.Run("Should fail on a forced missing file", func(t *testing.T) {
		cfg := newTestConfig(t)

		assert.Error(t, cfg.Load(filepath.Join(t.TempDir(), "none.yaml"), true))
	})

	t.Run("Should load and clamp settings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		raw := `ppadmin:
  refreshRate: 0.1
  apiTimeout: nope
  defaultView: node
  grid:
    pageSize: 20
    resetPageOnFilterChange: true
  featureGates:
    s3Export: true
  export:
    bucket: dumps
`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
		cfg := newTestConfig(t)

		require.NoError(t, cfg.Load(path, true))

		p := cfg.PPAdmin
		assert.Equal(t, float32(DefaultRefreshRate), p.RefreshRate)
		to, err := p.GetAPITimeout()
		require.NoError(t, err)
		assert.Equal(t, DefaultAPITimeout, to)
		assert.Equal(t, "node", p.DefaultView)
		assert.Equal(t, data.DefaultExportFormat, p.Export.Format)
		assert.Equal(t, "dumps", p.Export.Bucket)

		opts := p.GridOptions()
		assert.Equal(t, 20, opts.InitialPageSize)
		assert.Equal(t, data.DefaultResetPageSize, opts.ResetPageSize)
		assert.True(t, opts.ResetPageOnFilterChange)
		assert.True(t, opts.DiscardStaleResponses)
	})

	t.Run("Should save on demand", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		cfg := newTestConfig(t)

		require.NoError(t, cfg.Save(path, false))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		cfg.PPAdmin.DefaultView = "subscribe"
		require.NoError(t, cfg.Save(path, true))

		other := newTestConfig(t)
		require.NoError(t, other.Load(path, true))
		assert.Equal(t, "subscribe", other.PPAdmin.DefaultView)
	})
}

func TestConfigRefine(t *testing.T) {
	t.Run("Should prefer the profile flag", func(t *testing.T) {
		cfg := newTestConfig(t)
		flags := NewFlags()
		*flags.Profile = "staging"
		*flags.ReadOnly = true

		p, err := cfg.Refine(flags, testProfiles())

		require.NoError(t, err)
		assert.Equal(t, "staging", p)
		assert.Equal(t, "staging", cfg.PPAdmin.ActiveProfile())
		assert.True(t, cfg.PPAdmin.IsReadOnly())
		assert.NotNil(t, cfg.Profiles())
	})

	t.Run("Should fall back to the configured profile", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.PPAdmin.DefaultProfile = "staging"

		p, err := cfg.Refine(NewFlags(), testProfiles())

		require.NoError(t, err)
		assert.Equal(t, "staging", p)
	})

	t.Run("Should use the credentials default", func(t *testing.T) {
		cfg := newTestConfig(t)

		p, err := cfg.Refine(nil, testProfiles())

		require.NoError(t, err)
		assert.Equal(t, "default", p)
	})

	t.Run("Should reject unknown profiles", func(t *testing.T) {
		cfg := newTestConfig(t)
		flags := NewFlags()
		*flags.Profile = "nope"

		_, err := cfg.Refine(flags, testProfiles())

		assert.ErrorIs(t, err, api.ErrNoProfile)
	})

	t.Run("Should let write flags win over read only", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.PPAdmin.ReadOnly = true
		flags := NewFlags()
		*flags.Write = true

		_, err := cfg.Refine(flags, testProfiles())

		require.NoError(t, err)
		assert.False(t, cfg.PPAdmin.IsReadOnly())
	})
}

func TestPPAdminProfileState(t *testing.T) {
	p := NewPPAdmin()
	p.SetStore(data.NewStore(t.TempDir()))

	ctx, err := p.ActivateProfile("default")
	require.NoError(t, err)
	ctx.FeatureGates.ConfigEditor = true
	ctx.SetHiddenColumns("user", []string{"balance"})
	require.NoError(t, p.SaveActive())

	_, err = p.ActivateProfile("default")
	require.NoError(t, err)
	assert.True(t, p.Gates().ConfigEditor)
	assert.False(t, p.Gates().S3Export)
	assert.Equal(t, []string{"balance"}, p.ActiveState().HiddenColumns("user"))

	_, err = p.ActivateProfile("")
	assert.Error(t, err)
}

func TestAPITimeout(t *testing.T) {
	p := NewPPAdmin()
	p.APITimeout = "5s"

	to, err := p.GetAPITimeout()

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, to)
}
