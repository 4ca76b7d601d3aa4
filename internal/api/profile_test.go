package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const credentials = `
[default]
endpoint = https://panel.example.com
email    = admin@example.com
password = secret

[staging]
endpoint = http://localhost:8080
token    = abc
timeout  = 5s

[edge10]
endpoint = http://edge10

[edge2]
endpoint = http://edge2
`

func writeCredentials(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadProfiles(t *testing.T) {
	t.Run("Should load every section", func(t *testing.T) {
		pp, err := LoadProfiles(writeCredentials(t, credentials))
		require.NoError(t, err)

		assert.Equal(t, []string{"default", "edge2", "edge10", "staging"}, pp.Names())
		assert.Equal(t, DefaultProfile, pp.Active())

		p, err := pp.Get("staging")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", p.Endpoint)
		assert.Equal(t, "abc", p.Token)
		assert.Equal(t, 5*time.Second, p.Timeout)
		assert.False(t, p.CanLogin())

		p, err = pp.Get("default")
		require.NoError(t, err)
		assert.True(t, p.CanLogin())
		assert.Equal(t, defaultTimeout, p.Timeout)
	})

	t.Run("Should fail on a missing endpoint", func(t *testing.T) {
		_, err := LoadProfiles(writeCredentials(t, "[broken]\nemail = a@b.c\n"))

		assert.ErrorContains(t, err, "missing endpoint")
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := LoadProfiles(filepath.Join(t.TempDir(), "nope"))

		assert.Error(t, err)
	})

	t.Run("Should refuse unknown profiles", func(t *testing.T) {
		pp := NewProfiles(&Profile{Name: "a", Endpoint: "http://a"})

		assert.ErrorIs(t, pp.SetActive("b"), ErrNoProfile)
		_, err := pp.Get("b")
		assert.ErrorIs(t, err, ErrNoProfile)
		assert.Equal(t, "a", pp.Active())
	})
}
