package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDeskConfig(t *testing.T) {
	t.Run("Missing File Uses Defaults", func(t *testing.T) {
		cfg, err := LoadDeskConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8001/", cfg.PageURL)
		assert.Equal(t, "http://localhost:8001/merge.html", cfg.MergeViewURL)

		origin, err := cfg.Origin()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8001", origin)
	})

	t.Run("File Values Are Read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "desk.yaml")
		content := "page_url: http://recepcao.local/index.html\nlog_level: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadDeskConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		origin, err := cfg.Origin()
		require.NoError(t, err)
		assert.Equal(t, "http://recepcao.local:8001", origin)
	})

	t.Run("Environment Overrides File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "desk.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_origin: http://a:1\n"), 0o644))
		t.Setenv("SISREGIP_API_ORIGIN", "http://b:2/")

		cfg, err := LoadDeskConfig(path)
		require.NoError(t, err)

		origin, err := cfg.Origin()
		require.NoError(t, err)
		assert.Equal(t, "http://b:2", origin)
	})

	t.Run("Malformed File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "desk.yaml")
		require.NoError(t, os.WriteFile(path, []byte("page_url: [unclosed"), 0o644))

		_, err := LoadDeskConfig(path)
		assert.Error(t, err)
	})
}
