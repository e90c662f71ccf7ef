package cli_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/silo/internal/cli"
	"github.com/aretw0/silo/pkg/adapters/file"
	"github.com/aretw0/silo/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := cli.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, cli.Config{}, cfg)
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
location: ./data
collection: web-sessions
ttl: 24h
autosave: false
store:
  driver: redis
  options:
    address: redis.internal:6379
    db: 2
    prefix: "app:"
`)

	cfg, err := cli.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Location)
	assert.Equal(t, "web-sessions", cfg.Collection)
	require.NotNil(t, cfg.Autosave)
	assert.False(t, *cfg.Autosave)
	assert.Equal(t, "redis", cfg.Store.Driver)

	ttl, err := cfg.ParseTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestParseTTL(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"", 0, true},
		{"0", 0, true},
		{"90s", 90 * time.Second, true},
		{"15m", 15 * time.Minute, true},
		{"-5m", 0, false},
		{"yesterday", 0, false},
	} {
		ttl, err := cli.Config{TTL: tc.in}.ParseTTL()
		if !tc.ok {
			assert.Error(t, err, "ttl=%q", tc.in)
			continue
		}
		require.NoError(t, err, "ttl=%q", tc.in)
		assert.Equal(t, tc.want, ttl, "ttl=%q", tc.in)
	}
}

func TestBuildStore(t *testing.T) {
	t.Run("defaults to file driver at location", func(t *testing.T) {
		cfg := cli.Config{Location: "./data"}
		store, err := cfg.BuildStore()
		require.NoError(t, err)

		fs, ok := store.(*file.Store)
		require.True(t, ok)
		assert.Equal(t, "./data", fs.BasePath)
	})

	t.Run("file driver path option wins over location", func(t *testing.T) {
		cfg := cli.Config{
			Location: "./data",
			Store: cli.StoreConfig{
				Driver:  "file",
				Options: map[string]any{"path": "/var/lib/silo"},
			},
		}
		store, err := cfg.BuildStore()
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/silo", store.(*file.Store).BasePath)
	})

	t.Run("memory driver", func(t *testing.T) {
		cfg := cli.Config{Store: cli.StoreConfig{Driver: "memory"}}
		store, err := cfg.BuildStore()
		require.NoError(t, err)
		_, ok := store.(*memory.Store)
		assert.True(t, ok)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := cli.Config{Store: cli.StoreConfig{Driver: "tape"}}
		_, err := cfg.BuildStore()
		assert.Error(t, err)
	})

	t.Run("bad driver options", func(t *testing.T) {
		cfg := cli.Config{Store: cli.StoreConfig{
			Driver:  "redis",
			Options: map[string]any{"db": "not-a-number"},
		}}
		_, err := cfg.BuildStore()
		assert.Error(t, err)
	})
}
