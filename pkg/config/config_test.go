package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicitly named file must exist")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.Drive.Type)
	assert.Equal(t, "drive@localhost", cfg.Drive.Owner)
	assert.Equal(t, "memory", cfg.Content.Type)
	assert.Equal(t, "memory", cfg.Session.Type)
	assert.Equal(t, "https://drive.example.com", cfg.Shell.BaseURL)
	assert.Equal(t, 50, cfg.Shell.TreeFileLimit)
	assert.Equal(t, uint64(64*1024), cfg.Shell.CatMaxBytes)
	assert.Equal(t, "en", cfg.Shell.Locale)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
server:
  listen_addr: ":9000"
drive:
  type: badger
  owner: alice@example.com
  badger:
    path: /tmp/drive-db
shell:
  base_url: https://files.internal.example.com
  tree_file_limit: 10
metrics:
  enabled: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, "badger", cfg.Drive.Type)
	assert.Equal(t, "alice@example.com", cfg.Drive.Owner)
	assert.Equal(t, "/tmp/drive-db", cfg.Drive.Badger["path"])
	assert.Equal(t, "https://files.internal.example.com", cfg.Shell.BaseURL)
	assert.Equal(t, 10, cfg.Shell.TreeFileLimit)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		ApplyDefaults(cfg)
		return cfg
	}

	cfg := base()
	cfg.Logging.Level = "LOUD"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Drive.Type = "postgres"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Shell.BaseURL = "not a url"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Shell.Locale = "no-such-locale-!!"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Drive.Type = "badger"
	assert.Error(t, Validate(cfg), "badger without a path must fail")

	cfg = base()
	cfg.Drive.Type = "badger"
	cfg.Drive.Badger = map[string]any{"path": "/tmp/db"}
	assert.NoError(t, Validate(cfg))
}

func TestFactoriesCreateMemoryStores(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{}
	ApplyDefaults(cfg)

	driveStore, err := CreateDriveStore(ctx, &cfg.Drive)
	require.NoError(t, err)
	require.NotNil(t, driveStore)
	defer driveStore.Close()

	root, err := driveStore.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, "drive@localhost", root.Owner)

	contentStore, err := CreateContentStore(ctx, &cfg.Content)
	require.NoError(t, err)
	require.NotNil(t, contentStore)
	defer contentStore.Close()

	sessionStore, err := CreateSessionStore(ctx, &cfg.Session)
	require.NoError(t, err)
	require.NotNil(t, sessionStore)
	defer sessionStore.Close()
}

func TestFactoriesRejectUnknownTypes(t *testing.T) {
	ctx := context.Background()

	_, err := CreateDriveStore(ctx, &DriveConfig{Type: "sqlite"})
	assert.Error(t, err)

	_, err = CreateContentStore(ctx, &ContentConfig{Type: "tape"})
	assert.Error(t, err)

	_, err = CreateSessionStore(ctx, &SessionConfig{Type: "redis"})
	assert.Error(t, err)
}

func TestFilesystemContentFactory(t *testing.T) {
	ctx := context.Background()

	_, err := CreateContentStore(ctx, &ContentConfig{Type: "filesystem"})
	assert.Error(t, err, "missing path must fail")

	store, err := CreateContentStore(ctx, &ContentConfig{
		Type:       "filesystem",
		Filesystem: map[string]any{"path": t.TempDir()},
	})
	require.NoError(t, err)
	defer store.Close()
}

func TestBadgerFactoriesInMemory(t *testing.T) {
	ctx := context.Background()

	driveStore, err := CreateDriveStore(ctx, &DriveConfig{
		Type:   "badger",
		Owner:  "tester@example.com",
		Badger: map[string]any{"in_memory": true},
	})
	require.NoError(t, err)
	defer driveStore.Close()

	sessionStore, err := CreateSessionStore(ctx, &SessionConfig{
		Type:   "badger",
		Badger: map[string]any{"in_memory": true},
	})
	require.NoError(t, err)
	defer sessionStore.Close()
}
