package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/sha3pow/pkg/types"
)

const devConfig = `{
  "app_name": "sha3pow-test",
  "consensus": {
    "round_budget": 200,
    "build_time": "1s",
    "initial_difficulty": "16",
    "oracle_backend": "store",
    "oracle_cache_ttl": "1m"
  },
  "storage": {"in_memory": true},
  "log": {"level": "error", "file_path": "stderr"}
}`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(devConfig))
	require.NoError(t, err)
	require.NotNil(t, cfg.Consensus)
	assert.Equal(t, uint32(200), *cfg.Consensus.RoundBudget)
	assert.Equal(t, "store", *cfg.Consensus.OracleBackend)
	assert.True(t, *cfg.Storage.InMemory)
	assert.Nil(t, cfg.Consensus.MinerEnabled)

	_, err = ParseConfig([]byte("{not json"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, &types.AppConfig{}, cfg)

	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(devConfig), 0o600))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sha3pow-test", *cfg.AppName)
}

func TestResolveConfig_Precedence(t *testing.T) {
	name := "explicit"
	o := newOptions(
		WithAppConfig(&types.AppConfig{AppName: &name}),
		WithEmbeddedConfig([]byte(devConfig)),
	)
	require.NoError(t, resolveConfig(o))
	assert.Equal(t, "explicit", *o.GetAppConfig().AppName)

	o = newOptions(WithEmbeddedConfig([]byte(devConfig)), WithConfigFile("/nonexistent.json"))
	require.NoError(t, resolveConfig(o))
	assert.Equal(t, "sha3pow-test", *o.GetAppConfig().AppName)
}

func TestCreateDataDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	logFile := filepath.Join(t.TempDir(), "logs", "node.log")

	require.NoError(t, createDataDirectories(&types.AppConfig{
		Storage: &types.UserStorageConfig{DataRoot: &root},
		Log:     &types.UserLogConfig{FilePath: &logFile},
	}))
	assert.DirExists(t, root)
	assert.DirExists(t, filepath.Dir(logFile))
}

func TestStart_MinesBlocks(t *testing.T) {
	app, err := Start(WithEmbeddedConfig([]byte(devConfig)))
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Stop()) }()

	require.Eventually(t, func() bool {
		return app.Head().Header.Height >= 2
	}, 10*time.Second, 10*time.Millisecond)

	stats := app.MiningStats()
	assert.True(t, stats.Running)
	assert.GreaterOrEqual(t, stats.Seals, uint64(2))
}

func TestStart_InvalidConfig(t *testing.T) {
	_, err := Start(WithEmbeddedConfig([]byte(`{"consensus": {"oracle_backend": "redis"}}`)))
	assert.Error(t, err)
}
