package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atomiclabs/bridge/relayer/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "ledger:\n  owner: refund-authority\n")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8545", cfg.ListenAddr)
	require.Equal(t, "goleveldb", cfg.Database.Backend)
	require.Equal(t, uint64(1), cfg.Ledger.TimeLockMultiplier)
	require.Equal(t, "refund-authority", cfg.Ledger.Owner)
	require.False(t, cfg.Watcher.Enabled)
	require.Equal(t, 10*time.Second, cfg.Watcher.PollInterval)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
listen_addr: 0.0.0.0:9000
database:
  backend: memdb
ledger:
  owner: op
  time_lock_multiplier: 3
watcher:
  enabled: true
  rpc_endpoint: http://localhost:8546
  contract_address: "0x1111111111111111111111111111111111111111"
  start_block: 42
  poll_interval: 2s
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
	require.Equal(t, "memdb", cfg.Database.Backend)
	require.Equal(t, uint64(3), cfg.Ledger.TimeLockMultiplier)
	require.True(t, cfg.Watcher.Enabled)
	require.Equal(t, uint64(42), cfg.Watcher.StartBlock)
	require.Equal(t, 2*time.Second, cfg.Watcher.PollInterval)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{}
	require.Error(t, cfg.Validate())

	cfg.ListenAddr = "127.0.0.1:8545"
	cfg.Database.Backend = "memdb"
	cfg.Ledger.TimeLockMultiplier = 1
	require.NoError(t, cfg.Validate())

	cfg.Watcher.Enabled = true
	require.Error(t, cfg.Validate())

	cfg.Watcher.RPCEndpoint = "http://localhost:8546"
	require.Error(t, cfg.Validate())

	cfg.Watcher.ContractAddress = "0x1111111111111111111111111111111111111111"
	cfg.Watcher.PollInterval = time.Second
	require.NoError(t, cfg.Validate())
}
