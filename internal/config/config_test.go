package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Equal(t, "memory", cfg.StoreBackend)
	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	require.Equal(t, 25, cfg.OutboxBatchSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("KAFKA_BROKERS", "broker-a:9092, broker-b:9092")
	t.Setenv("OUTBOX_BATCH_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddress)
	require.Equal(t, "postgres", cfg.StoreBackend)
	require.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 50, cfg.OutboxBatchSize)
}

func TestLoadFileOverlayWinsOverEnv(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")

	path := filepath.Join(t.TempDir(), "energy.yaml")
	body := "http_address: \":7070\"\noutbox_poll_interval: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("ENERGY_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":7070", cfg.HTTPAddress)
	require.Equal(t, 5*time.Second, cfg.OutboxPollInterval)
	// Fields the file omits keep their env/default values.
	require.Equal(t, "memory", cfg.StoreBackend)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")

	_, err := Load()
	require.Error(t, err)
}
