package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/psurana/pulse-etl/etl/config"
)

func TestDSN(t *testing.T) {
	mysql := config.DatabaseConfig{
		Driver:   "mysql",
		Host:     "db.internal",
		Port:     3307,
		User:     "etl",
		Password: "secret",
		Name:     "phonepe_pulse",
	}
	require.Equal(t, "etl:secret@tcp(db.internal:3307)/phonepe_pulse?parseTime=true", mysql.DSN())
	require.Equal(t, "etl:secret@tcp(db.internal:3307)/", mysql.ServerDSN())

	sqlite := config.DatabaseConfig{Driver: "sqlite3", Path: "/tmp/pulse.db"}
	require.Equal(t, "/tmp/pulse.db", sqlite.DSN())
}

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	require.Equal(t, "mysql", cfg.Database.Driver)
	require.Equal(t, "phonepe_pulse", cfg.Database.Name)
	require.Equal(t, config.DefaultRepoURL, cfg.RepoURL)
	require.Equal(t, 24*time.Hour, cfg.RunInterval)
	require.Equal(t, "data/processed/extracted_data_summary.json", cfg.SummaryFile())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PULSE_DB_DRIVER", "sqlite3")
	t.Setenv("PULSE_DB_PATH", "/var/lib/pulse/pulse.db")
	t.Setenv("PULSE_DATA_DIR", "/srv/pulse")
	t.Setenv("PULSE_RUN_INTERVAL", "6h")
	t.Setenv("PULSE_VERBOSE", "true")

	cfg := config.Load()

	require.Equal(t, "sqlite3", cfg.Database.Driver)
	require.Equal(t, "/var/lib/pulse/pulse.db", cfg.Database.Path)
	require.Equal(t, "/srv/pulse", cfg.DataDir)
	require.Equal(t, 6*time.Hour, cfg.RunInterval)
	require.True(t, cfg.Verbose)
}
