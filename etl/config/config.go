package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultRepoURL is the upstream pulse data repository.
const DefaultRepoURL = "https://github.com/PhonePe/pulse.git"

// DatabaseConfig holds sink connection settings. Driver selects the dialect:
// "mysql" for the production sink, "sqlite3" for a local file sink.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// Path is the database file, sqlite3 only.
	Path string
}

// DSN builds the driver-specific data source name.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlite3" {
		return c.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// ServerDSN builds a DSN without a database name, used to create the
// database itself. MySQL only.
func (c DatabaseConfig) ServerDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/", c.User, c.Password, c.Host, c.Port)
}

// Config is the full pipeline configuration.
type Config struct {
	Database    DatabaseConfig
	DataDir     string
	RepoURL     string
	RunInterval time.Duration
	LogDir      string
	Verbose     bool
}

// SummaryFile returns where the run summary artifact is written.
func (c Config) SummaryFile() string {
	return fmt.Sprintf("%s/processed/extracted_data_summary.json", strings.TrimRight(c.DataDir, "/"))
}

// Load reads configuration from PULSE_* environment variables with
// defaults suitable for a local run.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "phonepe_pulse")
	v.SetDefault("db.path", "pulse.db")
	v.SetDefault("data.dir", "data")
	v.SetDefault("repo.url", DefaultRepoURL)
	v.SetDefault("run.interval", 24*time.Hour)
	v.SetDefault("log.dir", "logs")
	v.SetDefault("verbose", false)

	return Config{
		Database: DatabaseConfig{
			Driver:   v.GetString("db.driver"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			Path:     v.GetString("db.path"),
		},
		DataDir:     v.GetString("data.dir"),
		RepoURL:     v.GetString("repo.url"),
		RunInterval: v.GetDuration("run.interval"),
		LogDir:      v.GetString("log.dir"),
		Verbose:     v.GetBool("verbose"),
	}
}
