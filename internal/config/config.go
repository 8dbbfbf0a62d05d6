package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for a reverse geocoding run.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - ProviderType: The type of geocoding provider to use (google, nominatim, visicom).
// - APIKey: The API key for accessing the provider (required for Google and Visicom).
// - Language: Preferred language of the returned addresses.
// - Workers: The number of concurrent requester tasks.
// - RateLimit: Requests per second allowed by the provider, shared by all workers.
// - IdleWait: Upper bound of a single idle wait of the writer.
// - Sink: Storage backend for resolved addresses (sqlite, postgres).
// - SQLitePath: Database file used by the sqlite sink.
// - InputFiles: Data-point files to read, in order.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string         // Env is the current environment: local, development, production.
	Port         int            // Port is the monitoring server port.
	ProviderType string         // ProviderType specifies which geocoding provider to use.
	APIKey       string         // The API key for accessing the provider.
	Language     string         // Preferred language of the returned addresses.
	Workers      int            // The number of concurrent requester tasks.
	RateLimit    int            // Requests per second allowed by the provider, for all workers together.
	IdleWait     time.Duration  // Upper bound of a single idle wait of the writer.
	Sink         string         // Storage backend: sqlite or postgres.
	SQLitePath   string         // Database file of the sqlite sink.
	InputFiles   []string       // Data-point files to read, in order.
	Database     PostgresConfig // Database holds the postgres database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// envPrefix is prepended to every application key, DB_* keys excepted.
const envPrefix = "MERIDIAN"

// New returns a viper instance with the defaults and environment bindings of the application.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("health_port", "8080")
	v.SetDefault("provider_type", "google")
	v.SetDefault("provider_key", "")
	v.SetDefault("language", "")
	v.SetDefault("workers", "10")
	v.SetDefault("rate_limit", "50")
	v.SetDefault("idle_wait", "50ms")
	v.SetDefault("sink", "sqlite")
	v.SetDefault("sqlite_path", "addresses.db")
	v.SetDefault("input_files", "")
	v.SetDefault("postgres.port", "5432")

	// The database keys keep the names shared with the other services.
	_ = v.BindEnv("postgres.host", "DB_HOST")
	_ = v.BindEnv("postgres.port", "DB_PORT")
	_ = v.BindEnv("postgres.user", "DB_USERNAME")
	_ = v.BindEnv("postgres.password", "DB_PASSWORD")
	_ = v.BindEnv("postgres.name", "DB_NAME")

	if file, ok := v.Get("config").(string); ok && file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	return v
}

// BindFlags lets the given command line flags override the environment.
// Flag names use dashes where the keys use underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		key := strings.ReplaceAll(flag.Name, "-", "_")
		_ = v.BindPFlag(key, flag)
	})
}

// MustLoad loads the configuration from the environment (and .env file) and returns a Config struct.
func MustLoad() *Config {
	return MustLoadFrom(New())
}

// MustLoadFrom builds a Config from v and panics when a value cannot be parsed.
func MustLoadFrom(v *viper.Viper) *Config {
	interval, err := time.ParseDuration(v.GetString("idle_wait"))
	if err != nil {
		panic("failed to parse idle wait from configuration")
	}

	healthPort, err := parseInt(v.GetString("health_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := parseInt(v.GetString("workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	rateLimit, err := parseInt(v.GetString("rate_limit"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer types")
	}

	return &Config{
		Env:          v.GetString("env"),
		Port:         healthPort,
		ProviderType: v.GetString("provider_type"),
		APIKey:       v.GetString("provider_key"),
		Language:     v.GetString("language"),
		Workers:      workers,
		RateLimit:    rateLimit,
		IdleWait:     interval,
		Sink:         v.GetString("sink"),
		SQLitePath:   v.GetString("sqlite_path"),
		InputFiles:   splitList(v.GetString("input_files")),
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.name"),
		},
	}
}
