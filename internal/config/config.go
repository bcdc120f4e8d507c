package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the products service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - HTTPAddr: The listen address of the public HTTP server.
// - Port: The port of the monitoring server (health checks and metrics).
// - RenderTimeout: How long a page request waits for products before rendering the skeleton grid.
// - FetchTimeout: Upper bound of one backend fetch, which may outlive the request that started it.
// - ResultTTL: How long a finished fetch is reused by requests asking for the same products.
// - CurrencySymbol: Prefix used when formatting prices.
// - Geocoder: Settings of the provider resolving free-text places into coordinates.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string         `yaml:"env"`
	HTTPAddr       string         `yaml:"http.addr"`
	Port           int            `yaml:"monitoring.port"`
	RenderTimeout  time.Duration  `yaml:"http.render_timeout"`
	FetchTimeout   time.Duration  `yaml:"http.fetch_timeout"`
	ResultTTL      time.Duration  `yaml:"http.result_ttl"`
	CurrencySymbol string         `yaml:"currency_symbol"`
	Geocoder       GeocoderConfig `yaml:"geocoder"`
	Database       PostgresConfig `yaml:"postgres"`
}

// GeocoderConfig selects and parametrizes the geocoding provider.
type GeocoderConfig struct {
	ProviderType string `yaml:"provider"`   // google, nominatim or none.
	APIKey       string `yaml:"api_key"`    // Required by Google.
	RateLimit    int    `yaml:"rate_limit"` // Requests per second.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad reads the configuration from the environment (and an optional .env file),
// optionally layered over a YAML file named by BAZAAR_CONFIG_FILE. It panics on
// values that cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := newViper()

	if path := os.Getenv("BAZAAR_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	renderTimeout, err := time.ParseDuration(v.GetString("http.render_timeout"))
	if err != nil {
		panic("failed to parse render timeout from configuration")
	}

	fetchTimeout, err := time.ParseDuration(v.GetString("http.fetch_timeout"))
	if err != nil {
		panic("failed to parse fetch timeout from configuration")
	}

	resultTTL, err := time.ParseDuration(v.GetString("http.result_ttl"))
	if err != nil {
		panic("failed to parse result ttl from configuration")
	}

	monitoringPort, err := strconv.Atoi(v.GetString("monitoring.port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("geocoder.rate_limit"))
	if err != nil {
		panic("failed to parse geocoder rate limit from configuration, must be an integer types")
	}

	return &Config{
		Env:            v.GetString("env"),
		HTTPAddr:       v.GetString("http.addr"),
		Port:           monitoringPort,
		RenderTimeout:  renderTimeout,
		FetchTimeout:   fetchTimeout,
		ResultTTL:      resultTTL,
		CurrencySymbol: v.GetString("currency_symbol"),
		Geocoder: GeocoderConfig{
			ProviderType: v.GetString("geocoder.provider"),
			APIKey:       v.GetString("geocoder.api_key"),
			RateLimit:    rateLimit,
		},
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BAZAAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.render_timeout", "3s")
	v.SetDefault("http.fetch_timeout", "30s")
	v.SetDefault("http.result_ttl", "15s")
	v.SetDefault("monitoring.port", "8080")
	v.SetDefault("currency_symbol", "R$")
	v.SetDefault("geocoder.provider", "nominatim")
	v.SetDefault("geocoder.rate_limit", "1")
	v.SetDefault("postgres.port", "5432")

	// Database credentials keep the unprefixed names shared with the other services.
	_ = v.BindEnv("postgres.host", "DB_HOST")
	_ = v.BindEnv("postgres.port", "DB_PORT")
	_ = v.BindEnv("postgres.user", "DB_USERNAME")
	_ = v.BindEnv("postgres.password", "DB_PASSWORD")
	_ = v.BindEnv("postgres.db_name", "DB_NAME")

	return v
}
