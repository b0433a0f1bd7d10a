package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	BPMS       BPMSConfig       `mapstructure:"bpms"`
	MasterData MasterDataConfig `mapstructure:"masterdata"`
	MFiles     MFilesConfig     `mapstructure:"mfiles"`
	Wizard     WizardConfig     `mapstructure:"wizard"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RateLimit    float64       `mapstructure:"rate_limit"`
	RateBurst    int           `mapstructure:"rate_burst"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// BPMSConfig holds BPMS gateway configuration
type BPMSConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// MasterDataConfig holds master-data proxy configuration
type MasterDataConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// MFilesConfig holds M-Files document service configuration
type MFilesConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	DocumentGroup string        `mapstructure:"document_group"`
	DocumentClass string        `mapstructure:"document_class"`
}

// WizardConfig holds form wizard session configuration
type WizardConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.rate_limit", 50.0)
	viper.SetDefault("server.rate_burst", 100)

	// Database defaults
	viper.SetDefault("database.path", "data/dots.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.ping_timeout", 5*time.Second)
	viper.SetDefault("database.migrations_dir", "migrations")

	// BPMS defaults
	viper.SetDefault("bpms.timeout", 15*time.Second)

	// Master-data defaults
	viper.SetDefault("masterdata.timeout", 15*time.Second)
	viper.SetDefault("masterdata.cache_ttl", 5*time.Minute)

	// M-Files defaults
	viper.SetDefault("mfiles.timeout", 60*time.Second)
	viper.SetDefault("mfiles.document_group", "DOTS")
	viper.SetDefault("mfiles.document_class", "Supporting Document")

	// Wizard defaults
	viper.SetDefault("wizard.session_ttl", 2*time.Hour)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment
	viper.BindEnv("bpms.base_url", "BPMS_BASE_URL")
	viper.BindEnv("bpms.client_id", "BPMS_CLIENT_ID")
	viper.BindEnv("bpms.client_secret", "BPMS_CLIENT_SECRET")
	viper.BindEnv("masterdata.base_url", "MASTERDATA_BASE_URL")
	viper.BindEnv("mfiles.base_url", "MFILES_BASE_URL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BPMS.BaseURL == "" {
		return fmt.Errorf("bpms.base_url is required")
	}
	if c.BPMS.ClientID == "" {
		return fmt.Errorf("bpms.client_id is required")
	}
	if c.BPMS.ClientSecret == "" {
		return fmt.Errorf("bpms.client_secret is required")
	}
	if c.MasterData.BaseURL == "" {
		return fmt.Errorf("masterdata.base_url is required")
	}
	if c.MFiles.BaseURL == "" {
		return fmt.Errorf("mfiles.base_url is required")
	}
	return nil
}
