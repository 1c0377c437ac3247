package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	NATS       NATSConfig       `mapstructure:"nats"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Detection  DetectionConfig  `mapstructure:"detection"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Sessions   SessionsConfig   `mapstructure:"sessions"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type NATSConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url"`
	StreamName string `mapstructure:"stream_name"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// DetectionConfig holds the multi-factor decision weights and thresholds
type DetectionConfig struct {
	FactorWeights              FactorWeightsConfig `mapstructure:"factor_weights"`
	ConfidenceThreshold        float64             `mapstructure:"confidence_threshold"`
	LLMHighConfidenceThreshold float64             `mapstructure:"llm_high_confidence_threshold"`
	RedFlagThreshold           float64             `mapstructure:"red_flag_threshold"`
	AnalyzerTimeout            time.Duration       `mapstructure:"analyzer_timeout"`
}

type FactorWeightsConfig struct {
	Linguistic float64 `mapstructure:"linguistic"`
	Behavioral float64 `mapstructure:"behavioral"`
	Technical  float64 `mapstructure:"technical"`
	Context    float64 `mapstructure:"context"`
	LLM        float64 `mapstructure:"llm"`
}

// ExtractionConfig gates and paces the guided intel extraction tactics
type ExtractionConfig struct {
	Enabled                bool `mapstructure:"enabled"`
	EarlyStageLimit        int  `mapstructure:"early_stage_limit"`
	MidStageLimit          int  `mapstructure:"mid_stage_limit"`
	TacticCooldownMessages int  `mapstructure:"tactic_cooldown_messages"`
}

type SessionsConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/scambait-lab")
	}

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("SCAMBAIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.host", "SCAMBAIT_REDIS_HOST")
	v.BindEnv("redis.port", "SCAMBAIT_REDIS_PORT")
	v.BindEnv("redis.password", "SCAMBAIT_REDIS_PASSWORD")
	v.BindEnv("database.enabled", "SCAMBAIT_DATABASE_ENABLED")
	v.BindEnv("database.host", "SCAMBAIT_DATABASE_HOST")
	v.BindEnv("database.port", "SCAMBAIT_DATABASE_PORT")
	v.BindEnv("database.user", "SCAMBAIT_DATABASE_USER")
	v.BindEnv("database.password", "SCAMBAIT_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "SCAMBAIT_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "SCAMBAIT_DATABASE_SSLMODE")
	v.BindEnv("nats.enabled", "SCAMBAIT_NATS_ENABLED")
	v.BindEnv("nats.url", "SCAMBAIT_NATS_URL")
	v.BindEnv("app.environment", "SCAMBAIT_APP_ENVIRONMENT")
	v.BindEnv("extraction.enabled", "SCAMBAIT_EXTRACTION_ENABLED")

	// Read config file; defaults carry the app when none is present
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "scambait-lab")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "0.1.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "scambait")
	v.SetDefault("database.dbname", "scambait")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "scambait")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream_name", "HONEYPOT")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("detection.factor_weights.linguistic", 0.2)
	v.SetDefault("detection.factor_weights.behavioral", 0.2)
	v.SetDefault("detection.factor_weights.technical", 0.15)
	v.SetDefault("detection.factor_weights.context", 0.1)
	v.SetDefault("detection.factor_weights.llm", 0.35)
	v.SetDefault("detection.confidence_threshold", 0.6)
	v.SetDefault("detection.llm_high_confidence_threshold", 0.85)
	v.SetDefault("detection.red_flag_threshold", 0.6)
	v.SetDefault("detection.analyzer_timeout", 5*time.Second)

	v.SetDefault("extraction.enabled", true)
	v.SetDefault("extraction.early_stage_limit", 3)
	v.SetDefault("extraction.mid_stage_limit", 8)
	v.SetDefault("extraction.tactic_cooldown_messages", 5)

	v.SetDefault("sessions.ttl", 24*time.Hour)
}
