package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Store    StoreConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	OIDC     OIDCConfig
	DevAuth  DevAuthConfig
	LogLevel string
}

type ServerConfig struct {
	Host        string
	Port        int
	Environment string
	CORSOrigins string
	ReadTimeout time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

type StoreConfig struct {
	Backend    string
	Collection string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type OIDCConfig struct {
	Issuer   string
	ClientID string
}

type DevAuthConfig struct {
	Secret string
}

const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendMemory    = "memory"
)

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8000)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", BackendFirestore)
	v.SetDefault("ITEMS_COLLECTION", "items")
	v.SetDefault("MONGODB_DATABASE", "items_api")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Environment: v.GetString("ENVIRONMENT"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
			ReadTimeout: 30 * time.Second,
		},
		Firebase: FirebaseConfig{
			CredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
			ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
			Collection: v.GetString("ITEMS_COLLECTION"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		OIDC: OIDCConfig{
			Issuer:   v.GetString("OIDC_ISSUER"),
			ClientID: v.GetString("OIDC_CLIENT_ID"),
		},
		DevAuth: DevAuthConfig{
			Secret: v.GetString("DEV_JWT_SECRET"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("API_PORT must be between 1 and 65535, got %q", v.GetString("API_PORT"))
	}
	for _, o := range cfg.AllowedOrigins() {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("CORS_ORIGINS entry %q must be \"*\" or start with http:// or https://", o)
		}
	}
	switch cfg.Store.Backend {
	case BackendFirestore, BackendMongo, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.Store.Backend)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AllowedOrigins splits CORS_ORIGINS on commas. A fresh slice is returned on every call.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IsProduction reports whether the environment tag is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// DevTokensEnabled reports whether locally signed development tokens are accepted.
func (c *Config) DevTokensEnabled() bool {
	return c.DevAuth.Secret != "" && !c.IsProduction()
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}

// Redacted returns a copy safe for printing.
func (c *Config) Redacted() Config {
	out := *c
	if out.Redis.Password != "" {
		out.Redis.Password = "<redacted>"
	}
	if out.DevAuth.Secret != "" {
		out.DevAuth.Secret = "<redacted>"
	}
	if out.MongoDB.URI != "" {
		out.MongoDB.URI = "<set>"
	}
	return out
}
