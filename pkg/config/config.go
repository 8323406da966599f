package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendMongo  = "mongo"
	SessionBackendRedis  = "redis"

	// MemoryDatabaseURL keeps every repository in process memory.
	MemoryDatabaseURL = "memory"
)

type Config struct {
	Port                    string
	Env                     string
	DatabaseURL             string
	SecretKey               string
	SessionBackend          string
	SessionTTL              time.Duration
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	FirebaseCredentialsPath string
	// CORSAllowedOrigins lists the cross-origin sites allowed to call the app with
	// credentials. Empty disables CORS.
	CORSAllowedOrigins []string
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and an optional app.yaml, then lets environment
// variables override both.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath("./")
	v.SetConfigType("yaml")
	v.SetConfigName("app")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATABASE_URL", "postgres://localhost:5432/warbler?sslmode=disable")
	v.SetDefault("SECRET_KEY", "it's a secret")
	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "warbler")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		DatabaseURL:             v.GetString("DATABASE_URL"),
		SecretKey:               v.GetString("SECRET_KEY"),
		SessionBackend:          strings.ToLower(v.GetString("SESSION_BACKEND")),
		SessionTTL:              v.GetDuration("SESSION_TTL"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		RedisPassword:           v.GetString("REDIS_PASSWORD"),
		RedisDB:                 v.GetInt("REDIS_DB"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
	}

	origins, err := parseOrigins(v.GetString("CORS_ALLOWED_ORIGINS"))
	if err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = origins

	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendMongo, SessionBackendRedis:
	default:
		return nil, errors.New("SESSION_BACKEND must be one of memory, mongo, redis")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}
	return cfg, nil
}

// parseOrigins splits a comma separated list of "scheme://host[:port]" origins.
func parseOrigins(raw string) ([]string, error) {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" || (u.Path != "" && u.Path != "/") {
			return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS: invalid origin %q", origin)
		}
		origins = append(origins, u.Scheme+"://"+u.Host)
	}
	return origins, nil
}
