package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"passport_parser/internal/config/connections/mongo"
	"passport_parser/internal/config/connections/postgres"
	"passport_parser/internal/config/connections/s3"

	"github.com/joho/godotenv"
)

// Config holds settings and optional backends. A backend stays nil when its
// host or endpoint variable is unset.
type Config struct {
	BotToken     string
	Port         string
	APITokens    string
	Workers      int
	MaxArchiveMB int

	S3       *s3.S3
	Mongo    *mongo.Mongo
	Postgres *postgres.Postgres
}

// Load reads .env and the process environment without connecting anywhere.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		BotToken:     getenv("BOT_TOKEN", ""),
		Port:         getenv("PORT", "10000"),
		APITokens:    getenv("API_TOKENS", ""),
		Workers:      getenvInt("PARSE_WORKERS", 4),
		MaxArchiveMB: getenvInt("MAX_ARCHIVE_MB", 64),
	}
}

// Init loads settings and connects every configured backend.
func Init(ctx context.Context) *Config {
	c := Load()

	if endpoint := getenv("AWS_ENDPOINT", ""); endpoint != "" {
		s3c, err := s3.NewConnection(s3.ConnectionInfo{
			Endpoint:  endpoint,
			AccessKey: getenv("AWS_ACCESS_KEY_ID", "minioadmin"),
			SecretKey: getenv("AWS_SECRET_ACCESS_KEY", "minioadmin"),
			Region:    getenv("AWS_DEFAULT_REGION", "us-east-1"),
			Bucket:    getenv("AWS_BUCKET", "passports"),
			UseSSL:    getenv("AWS_USE_SSL", "false") == "true",
		})
		if err != nil {
			log.Fatal("S3 connect error:", err)
		}
		c.S3 = s3c
	}

	if host := getenv("MONGO_HOST", ""); host != "" {
		mg, err := mongo.NewConnection(ctx, mongo.ConnectionInfo{
			Scheme:     getenv("MONGO_SCHEME", "mongodb"),
			User:       getenv("MONGO_USER", ""),
			Password:   getenv("MONGO_PASSWORD", ""),
			Host:       host,
			Port:       getenv("MONGO_PORT", "27017"),
			DB:         getenv("MONGO_DB", "passport_parser"),
			AuthSource: getenv("MONGO_AUTH_SOURCE", "admin"),
		})
		if err != nil {
			log.Fatal("Mongo connect error:", err)
		}
		c.Mongo = mg
	}

	if host := getenv("PG_HOST", ""); host != "" {
		pg, err := postgres.NewConnection(ctx, postgres.ConnectionInfo{
			Host:     host,
			Port:     getenv("PG_PORT", "5432"),
			User:     getenv("PG_USER", "postgres"),
			Password: getenv("PG_PASSWORD", ""),
			DB:       getenv("PG_DB", "passport_parser"),
			SSLMode:  getenv("PG_SSLMODE", "disable"),
			MaxConns: int32(getenvInt("PG_MAX_CONNS", 4)),
		})
		if err != nil {
			log.Fatal("Postgres connect error:", err)
		}
		c.Postgres = pg
	}

	log.Printf("[CONFIG] port=%s workers=%d max_archive_mb=%d bot=%v s3=%v mongo=%v postgres=%v",
		c.Port, c.Workers, c.MaxArchiveMB, c.BotToken != "", c.S3 != nil, c.Mongo != nil, c.Postgres != nil)
	return c
}

// MaxArchiveBytes is the archive size limit in bytes.
func (c *Config) MaxArchiveBytes() int64 {
	return int64(c.MaxArchiveMB) << 20
}

// CheckConnections pings every configured backend. Disabled ones are skipped.
func (c *Config) CheckConnections(ctx context.Context) error {
	var errs []error

	if c.Postgres != nil {
		if c.Postgres.Pool == nil {
			errs = append(errs, errors.New("postgres not initialized"))
		} else if err := c.Postgres.Pool.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres ping failed: %w", err))
		}
	}

	if c.Mongo != nil {
		if c.Mongo.Client == nil {
			errs = append(errs, errors.New("mongo not initialized"))
		} else if err := c.Mongo.Client.Ping(ctx, nil); err != nil {
			errs = append(errs, fmt.Errorf("mongo ping failed: %w", err))
		}
	}

	if c.S3 != nil {
		if err := c.S3.Check(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Close releases every open backend.
func (c *Config) Close(ctx context.Context) {
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			log.Printf("[CONFIG][WARN] mongo close: %v", err)
		}
	}
	c.Postgres.Close()
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[CONFIG][WARN] %s=%q is not a positive integer, using %d", k, v, def)
		return def
	}
	return n
}
