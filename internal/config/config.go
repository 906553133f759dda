package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Storage backends for the reservation ledger.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config stores slot service settings.
type Config struct {
	Port      int
	Storage   string
	DB        DB
	Kafka     Kafka
	Booking   Booking
	RateLimit RateLimit
	Pprof     Pprof
}

// DB stores database connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the Postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores reservation event stream settings. Empty brokers disable
// event publishing entirely.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Booking stores coordinator settings.
type Booking struct {
	HorizonDays      int
	OperationTimeout time.Duration
}

// RateLimit stores write-path rate limiter settings.
type RateLimit struct {
	Limit      int
	Window     time.Duration
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings. Port 0 disables the listener.
type Pprof struct {
	Port int
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", defaultPort),
		Storage:   envStr("STORAGE", defaultStorage),
		DB:        loadDB(),
		Kafka:     loadKafka(),
		Booking:   loadBooking(),
		RateLimit: loadRateLimit(),
		Pprof:     loadPprof(),
	}

	// локальный FlagSet, что бы повторный Load не падал в тестах
	fs := pflag.NewFlagSet("slot-service", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "ledger storage backend (postgres|memory)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("invalid storage backend: %q", cfg.Storage)
	}
	return cfg, nil
}

func loadDB() DB {
	db := DefaultDB()
	db.Host = envStr("DB_HOST", db.Host)
	db.Port = envStr("DB_PORT", db.Port)
	db.User = envStr("DB_USER", db.User)
	db.Pass = envStr("DB_PASS", db.Pass)
	db.Name = envStr("DB_NAME", db.Name)
	return db
}

func loadKafka() Kafka {
	var brokers []string
	for _, b := range strings.Split(envStr("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return Kafka{
		Brokers: brokers,
		Topic:   envStr("KAFKA_TOPIC", defaultKafkaTopic),
	}
}

func loadBooking() Booking {
	b := DefaultBooking()
	b.HorizonDays = envInt("BOOKING_HORIZON_DAYS", b.HorizonDays)
	b.OperationTimeout = envDuration("BOOKING_TIMEOUT", b.OperationTimeout)
	return b
}

func loadRateLimit() RateLimit {
	rl := DefaultRateLimit()
	rl.Limit = envInt("RATE_LIMIT_LIMIT", rl.Limit)
	rl.Window = envDuration("RATE_LIMIT_WINDOW", rl.Window)
	rl.TTL = envDuration("RATE_LIMIT_TTL", rl.TTL)
	rl.MaxBuckets = envInt("RATE_LIMIT_MAX_BUCKETS", rl.MaxBuckets)
	return rl
}

func loadPprof() Pprof {
	return Pprof{
		Port: envInt("PPROF_PORT", 0),
		User: envStr("PPROF_USER", ""),
		Pass: envStr("PPROF_PASS", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
