package config

import "time"

const (
	defaultPort       = 8080
	defaultStorage    = StorageMemory
	defaultKafkaTopic = "reservation-events"
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "slots",
	Pass: "slots",
	Name: "slots_db",
}

var defaultBooking = Booking{
	HorizonDays:      30,
	OperationTimeout: 3 * time.Second,
}

var defaultRateLimit = RateLimit{
	Limit:      20,
	Window:     time.Second,
	TTL:        10 * time.Minute,
	MaxBuckets: 100_000,
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultBooking returns the default booking coordinator settings.
func DefaultBooking() Booking {
	return defaultBooking
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
