package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Revenue  RevenueConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SeedDemoSellers bool
}

// RevenueConfig holds the marketplace revenue rates
type RevenueConfig struct {
	SellerShareCents int64
	CreditsPerDollar int64
	DuplicateWindow  time.Duration
	RatesFile        string
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	ListenAddr      string
	APIKey          string
	ShutdownTimeout time.Duration
}
