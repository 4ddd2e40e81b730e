package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Console  ConsoleConfig
	Formance FormanceConfig
	Server   ServerConfig
	Watcher  WatcherConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path             string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	ConnMaxIdleTime  time.Duration
	PingTimeout      time.Duration
	CreateDummyUsers bool
}

// ConsoleConfig holds admin operation settings
type ConsoleConfig struct {
	DefaultPageLimit int
	MaxPageLimit     int
	CatalogFile      string
	// OperatorId is the actor the command-line tools act as
	OperatorId string
}

// FormanceConfig holds the optional Formance ledger mirror settings
type FormanceConfig struct {
	StackURL     string
	ClientID     string
	ClientSecret string
	LedgerName   string
	Currency     string
}

// Enabled reports whether a mirror stack is configured
func (c FormanceConfig) Enabled() bool {
	return c.StackURL != ""
}

// ServerConfig holds HTTP endpoint settings
type ServerConfig struct {
	Port            string
	JWTSecret       string
	ShutdownTimeout time.Duration
}

// WatcherConfig holds pending request watcher settings
type WatcherConfig struct {
	PollingInterval time.Duration
	CleanupInterval time.Duration
	SeenRetention   time.Duration
}
