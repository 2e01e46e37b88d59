package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
	Geo       GeoConfig
	Simulator SimulatorConfig
	Penalty   PenaltyConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}

// GeoConfig contains geodesic tolerances shared by the simulator and the penalty pipeline
type GeoConfig struct {
	ArrivalThresholdKm float64
}

// SimulatorConfig contains trip simulator configuration
type SimulatorConfig struct {
	TickInterval time.Duration
	MinSpeedKmh  int
	MaxSpeedKmh  int
	Workers      int
	StateBackend string // memory or redis
}

// PenaltyConfig contains penalty pipeline configuration
type PenaltyConfig struct {
	MinDisplacementKm float64
	TiersFile         string
	Tiers             []PenaltyTier
	CacheBackend      string // memory or redis
	PositionTTL       time.Duration
	StoreBackend      string // kv, postgres or memory
	Partitions        int
}
