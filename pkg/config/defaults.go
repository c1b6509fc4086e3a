package config

import "time"

const (
	DefaultPort     = "5001"
	DefaultLogLevel = "info"

	DefaultLeaseDuration = 5 * time.Minute
	DefaultSweepInterval = 1 * time.Minute
	DefaultCatalogPath   = ""

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaBrokers    = ""
	DefaultKafkaEventTopic = "reservation-events"
)
