package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvLeaseDuration = "LEASE_DURATION"
	EnvSweepInterval = "SWEEP_INTERVAL"
	EnvCatalogPath   = "CATALOG_PATH"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers    = "KAFKA_BROKERS"
	EnvKafkaEventTopic = "KAFKA_EVENT_TOPIC"
)
