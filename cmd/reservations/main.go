package main

import (
	"stockhold/internal/reservations/catalog"
	"stockhold/internal/reservations/handler"
	"stockhold/internal/reservations/ledger"
	"stockhold/internal/reservations/registry"
	"stockhold/internal/reservations/service"
	"stockhold/internal/reservations/sweeper"
	"stockhold/internal/reservations/validator"
	"stockhold/pkg/app"
	"stockhold/pkg/clock"
	"stockhold/pkg/config"
	"stockhold/pkg/kafka"
	kafka_config "stockhold/pkg/kafka/config"
	kafka_middleware "stockhold/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting Reservations service")

	items, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		cfg.Log.Fatal("Failed to load catalog", "error", err, "path", cfg.CatalogPath)
	}
	cfg.Log.Info("Catalog loaded", "items", len(items))

	invLedger := ledger.New(items)
	clk := clock.NewSystem()
	leaseRegistry := registry.New(invLedger, clk, registry.WithLeaseDuration(cfg.LeaseDuration))

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	reservationService := initServices(cfg, invLedger, leaseRegistry, producer)

	leaseSweeper := sweeper.New(reservationService, clk, cfg.SweepInterval, cfg.Log)
	leaseSweeper.Start()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewHealthHandler(invLedger, cfg.Log),
	)
	serverApp.RegisterWorker(leaseSweeper)
	serverApp.Run()
}

func initServices(
	cfg *config.Config,
	invLedger *ledger.Ledger,
	leaseRegistry *registry.Registry,
	producer *kafka.Producer,
) service.ReservationService {
	reservationValidator := validator.NewReservationValidator(cfg.Log)

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	reservationService := service.NewReservationService(
		invLedger,
		leaseRegistry,
		reservationValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized",
		"lease_duration", cfg.LeaseDuration,
		"sweep_interval", cfg.SweepInterval,
	)
	return reservationService
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.EventsEnabled() {
		cfg.Log.Info("Kafka brokers not configured, lease events disabled")
		return nil
	}

	producerCfg, err := kafka_config.Load(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(producerCfg, cfg.KafkaEventTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.ProducerLogging(cfg.Log))

	cfg.Log.Info("Kafka producer initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaEventTopic,
	)
	return producer
}
