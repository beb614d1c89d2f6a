package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/infrastructure/config"
	"flight-inventory-service/internal/infrastructure/persistence"
	"flight-inventory-service/internal/infrastructure/router"
	httpdelivery "flight-inventory-service/internal/interface/http"
	"flight-inventory-service/internal/interface/repository"
	"flight-inventory-service/internal/usecase/command"
	"flight-inventory-service/internal/usecase/indexsync"
	"flight-inventory-service/internal/usecase/query"
	"flight-inventory-service/pkg/logger"
	"flight-inventory-service/pkg/metrics"

	domainrepo "flight-inventory-service/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()
	log.Info("Starting Flight Inventory Service", "version", cfg.AppVersion)

	m := metrics.NewMetrics(cfg.MetricsName)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Entity store
	log.Info("Opening entity store", "driver", cfg.DBDriver)
	db, err := persistence.OpenStore(persistence.StoreOptions{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DBDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		Debug:           cfg.DBDebug,
	})
	if err != nil {
		log.Fatal("Failed to open entity store", "error", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate entity store", "error", err)
	}

	airlineRepository := repository.NewGormAirlineRepository(db)
	airportRepository := repository.NewGormAirportRepository(db)
	aircraftRepository := repository.NewGormAircraftRepository(db)
	flightRepository := repository.NewGormFlightRepository(db)

	// Search index
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	searchIndex, err := repository.NewMongoSearchIndex(ctx, persistence.GetDatabase(mongoClient, cfg.MongoDB))
	if err != nil {
		log.Fatal("Failed to prepare search index", "error", err)
	}

	projector := indexsync.NewStoreProjector(airlineRepository, airportRepository, aircraftRepository, flightRepository)
	sinks := []indexsync.Sink{indexsync.NewIndexSink(searchIndex)}

	// Optional read cache
	var cache domainrepo.EntityCache
	var closers []func() error
	if cfg.RedisAddrs != "" {
		redisClient, err := persistence.NewRedisClient(ctx, persistence.RedisOptions{
			Addrs:    cfg.RedisAddrs,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		cache = repository.NewRedisEntityCache(redisClient, cfg.CacheTTL)
		sinks = append(sinks, indexsync.NewCacheSink(cache))
		closers = append(closers, redisClient.Close)
		log.Info("Read cache enabled", "addrs", cfg.RedisAddrs)
	}

	// Optional change feed
	if cfg.KafkaBrokers != "" {
		kafkaClient, err := persistence.NewKafkaClient(ctx, persistence.KafkaOptions{
			Brokers:  cfg.KafkaBrokers,
			ClientID: cfg.KafkaClientID,
			Topic:    cfg.KafkaTopic,
		})
		if err != nil {
			log.Fatal("Failed to connect to Kafka", "error", err)
		}
		sinks = append(sinks, indexsync.NewFeedSink(repository.NewKafkaChangeFeed(kafkaClient, cfg.KafkaTopic)))
		closers = append(closers, func() error { kafkaClient.Close(); return nil })
		log.Info("Change feed enabled", "topic", cfg.KafkaTopic)
	}

	// Synchronization listener
	listener := indexsync.NewListener(projector, sinks, indexsync.Options{
		Workers:     cfg.SyncWorkers,
		MaxAttempts: cfg.SyncMaxAttempts,
		BaseBackoff: cfg.SyncBaseBackoff,
		MaxBackoff:  cfg.SyncMaxBackoff,
		Timeout:     cfg.StoreTimeout,
	}, log, m)
	listener.Start()
	if err := repository.RegisterCommitHooks(db, listener); err != nil {
		log.Fatal("Failed to register commit hooks", "error", err)
	}

	reconciler := indexsync.NewReconciler(listener, projector, searchIndex, cfg.SyncReconcileInterval, log)
	go reconciler.Run(ctx)

	// Command handlers, one per entity type
	reads := query.NewService(airlineRepository, airportRepository, aircraftRepository, flightRepository, searchIndex, cache, cfg.StoreTimeout, log)

	r := router.NewRouter(log)
	r.Register(httpdelivery.NewAirlineResource(
		command.NewHandler[entity.Airline](entity.KindAirline, cfg.StoreTimeout, log, m),
		command.NewAirlineStore(airlineRepository), reads, log))
	r.Register(httpdelivery.NewAirportResource(
		command.NewHandler[entity.Airport](entity.KindAirport, cfg.StoreTimeout, log, m),
		command.NewAirportStore(airportRepository), reads, log))
	r.Register(httpdelivery.NewAircraftResource(
		command.NewHandler[entity.Aircraft](entity.KindAircraft, cfg.StoreTimeout, log, m),
		command.NewAircraftStore(aircraftRepository), reads, log))
	r.Register(httpdelivery.NewFlightResource(
		command.NewHandler[entity.Flight](entity.KindFlight, cfg.StoreTimeout, log, m),
		command.NewFlightStore(flightRepository), reads, log))
	r.Register(httpdelivery.NewSearchHandler(reads, log))
	r.Register(httpdelivery.NewAdminHandler(reconciler, log))

	health := httpdelivery.NewHealthHandler(cfg.AppVersion, listener, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r.Handler(health.HealthCheckHandler, promhttp.Handler()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // stops the reconciler

	// no commands run past this point, so the listener can drain what is queued
	if err := listener.Close(shutdownCtx); err != nil {
		log.Error("Synchronization listener did not drain", "error", err, "pending", listener.Pending())
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Error("Client close error", "error", err)
		}
	}

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	if err := persistence.CloseStore(db); err != nil {
		log.Error("Entity store close error", "error", err)
	}

	log.Info("Flight Inventory Service stopped")
}
