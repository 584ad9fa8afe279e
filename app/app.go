package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"growthpath-insight/api"
	"growthpath-insight/cache"
	"growthpath-insight/config"
	"growthpath-insight/database"
	"growthpath-insight/llm"
	"growthpath-insight/personality"
	"growthpath-insight/realtime"
)

// App represents the main application
type App struct {
	config    *config.Config
	db        *database.Database
	rawDB     *database.DB
	redis     *cache.RedisClient
	store     *database.Store
	engine    *personality.Engine
	broker    *realtime.Broker
	refresher *PercentileRefresher
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
		db:     nil, // Will be initialized in Start()
		redis:  nil, // Will be initialized in Start()
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection
	fmt.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	// Second connection for the raw-SQL population scans
	rawDB, err := database.NewConnection(database.RawConfig{
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	})
	if err != nil {
		return fmt.Errorf("population connection failed: %w", err)
	}
	a.rawDB = rawDB

	// 2. Redis Connection
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)

	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Analysis caching disabled.")
	} else {
		a.redis = redisClient
	}

	// Initialize schema (AutoMigrate)
	a.store = database.NewStore(a.db, a.rawDB)
	if err := a.store.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 3. Initialize Realtime Broker
	a.broker = realtime.NewBroker()
	go a.broker.Run()

	// 4. Initialize LLM client if enabled
	var completer personality.Completer
	if a.config.LLM.Enabled {
		completer = llm.NewClient(
			a.config.LLM.Endpoint,
			a.config.LLM.APIKey,
			a.config.LLM.Model,
			a.config.LLM.Temperature,
			time.Duration(a.config.LLM.TimeoutSec)*time.Second,
		)
		log.Printf("✅ LLM Analysis ENABLED (Model: %s)", a.config.LLM.Model)
	} else {
		log.Println("ℹ️  LLM Analysis DISABLED, using rule-based fallback")
	}

	// 5. Wire up the personality engine
	var insightCache *cache.InsightCache
	if a.redis != nil {
		insightCache = cache.NewInsightCache(
			a.redis,
			time.Duration(a.config.Engine.AnalysisCacheTTLMinutes)*time.Minute,
			time.Duration(a.config.Engine.AnalysisCooldownMinutes)*time.Minute,
		)
	}

	a.engine = personality.NewEngine(a.store, completer, insightCache, a.broker, a.config.Engine)

	// 6. Start the nightly percentile refresher
	a.refresher = NewPercentileRefresher(a.engine, a.broker, a.config.Engine.RecalcSchedule)
	if err := a.refresher.Start(); err != nil {
		return fmt.Errorf("percentile refresher failed to start: %w", err)
	}

	// 7. Start API Server
	apiServer := api.NewServer(a.engine, a.store.ProfileRepository, a.broker)
	go func() {
		if err := apiServer.Start(a.config.APIPort); err != nil {
			log.Printf("⚠️  API Server failed: %v", err)
		}
	}()

	// 8. Wait for interrupt and perform graceful shutdown
	return a.gracefulShutdown()
}

// gracefulShutdown handles graceful shutdown with timeout
func (a *App) gracefulShutdown() error {
	// Setup signal handling
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	// Wait for interrupt signal
	<-interrupt
	fmt.Println("\n🛑 Shutdown signal received, initiating graceful shutdown...")

	// Shutdown tasks with timeout
	shutdownComplete := make(chan struct{})
	go func() {
		if a.refresher != nil {
			fmt.Println("🔄 Stopping percentile refresher...")
			a.refresher.Stop()
		}

		// Close database connections
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			} else {
				fmt.Println("✅ Database connection closed")
			}
		}
		if a.rawDB != nil {
			if err := a.rawDB.Close(); err != nil {
				log.Printf("Error closing population connection: %v", err)
			}
		}

		// Close Redis connection
		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				log.Printf("Error closing redis: %v", err)
			} else {
				fmt.Println("✅ Redis connection closed")
			}
		}

		close(shutdownComplete)
	}()

	// Wait for shutdown to complete or timeout
	select {
	case <-shutdownComplete:
		fmt.Println("✅ Graceful shutdown completed")
		return nil
	case <-time.After(10 * time.Second):
		fmt.Println("⚠️  Shutdown timeout exceeded, forcing exit")
		return fmt.Errorf("shutdown timeout")
	}
}
