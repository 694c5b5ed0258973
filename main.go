package main

import (
	"Perkdraft/config"
	_ "Perkdraft/docs"
	"Perkdraft/middleware"
	"Perkdraft/routes"
	"Perkdraft/services/redis"
	"Perkdraft/services/rewards"
	"Perkdraft/services/session"
	socketio "Perkdraft/services/socket_io"
	"Perkdraft/services/store"
	"Perkdraft/sync"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Perkdraft API
// @version 1.0
// @description Gin-Gonic server for Perkdraft reward sessions
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if cfg.Prod {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog, err := rewards.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Error loading reward catalog: %v", err)
	}
	log.Printf("Catalog %s loaded: %d rewards, %d distinct types", cfg.CatalogPath, len(catalog.Items()), catalog.DistinctTypes())

	allocator, err := rewards.NewAllocator(catalog, rewards.DefaultRNG(), cfg.LuckPolicy())
	if err != nil {
		log.Fatalf("Error building reward allocator: %v", err)
	}

	var sessionStore store.SessionStore
	switch cfg.SessionStore {
	case config.StoreRedis:
		redisClient, err := config.Connect_redis(cfg)
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		log.Println("Connection to Redis successful")
		defer redis.CloseRedis(redisClient)
		sessionStore = redisClient
	default:
		memoryStore := store.NewMemoryStore()
		scheduler, err := store.StartSweeper(memoryStore, cfg.MemorySweepInterval)
		if err != nil {
			log.Fatalf("Error starting memory store sweeper: %v", err)
		}
		defer scheduler.Shutdown()
		sessionStore = memoryStore
		log.Println("Using in-memory session store")
	}

	opts := session.Options{
		SessionTTL:   cfg.SessionTTL,
		RetrievalTTL: cfg.PackCodeTTL,
	}

	if cfg.ArchiveResults {
		gormDB, err := config.ConnectGORM(cfg)
		if err != nil {
			log.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		log.Println("GORM Connected")

		// Only migrate in development or during deployment
		if cfg.MigratePostgres {
			log.Println("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(gormDB); err != nil {
				log.Printf("Warning: Database migration failed: %v", err)
			}
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()

		opts.Archiver = sync.NewSyncManager(gormDB)
	}

	manager := session.NewManager(sessionStore, allocator, opts)

	r := gin.Default()

	middleware.SetUpMiddleware(r, cfg)

	sio := socketio.NewMySocketServer()
	sio.Start(r, manager, cfg.AllowedOrigin())
	defer sio.Close()
	manager.SetNotifier(sio)

	routes.SetupRoutes(r, manager)

	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if cfg.UseHTTPS {
		if err := r.RunTLS(":"+port, cfg.CertFile, cfg.KeyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
