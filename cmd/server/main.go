package main

import (
	"context"
	"log"

	"github.com/anonto42/warbler/internal/repositories"
	"github.com/anonto42/warbler/internal/repositories/memory"
	"github.com/anonto42/warbler/internal/router"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/session"
	"github.com/anonto42/warbler/pkg/config"
	"github.com/anonto42/warbler/pkg/firebase"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("Failed to initialize databases: %s", err.Error())
	}
	defer db.CloseDB()

	deps := router.Dependencies{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SecureCookies:  !cfg.IsDevelopment(),
	}

	if db.Postgres != nil {
		deps.Repos = services.Repositories{
			Users:    repositories.NewPostgresUserRepository(db.Postgres),
			Messages: repositories.NewPostgresMessageRepository(db.Postgres),
			Follows:  repositories.NewPostgresFollowRepository(db.Postgres),
			Likes:    repositories.NewPostgresLikeRepository(db.Postgres),
		}
		deps.Health = db
	} else {
		store := memory.NewStore()
		deps.Repos = services.Repositories{Users: store, Messages: store, Follows: store, Likes: store}
		logger.Warn("Using in-memory repositories; data is lost on restart.")
	}

	var sessionStore session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendMongo:
		sessionStore, err = session.NewMongoStore(ctx, db.Mongo.Database(cfg.MongoDatabase))
		if err != nil {
			logger.Sugar().Fatalf("Failed to initialize session store: %s", err.Error())
		}
	case config.SessionBackendRedis:
		sessionStore = session.NewRedisStore(db.Redis)
	default:
		sessionStore = session.NewMemoryStore()
	}
	deps.Sessions = session.NewManager(logger, sessionStore, cfg.SecretKey, cfg.SessionTTL, deps.SecureCookies)
	logger.Sugar().Infof("Session store configured (%s).", cfg.SessionBackend)

	// Initialize Firebase
	authClient, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Sugar().Fatalf("Failed to initialize Firebase: %s", err.Error())
	}
	if authClient != nil {
		deps.Verifier = authClient
		logger.Info("Firebase sign-in enabled.")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, deps)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, deps); err != nil {
		logger.Sugar().Fatalf("Failed to set up routes: %s", err.Error())
	}

	// Start server
	logger.Sugar().Infof("Listening on :%s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
