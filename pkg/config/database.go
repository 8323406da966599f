package config

import (
	"context"
	"strconv"
	"time"

	"github.com/anonto42/warbler/internal/repositories"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the connections opened for the configured backends. Fields for backends
// that are not in use stay nil.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client
	logger   *zap.Logger
}

// InitDB opens Postgres unless DATABASE_URL=memory, and the session backend's client
// when it is mongo or redis.
func InitDB(ctx context.Context, cfg *Config, logger *zap.Logger) (*DB, error) {
	db := &DB{logger: logger}

	if cfg.DatabaseURL != MemoryDatabaseURL {
		pg, err := initPostgres(cfg)
		if err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
		}
		db.Postgres = pg
		logger.Info("Successfully connected to PostgreSQL!")

		if err := repositories.AutoMigrate(pg); err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to auto migrate models")
		}
		logger.Info("PostgreSQL auto-migrations completed.")
	}

	switch cfg.SessionBackend {
	case SessionBackendMongo:
		client, err := initMongo(ctx, cfg.MongoURI)
		if err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to connect to MongoDB")
		}
		db.Mongo = client
		logger.Info("Successfully connected to MongoDB!")
	case SessionBackendRedis:
		client, err := initRedis(ctx, cfg)
		if err != nil {
			db.CloseDB()
			return nil, errors.Wrap(err, "failed to connect to Redis")
		}
		db.Redis = client
		logger.Info("Successfully connected to Redis!")
	}

	return db, nil
}

func initPostgres(cfg *Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func initRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Health pings Postgres and reports connection pool figures.
func (db *DB) Health(ctx context.Context) map[string]string {
	stats := map[string]string{"driver": "postgres"}

	sqlDB, err := db.Postgres.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := sqlDB.Stats()
	stats["status"] = "up"
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	return stats
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.logger.Sugar().Errorf("Error getting SQL DB from GORM: %s", err.Error())
		} else if err := sqlDB.Close(); err != nil {
			db.logger.Sugar().Errorf("Error closing PostgreSQL connection: %s", err.Error())
		} else {
			db.logger.Info("PostgreSQL connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.logger.Sugar().Errorf("Error closing MongoDB connection: %s", err.Error())
		} else {
			db.logger.Info("MongoDB connection closed.")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			db.logger.Sugar().Errorf("Error closing Redis connection: %s", err.Error())
		} else {
			db.logger.Info("Redis connection closed.")
		}
	}
}
