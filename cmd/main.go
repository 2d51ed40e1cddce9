package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/code-round.net/internal/adapter/catalog"
	"gitlab.com/code-round.net/internal/adapter/crypto"
	"gitlab.com/code-round.net/internal/adapter/filebucket"
	"gitlab.com/code-round.net/internal/adapter/judge0"
	"gitlab.com/code-round.net/internal/adapter/logging"
	"gitlab.com/code-round.net/internal/adapter/memory"
	"gitlab.com/code-round.net/internal/adapter/minio"
	"gitlab.com/code-round.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/code-round.net/internal/adapter/redis/ratelimit"
	"gitlab.com/code-round.net/internal/adapter/redis/resultport"
	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/core/services/bucket"
	"gitlab.com/code-round.net/internal/core/services/execution"
	"gitlab.com/code-round.net/internal/core/services/grading"
	"gitlab.com/code-round.net/internal/core/services/harness"
	logger2 "gitlab.com/code-round.net/internal/global/logger"
	"gitlab.com/code-round.net/internal/handlers"
	http2 "gitlab.com/code-round.net/internal/http"
)

const serviceName = "code-round"

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// rebuilt after the env file so LOG_LEVEL from it applies
	logger2.Logger = logging.NewZapLogger()
	logger := logger2.Logger
	defer logger.Sync()
	logger.Info("Starting code execution service")

	sysCfg, err := config.NewSystemConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctxBg := context.Background()

	// problem registry and harness templates are built once and shared read-only
	registry, err := catalog.NewCatalog(sysCfg.CatalogConfig)
	if err != nil {
		logger.Error("Failed to load problem catalog", "error", err)
		os.Exit(1)
	}
	profiles, err := harness.LoadTemplates(harness.TemplatesFrom(sysCfg.CatalogConfig.TemplateDir), logger)
	if err != nil {
		logger.Error("Some templates failed to load, those languages run unwrapped", "error", err)
	}
	compiler := harness.NewCompiler(profiles, harness.DefaultRunners(), logger)

	// SECONDARY PORTS
	var (
		results     secondary.ResultRepository     = memory.NewResultStore(sysCfg.RedisConfig.ResultTTL)
		limiter     secondary.RateLimiter          = memory.NewRateLimiter()
		submissions secondary.SubmissionRepository = memory.NewSubmissionLedger()
	)

	if sysCfg.RedisConfig.Enabled() {
		redisClient := setupRedis(sysCfg.RedisConfig)
		defer redisClient.Close()
		if err := redisClient.Ping(ctxBg).Err(); err != nil {
			logger.Warn("Redis not reachable at startup", "addr", sysCfg.RedisConfig.Url, "error", err)
		}
		results = resultport.NewResultRepository(redisClient, sysCfg.RedisConfig.ResultTTL, logger)
		limiter = ratelimit.NewRedisLimiter(redisClient, 0)
	}

	if sysCfg.PostgresConfig.Enabled() {
		db, err := setupDatabase(sysCfg.PostgresConfig)
		if err != nil {
			logger.Error("Failed to set up database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		repo := submissionrepository.NewSubmissionRepository(db, logger, sysCfg.PostgresConfig.Schema)
		if err := repo.EnsureSchema(ctxBg); err != nil {
			logger.Error("Failed to prepare submissions table", "error", err)
			os.Exit(1)
		}
		submissions = repo
	}

	store, err := setupBucket(ctxBg, sysCfg.BucketConfig)
	if err != nil {
		logger.Error("Failed to set up submission bucket", "error", err)
		os.Exit(1)
	}

	judge := judge0.NewClient(sysCfg.JudgeConfig)

	// primary ports
	var tokens primary.TokenService
	if sysCfg.JwtConfig.Enabled() {
		tokens = crypto.NewJWTService(sysCfg.JwtConfig)
	}

	// services
	bucketSvc := bucket.NewBucketService(store, bucket.NewClock(nil), logger)
	executionSvc := execution.NewExecutionService(
		registry,
		compiler,
		judge,
		grading.NewGrader(logger),
		bucketSvc,
		results,
		submissions,
		logger,
	)

	middleware := handlers.New(tokens, limiter, sysCfg.RateLimitConfig, logger)
	serviceProvider := http2.NewServiceProvider(executionSvc, registry, compiler, middleware)

	// server
	httpServer := http2.NewServer(sysCfg.HttpConfig, serviceName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	httpServer.Start(ctxBg)
	logger.Info("Judge endpoint", "url", sysCfg.JudgeConfig.Url, "timeout", sysCfg.JudgeConfig.Timeout)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 30*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// setupBucket picks the raw-code store for submissions
func setupBucket(ctx context.Context, cfg *config.BucketConfig) (secondary.SubmissionBucket, error) {
	if cfg.Backend != config.BucketBackendMinio {
		return filebucket.NewFileBucket(cfg.Dir), nil
	}
	store, err := minio.NewMinioBucket(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// InitReader loads <env>.env, the env name comes from the first argument and defaults to local
func InitReader() {
	environment := "local"
	if len(os.Args) >= 2 {
		environment = os.Args[1]
	}

	if err := godotenv.Load(environment + ".env"); err != nil {
		logger2.Warn("No env file loaded, using process environment", "file", environment+".env", "error", err)
	}
}
