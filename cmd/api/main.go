// @title AI Wiki Quiz Generator API
// @version 1.0.0
// @description Generate educational quizzes from Wikipedia articles using AI.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "wiki-quiz/cmd/api/docs"
	"wiki-quiz/internal/adapter/llm"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/scraper"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.GetDatabaseURL())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Database initialized", zap.String("driver", db.DriverName()))

	quizCache, redisClient := newQuizCache(ctx, cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	app := newApp(cfg, db, quizCache)

	go func() {
		<-ctx.Done()
		appLogger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server stopped", zap.Error(err))
	}
}

// newQuizCache returns a Redis-backed cache when an address is configured
// and reachable. Otherwise quizzes are read straight from the database.
func newQuizCache(ctx context.Context, cfg config.RedisConfig) (domain.Cache, *redis.Client) {
	if cfg.Address == "" {
		logger.Get().Info("Redis address not set, quiz cache disabled")
		return cache.NoopCache{}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Get().Warn("Redis unavailable, quiz cache disabled", zap.Error(err))
		return cache.NoopCache{}, nil
	}
	logger.Get().Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return cache.NewRedisCache(client), client
}

func newApp(cfg *config.Config, db *sqlx.DB, quizCache domain.Cache) *fiber.App {
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	articleScraper := scraper.NewWikipediaScraper(cfg.Scraper)
	generator := quizgen.NewQuizGenerator(llm.NewProvider(cfg.LLM), cfg.LLM.Temperature)
	records := service.NewQuizRecordCache(quizCache, quizRepository, cfg.Redis.QuizTTL)

	quizService := service.NewQuizService(articleScraper, generator, quizRepository, txManager, records)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		AppName:      "wiki-quiz",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		// Fiber rejects credentials combined with a wildcard origin.
		AllowCredentials: cfg.Server.CORSAllowOrigins != "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	quizHandler.RegisterRoutes(app)

	return app
}
