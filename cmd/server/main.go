package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tomasrg/jobhunter/internal/config"
	"github.com/tomasrg/jobhunter/internal/domain/fiber/handler"
	applog "github.com/tomasrg/jobhunter/internal/logger"
	"github.com/tomasrg/jobhunter/internal/middleware"
	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/repository"
	"github.com/tomasrg/jobhunter/internal/scheduler"
	"github.com/tomasrg/jobhunter/internal/service"
	"github.com/tomasrg/jobhunter/internal/source"
	"github.com/tomasrg/jobhunter/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	production := appConfig.Env == "production"

	zlog, err := applog.New(production, !production)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !production,
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return production
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(zlog)

	jobRepo := repository.NewJobRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	embedder := service.NewEmbeddingService(zlog)
	sources := source.Registry(zlog)

	pipeline := usecase.NewPipelineUsecase(jobRepo, profileRepo, embedder, sources, zlog)

	handler.NewJobHandler(jobRepo, profileRepo, embedder).RegisterRoutes(app)
	handler.NewPipelineHandler(pipeline).RegisterRoutes(app)
	handler.NewProfileHandler(profileRepo).RegisterRoutes(app)
	handler.NewApplicationHandler(appRepo, jobRepo).RegisterRoutes(app)

	sched := scheduler.New(pipeline, zlog)
	if err := sched.Start(appConfig.ScrapeIntervalHours); err != nil {
		zlog.Fatal("could not start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	zlog.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func ConnectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// pgvector must exist before AutoMigrate sees the vector column type.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		zlog.Fatal("could not enable pgvector extension", zap.Error(err))
	}

	err = db.AutoMigrate(&model.Job{}, &model.UserProfile{}, &model.Application{})
	if err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}
