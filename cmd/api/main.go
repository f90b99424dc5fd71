package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/moneytrack/moneytrack-backend/internal/auth"
	"github.com/moneytrack/moneytrack-backend/internal/billing"
	"github.com/moneytrack/moneytrack-backend/internal/config"
	"github.com/moneytrack/moneytrack-backend/internal/dashboard"
	"github.com/moneytrack/moneytrack-backend/internal/envelope"
	"github.com/moneytrack/moneytrack-backend/internal/goal"
	"github.com/moneytrack/moneytrack-backend/internal/invoice"
	"github.com/moneytrack/moneytrack-backend/internal/logger"
	"github.com/moneytrack/moneytrack-backend/internal/router"
	"github.com/moneytrack/moneytrack-backend/internal/transaction"
	"github.com/moneytrack/moneytrack-backend/internal/upload"
	"github.com/moneytrack/moneytrack-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(!cfg.IsProduction(), cfg.LogLevel); err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Get()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("error creating pgx pool", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		zlog.Fatal("error pinging database", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		zlog.Fatal("error creating upload directory", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadBytes) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			} else {
				zlog.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}

			return envelope.Error(c, code, message)
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(logger.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Static("/uploads", cfg.UploadDir)

	uploads := &upload.DiskStore{Root: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes}
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpires)

	userRepo := &user.Repository{Pool: pool}
	txRepo := &transaction.Repository{Pool: pool}
	goalRepo := &goal.Repository{Pool: pool}

	authMW := auth.Required(tokens, userRepo)

	r := &router.Router{
		AuthHandler:        auth.NewHandler(userRepo, tokens),
		UserHandler:        user.NewHandler(userRepo, uploads),
		TransactionHandler: transaction.NewHandler(txRepo, uploads),
		GoalHandler:        goal.NewHandler(goalRepo),
		InvoiceHandler:     invoice.NewHandler(invoice.NewMemoryStore()),
		BillingHandler:     billing.NewHandler(billing.NewMemoryStore()),
		DashboardHandler:   dashboard.NewHandler(dashboard.DemoProvider{}),
		AuthMW:             authMW,
		AuthLimiter:        router.RateLimitAuth(cfg.AuthRateMax, cfg.RateWindow),
		WriteLimit:         router.RateLimitWrite(cfg.WriteRateMax, cfg.RateWindow),
	}
	r.RegisterRoutes(app)

	zlog.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
