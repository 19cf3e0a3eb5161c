package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/spincash/spin_cash/internal/audit"
	"github.com/spincash/spin_cash/internal/config"
	"github.com/spincash/spin_cash/internal/games"
	"github.com/spincash/spin_cash/internal/identity"
	"github.com/spincash/spin_cash/internal/middleware"
	"github.com/spincash/spin_cash/internal/notification"
	"github.com/spincash/spin_cash/internal/session"
	"github.com/spincash/spin_cash/internal/withdrawals"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Stores and services
	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}

	var challenges identity.ChallengeStore
	if d.Cache != nil {
		challenges = identity.NewRedisChallengeStore(d.Cache)
	} else {
		challenges = identity.NewMemoryChallengeStore()
	}

	var sessions session.Store
	if d.Cache != nil {
		sessions = session.NewRedisStore(d.Cache)
	} else {
		sessions = session.NewMemoryStore()
	}

	var recorder audit.Recorder
	if d.DB != nil {
		recorder = audit.NewPostgresRecorder(d.DB)
	} else {
		recorder = audit.NewMemoryRecorder()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)

	identitySvc := identity.NewService(userRepo, challenges, notifier, identity.Options{
		DefaultCountryCode: d.Cfg.DefaultCountryCode,
		OTPTTL:             d.Cfg.OTPTTL,
		SignupBonus:        d.Cfg.SignupBonus,
	})
	gameSvc := games.NewService(userRepo, recorder)
	withdrawalSvc := withdrawals.NewService(withdrawalRepo(d, userRepo), recorder, notifier)

	identityHandler := identity.NewHandler(identitySvc, sessions)
	gameHandler := games.NewHandler(gameSvc)
	withdrawalHandler := withdrawals.NewHandler(withdrawalSvc)

	// API routes
	api := app.Group("/api")

	var otpLimiter fiber.Handler
	if d.Cache != nil {
		otpLimiter = middleware.OTPRateLimit(d.Cache, d.Cfg.OTPPerMinute, identitySvc.Canonical)
	}
	RegisterOTPRoutes(api, identityHandler, otpLimiter)

	sessionAuth := middleware.SessionAuth(sessions)
	api.Get("/me", sessionAuth, identityHandler.Me)
	api.Post("/play/spin", sessionAuth, gameHandler.Spin)
	api.Post("/play/scratch", sessionAuth, gameHandler.Scratch)

	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	if idem != nil {
		api.Post("/withdraw", sessionAuth, idem, withdrawalHandler.Create)
	} else {
		api.Post("/withdraw", sessionAuth, withdrawalHandler.Create)
	}

	RegisterAdminRoutes(api, d, identitySvc, withdrawalHandler, idem)

	// Everything else serves the client application.
	registerStaticFallback(app, d.Cfg.PublicDir)

	return nil
}

func withdrawalRepo(d Deps, users identity.Repository) withdrawals.Repository {
	if d.DB != nil {
		return withdrawals.NewPostgresRepository(d.DB)
	}
	return withdrawals.NewMemoryRepository(users)
}

// registerStaticFallback serves the client bundle and routes every unmatched
// non-API path to its entry document.
func registerStaticFallback(app *fiber.App, publicDir string) {
	app.Static("/", publicDir)
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return fiber.NewError(http.StatusNotFound, "route not found")
		}
		return c.SendFile(filepath.Join(publicDir, "index.html"))
	})
}
