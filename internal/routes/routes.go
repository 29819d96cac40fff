package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/identity"
	"github.com/openshelf/openshelf/internal/middleware"
	"github.com/openshelf/openshelf/internal/product"
	"github.com/openshelf/openshelf/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Outside of
// development both backing stores are mandatory; in dev missing stores fall
// back to in-memory substitutes (tokens excepted — they always need Redis).
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	if d.Cache == nil {
		return fmt.Errorf("redis is required for the session token store")
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	var userRepo identity.Repository
	var productRepo product.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
		productRepo = product.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
		productRepo = product.NewMemoryRepository()
	}

	ids := identity.NewService(userRepo)
	tokens := token.NewRedisStore(d.Cache, d.Cfg.TokenTTL)
	authSvc := auth.NewService(ids, tokens, d.Logger)
	authHandler := auth.NewHandler(ids, authSvc, d.Logger)
	productHandler := product.NewHandler(product.NewService(productRepo))

	bearer := middleware.BearerAuth(authSvc, d.Logger)
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin)

	RegisterAuthRoutes(app, authHandler, bearer, rateLimiter)
	RegisterProductRoutes(app, productHandler, bearer)

	return nil
}
