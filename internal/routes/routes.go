package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/brandonscollins/familymoney/internal/auth"
	"github.com/brandonscollins/familymoney/internal/child"
	"github.com/brandonscollins/familymoney/internal/config"
	"github.com/brandonscollins/familymoney/internal/identity"
	"github.com/brandonscollins/familymoney/internal/ledger"
	"github.com/brandonscollins/familymoney/internal/logging"
	"github.com/brandonscollins/familymoney/internal/middleware"
	"github.com/brandonscollins/familymoney/internal/notification"
	"github.com/brandonscollins/familymoney/internal/query"
	"github.com/brandonscollins/familymoney/internal/submission"
)

const loginPath = "/api/v1/auth/login"

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB presence outside of dev, even though main also checks.
	if !config.IsDev(d.Cfg.AppEnv) && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Storage: Postgres when configured, in-memory otherwise.
	var (
		children ledger.ChildRepository
		store    ledger.TransactionStore
	)
	if d.DB != nil {
		pg := ledger.NewPostgresStore(d.DB)
		children, store = pg, pg
	} else {
		mem := ledger.NewMemoryStore()
		children, store = mem, mem
	}

	var memberRepo identity.Repository
	if d.DB != nil {
		memberRepo = identity.NewPostgresRepository(d.DB)
	} else {
		memberRepo = identity.NewMemoryRepository()
	}

	// Services and handlers
	engine := ledger.NewEngine(children, store)
	notifier := notification.NewLoggerNotifier(logging.WithComponent(d.Logger, "notification"))
	gateway := submission.NewGateway(engine, notifier, submission.Config{
		AllowGuests:    d.Cfg.AllowGuestTransactions,
		MinAmountCents: d.Cfg.MinAmountCents,
		LoginPath:      loginPath,
	}, logging.WithComponent(d.Logger, "submission"))

	childSvc := child.NewService(children, notifier)
	querySvc := query.NewService(engine, d.Cfg.HistoryPageSize)
	memberSvc := identity.NewService(memberRepo)
	authSvc := auth.NewService(d.Cfg, memberRepo)

	childHandler := child.NewHandler(childSvc)
	submitHandler := submission.NewHandler(gateway)
	queryHandler := query.NewHandler(querySvc)
	memberHandler := identity.NewHandler(memberSvc)
	authHandler := auth.NewHandler(memberSvc, authSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
	api.Get("/settings/display", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"hide_header": d.Cfg.HideHeader,
			"header_type": d.Cfg.HeaderStyle,
		})
	})

	// Public routes
	RegisterMemberRoutes(api, memberHandler)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter, middleware.JWTAuth(d.Cfg, memberRepo))
	RegisterBalanceRoutes(api, queryHandler)

	// Transaction submission resolves the member when a token is present and
	// otherwise runs as a guest; the gateway decides whether guests may write.
	api.Post("/transactions", middleware.OptionalJWT(d.Cfg, memberRepo), submitHandler.Submit)

	// Child registry management requires authentication.
	protected := api.Group("", middleware.JWTAuth(d.Cfg, memberRepo))
	RegisterChildRoutes(protected, childHandler)

	return nil
}
