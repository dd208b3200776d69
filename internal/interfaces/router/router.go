package router

import (
	authsvc "ledger-backend/internal/application/auth"
	ledgersvc "ledger-backend/internal/application/ledger"
	"ledger-backend/internal/config"
	"ledger-backend/internal/infrastructure/database"
	authhandler "ledger-backend/internal/interfaces/handlers/auth"
	healthhandler "ledger-backend/internal/interfaces/handlers/health"
	ledgerhandler "ledger-backend/internal/interfaces/handlers/ledger"
	"ledger-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		AllowDevHosts: cfg.Env != "production",
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: rdb}
	app.Get("/health", hh.Health)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		hh.DB = &gormDBPinger{db: db}
	}

	if db != nil {
		ah := &authhandler.Handlers{
			Service: &authsvc.Service{DB: db},
			Rdb:     rdb,
			Config:  sessionCfg,
		}
		app.Post("/register", ah.Register)
		app.Post("/login", ah.Login)
		app.Post("/logout", middleware.RequireAuth(), ah.Logout)

		lh := &ledgerhandler.Handlers{
			Service: &ledgersvc.Service{DB: db},
		}
		app.Post("/transactions", middleware.RequireAuth(), lh.CreateTransaction)
		app.Get("/transactions", middleware.RequireAuth(), lh.ListTransactions)
		app.Get("/holdings", middleware.RequireAuth(), lh.Holdings)
		app.Get("/summary", middleware.RequireAuth(), lh.Summary)
	}

	return app, db, rdb, nil
}
