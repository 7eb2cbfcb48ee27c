package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/erp-stock-api/internal/application/audit"
	"github.com/jhoicas/erp-stock-api/internal/application/product"
	"github.com/jhoicas/erp-stock-api/internal/application/stock"
	"github.com/jhoicas/erp-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/erp-stock-api/internal/interfaces/http"
	"github.com/jhoicas/erp-stock-api/pkg/config"
	"github.com/jhoicas/erp-stock-api/pkg/logger"
	"github.com/jhoicas/erp-stock-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Prefix)
	}

	// Auditoría post-commit: worker en background con buffer acotado.
	activityRepo := postgres.NewActivityLogRepository(pool)
	dispatcher := audit.NewDispatcher(activityRepo, log, m, cfg.Audit.BufferSize)
	dispatcher.Start()
	defer dispatcher.Close()

	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := product.NewUseCase(productRepo, dispatcher)
	adjustmentUC := stock.NewAdjustmentUseCase(txRunner, dispatcher, m)
	movementUC := stock.NewMovementUseCase(txRunner, dispatcher, m)
	reservationUC := stock.NewReservationUseCase(txRunner, dispatcher, m)
	queryUC := stock.NewQueryUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if m != nil {
		app.Use(httpRouter.MetricsMiddleware(m))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.SetupRoutes(app, httpRouter.RouterDeps{
		JWTSecret:    cfg.JWT.Secret,
		Products:     httpRouter.NewProductHandler(productUC),
		Stock:        httpRouter.NewStockHandler(adjustmentUC, movementUC, queryUC),
		Reservations: httpRouter.NewReservationHandler(reservationUC, queryUC),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
