package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/mygameon-ops/internal/application/analytics"
	"github.com/jhoicas/mygameon-ops/internal/application/revenue"
	"github.com/jhoicas/mygameon-ops/internal/application/shift"
	infrapdf "github.com/jhoicas/mygameon-ops/internal/infrastructure/pdf"
	"github.com/jhoicas/mygameon-ops/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/mygameon-ops/internal/infrastructure/redis"
	"github.com/jhoicas/mygameon-ops/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/mygameon-ops/internal/interfaces/http"
	"github.com/jhoicas/mygameon-ops/pkg/config"
	"github.com/jhoicas/mygameon-ops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	// La medianoche de negocio es la de APP_TIMEZONE, no la del host.
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}
	time.Local = loc

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Candado de inicio de turnos: sólo con Redis configurado.
	var shiftLocker shift.Locker
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		shiftLocker = infraredis.NewShiftLocker(rdb, 0)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("candado de turnos en Redis activo")
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: el turno único queda a cargo del índice de la base")
	}

	revenueRepo := postgres.NewDailyRevenueRepository(pool, cfg.Import.BatchSize)
	shiftRepo := postgres.NewAdminShiftRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Import.BatchSize)
	parser := spreadsheet.NewParser(log.Component("spreadsheet"))

	revenueUC := revenue.NewUseCase(revenueRepo, txRunner, parser, log.Component("revenue"))
	allocationUC := revenue.NewAllocationUseCase(revenueRepo, txRunner, parser, log.Component("allocation"))
	shiftUC := shift.NewUseCase(shiftRepo, shiftLocker, log.Component("shift"))

	// PDF: resumen financiero del período
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	summaryUC := analytics.NewSummaryUseCase(revenueRepo, shiftRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxUploadBytes() + 1024*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MyGameON Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RevenueUC:      revenueUC,
		AllocationUC:   allocationUC,
		ShiftUC:        shiftUC,
		SummaryUC:      summaryUC,
		JWTSecret:      cfg.JWT.Secret,
		MaxUploadBytes: int64(cfg.Import.MaxUploadBytes()),
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
