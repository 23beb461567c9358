package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Importador-api/internal/application/auth"
	"github.com/jhoicas/Importador-api/internal/application/importer"
	infraamqp "github.com/jhoicas/Importador-api/internal/infrastructure/amqp"
	"github.com/jhoicas/Importador-api/internal/infrastructure/download"
	"github.com/jhoicas/Importador-api/internal/infrastructure/media"
	"github.com/jhoicas/Importador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Importador-api/internal/infrastructure/source"
	httpRouter "github.com/jhoicas/Importador-api/internal/interfaces/http"
	"github.com/jhoicas/Importador-api/pkg/config"
	"github.com/jhoicas/Importador-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	attributeRepo := postgres.NewGenericAttributeRepository(pool)
	pictureRepo := postgres.NewPictureRepository(pool)
	countryRepo := postgres.NewCountryRepository(pool)
	stateRepo := postgres.NewStateProvinceRepository(pool)
	roleRepo := postgres.NewCustomerRoleRepository(pool)
	affiliateRepo := postgres.NewAffiliateRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	downloader := download.NewHTTPDownloader(30 * time.Second)
	mediaSvc := media.NewService()

	// Eventos de cliente: AMQP si hay broker configurado, si no solo al log.
	var notifier importer.Notifier = importer.NewLogNotifier(log)
	if cfg.AMQP.URL != "" {
		amqpNotifier, err := infraamqp.NewNotifier(cfg.AMQP.URL, cfg.AMQP.Queue, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a AMQP")
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	}

	// Un run = un Engine sobre su propio origen de filas. Los repositorios se
	// comparten; el estado del run vive en el Engine.
	runner := func(ctx context.Context, opts importer.RunOptions) (*importer.Result, error) {
		src, err := source.NewCSVRowSource(opts.FilePath, opts.Settings.BatchSize)
		if err != nil {
			return nil, err
		}
		defer src.Close()

		engine := importer.NewEngine(importer.Deps{
			Source: src,
			Tx:     txRunner,
			Repos: importer.Repos{
				Customers:  customerRepo,
				Attributes: attributeRepo,
				Pictures:   pictureRepo,
			},
			Countries:  countryRepo,
			States:     stateRepo,
			Roles:      roleRepo,
			Affiliates: affiliateRepo,
			Downloader: downloader,
			Media:      mediaSvc,
			Notifier:   notifier,
			Settings:   opts.Settings,
			Log:        log,
		})
		return engine.Run(ctx)
	}
	jobs := importer.NewJobManager(runner, log)

	authUC := auth.NewAuthUseCase(customerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	defaults := importer.DefaultSettings()
	defaults.KeyFields = cfg.Import.KeyFields
	defaults.BatchSize = cfg.Import.BatchSize
	defaults.AutomaticNumbering = cfg.Import.AutomaticNumber
	defaults.AvatarsEnabled = cfg.Import.AvatarsEnabled
	defaults.AvatarDownloadDir = cfg.Import.AvatarDownloadDir

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		Jobs:            jobs,
		Customers:       customerRepo,
		DefaultSettings: defaults,
		JWTSecret:       cfg.JWT.Secret,
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
