package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/Importador-api/internal/application/importer"
	"github.com/jhoicas/Importador-api/internal/infrastructure/download"
	"github.com/jhoicas/Importador-api/internal/infrastructure/media"
	"github.com/jhoicas/Importador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Importador-api/internal/infrastructure/source"
	"github.com/jhoicas/Importador-api/pkg/config"
	"github.com/jhoicas/Importador-api/pkg/logger"
)

// importer ejecuta un run de importación único desde la línea de comandos y
// escribe el resumen como JSON en stdout. Sale con código 1 si el run
// registró errores.
func main() {
	var (
		file       = flag.String("file", "", "ruta del archivo CSV a importar (requerido)")
		batchSize  = flag.Int("batch", 0, "tamaño de lote (0 = valor de configuración)")
		updateOnly = flag.Bool("update-only", false, "solo actualizar clientes existentes")
		avatars    = flag.Bool("avatars", false, "descargar e importar avatares")
	)
	flag.Parse()
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	settings := importer.DefaultSettings()
	settings.KeyFields = cfg.Import.KeyFields
	settings.BatchSize = cfg.Import.BatchSize
	settings.AutomaticNumbering = cfg.Import.AutomaticNumber
	settings.AvatarsEnabled = cfg.Import.AvatarsEnabled || *avatars
	settings.AvatarDownloadDir = cfg.Import.AvatarDownloadDir
	settings.UpdateOnly = *updateOnly
	if *batchSize > 0 {
		settings.BatchSize = *batchSize
	}

	src, err := source.NewCSVRowSource(*file, settings.BatchSize)
	if err != nil {
		log.Fatal().Err(err).Str("archivo", *file).Msg("abrir origen CSV")
	}
	defer src.Close()

	engine := importer.NewEngine(importer.Deps{
		Source: src,
		Tx:     postgres.NewTxRunner(pool),
		Repos: importer.Repos{
			Customers:  postgres.NewCustomerRepository(pool),
			Attributes: postgres.NewGenericAttributeRepository(pool),
			Pictures:   postgres.NewPictureRepository(pool),
		},
		Countries:  postgres.NewCountryRepository(pool),
		States:     postgres.NewStateProvinceRepository(pool),
		Roles:      postgres.NewCustomerRoleRepository(pool),
		Affiliates: postgres.NewAffiliateRepository(pool),
		Downloader: download.NewHTTPDownloader(30 * time.Second),
		Media:      media.NewService(),
		Notifier:   importer.NewLogNotifier(log),
		Settings:   settings,
		Log:        log,
	})

	res, err := engine.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("la importación no pudo arrancar")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Error().Err(err).Msg("escribir resumen")
	}
	if res.HasErrors() {
		os.Exit(1)
	}
}
