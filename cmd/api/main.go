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

	_ "github.com/jhoicas/showroom-api/docs"
	"github.com/jhoicas/showroom-api/internal/application/usecase"
	"github.com/jhoicas/showroom-api/internal/infrastructure/csvexport"
	infrapdf "github.com/jhoicas/showroom-api/internal/infrastructure/pdf"
	"github.com/jhoicas/showroom-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/showroom-api/internal/interfaces/http"
	"github.com/jhoicas/showroom-api/pkg/config"
	"github.com/jhoicas/showroom-api/pkg/logger"
)

// @title        Showroom API
// @version      1.0
// @description  Catálogo de muebles: alta, edición, baja, listado filtrado y vista agrupada por categoría.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	// El almacén se abre en el primer uso: si no está disponible la API responde 503 y reintenta.
	store, err := storage.Open(*cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()
	log.Info().Str("driver", store.Driver).Str("location", store.Location).Msg("almacenamiento configurado")

	productUC := usecase.NewProductUseCase(store.Products, cfg.Catalog.CurrencySymbol)
	exportUC := usecase.NewCatalogExportUseCase(
		productUC,
		infrapdf.NewMarotoCatalogGenerator(),
		csvexport.NewEncoder(),
		cfg.Catalog.Title,
		cfg.Catalog.CurrencySymbol,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Showroom API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		ExportUC:  exportUC,
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
