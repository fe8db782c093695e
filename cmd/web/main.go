package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cotizaciones-web/internal/application/cotizaciones"
	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/infrastructure/api"
	"github.com/jhoicas/cotizaciones-web/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/cotizaciones-web/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/cotizaciones-web/internal/interfaces/http"
	"github.com/jhoicas/cotizaciones-web/internal/interfaces/http/view"
	"github.com/jhoicas/cotizaciones-web/pkg/config"
	"github.com/jhoicas/cotizaciones-web/pkg/logger"
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
		Str("api", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)
	clienteRepo := api.NewClienteRepository(client)
	cotizacionRepo := api.NewCotizacionRepository(client)

	// Descargas: Redis si está configurado; si no, memoria del proceso.
	var store ports.DocumentStore
	if cfg.Redis.Enabled() {
		rdb, err := cache.ConnectRedis(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = cache.NewRedisStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("descargas en Redis")
	} else {
		store = cache.NewMemoryStore(time.Minute)
	}

	crearUC := cotizaciones.NewCrearCotizacionUseCase(clienteRepo, cotizacionRepo, cotizacionRepo, store, cotizaciones.CrearConfig{
		PDFIntentos:       cfg.Flujo.PDFIntentos,
		PDFIntervalo:      cfg.Flujo.PDFIntervalo,
		DescargaTTL:       cfg.Descarga.TTL,
		EsperaRedireccion: cfg.Flujo.EsperaCreacion,
	}, log)
	editarUC := cotizaciones.NewEditarCotizacionUseCase(cotizacionRepo, cfg.Flujo.EsperaEdicion, log)
	historialUC := cotizaciones.NewHistorialUseCase(cotizacionRepo, cotizacionRepo, infrapdf.NewHistorialReport(cfg.App.Name), log)
	descargaUC := cotizaciones.NewDescargaUseCase(store)

	vista, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(vista, cfg.App.Name, log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Vista:     vista,
		Crear:     crearUC,
		Editar:    editarUC,
		Historial: historialUC,
		Descarga:  descargaUC,
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
