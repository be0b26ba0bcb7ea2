package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/inventory-tracker/internal/application/auth"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/transfer"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/inventory-tracker/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/inventory-tracker/internal/interfaces/http"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
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
	if err := run(cfg, log, openStore); err != nil {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
}

// run arma las dependencias y sirve HTTP hasta recibir SIGINT/SIGTERM.
// Los defer registrados se ejecutan también cuando falla el arranque.
func run(cfg *config.Config, log *logger.Logger, open storeOpener) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer st.close()

	// Eventos de stock: Kafka solo si hay brokers configurados
	var publisher inventory.StockEventPublisher = inventory.NopPublisher{}
	if cfg.Kafka.Enabled() {
		producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor Kafka")
			}
		}()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos de stock habilitada")
	}

	inventoryUC := inventory.NewInventoryUseCase(st.txRunner, st.productRepo, st.logRepo, publisher, log, cfg.Auth.AuditActor)
	if cfg.DB.Seed {
		if _, err := inventoryUC.SeedIfEmpty(ctx); err != nil {
			return fmt.Errorf("cargar catálogo de ejemplo: %w", err)
		}
	}

	// PDF: reporte de existencias
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	transferUC := transfer.NewTransferUseCase(inventoryUC, pdfGenerator, log)

	creds, err := auth.NewCredentials(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.PasswordHash)
	if err != nil {
		return fmt.Errorf("credenciales de demostración: %w", err)
	}
	authUC := auth.NewAuthUseCase(creds, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Inventory Tracker API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("documento swagger no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC: inventoryUC,
		TransferUC:  transferUC,
		AuthUC:      authUC,
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
	return nil
}
