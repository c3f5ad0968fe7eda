package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Alquiler-api/internal/application/billing"
	"github.com/jhoicas/Alquiler-api/internal/application/inventory"
	infrapdf "github.com/jhoicas/Alquiler-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Alquiler-api/internal/interfaces/http"
	"github.com/jhoicas/Alquiler-api/pkg/config"
	"github.com/jhoicas/Alquiler-api/pkg/logger"
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
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	draftRepo := postgres.NewDraftRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	renderer := infrapdf.NewMarotoInvoiceRenderer(infrapdf.CompanyInfo{
		Name:    cfg.Company.Name,
		Tagline: cfg.Company.Tagline,
	})

	customerUC := billing.NewCustomerUseCase(customerRepo)
	equipmentUC := inventory.NewEquipmentUseCase(equipmentRepo)
	cartBuilder := billing.NewCartBuilder(customerRepo, equipmentRepo)
	commitUC := billing.NewCommitUseCase(txRunner, customerRepo, renderer, log)
	reportsUC := billing.NewReportsUseCase(invoiceRepo)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, renderer)
	draftUC := billing.NewDraftUseCase(draftRepo, cartBuilder)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la generación del PDF puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		EquipmentUC: equipmentUC,
		CartBuilder: cartBuilder,
		CommitUC:    commitUC,
		ReportsUC:   reportsUC,
		PDFUC:       pdfUC,
		DraftUC:     draftUC,
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
