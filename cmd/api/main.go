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
	appanalytics "github.com/jhoicas/Terrenos-api/internal/application/analytics"
	"github.com/jhoicas/Terrenos-api/internal/application/auth"
	"github.com/jhoicas/Terrenos-api/internal/application/payments"
	"github.com/jhoicas/Terrenos-api/internal/application/sales"
	"github.com/jhoicas/Terrenos-api/internal/application/usecase"
	"github.com/jhoicas/Terrenos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Terrenos-api/internal/interfaces/http"
	"github.com/jhoicas/Terrenos-api/pkg/config"
	"github.com/jhoicas/Terrenos-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	pieceRepo := postgres.NewPieceRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	instRepo := postgres.NewInstallmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(clientRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo, pieceRepo)
	offerUC := usecase.NewOfferUseCase(offerRepo)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, clientRepo, batchRepo, pieceRepo, offerRepo)
	confirmSaleUC := sales.NewConfirmSaleUseCase(txRunner, saleRepo, offerRepo)
	cancelSaleUC := sales.NewCancelSaleUseCase(txRunner, saleRepo)
	getSaleUC := sales.NewGetSaleUseCase(saleRepo, instRepo)
	recordPaymentUC := payments.NewRecordPaymentUseCase(txRunner)
	financeReportUC := appanalytics.NewFinanceReportUseCase(saleRepo, instRepo, userRepo, batchRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// (requiere el spec generado con `swag init` en ./docs)
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Terrenos API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ClientUC:      clientUC,
		BatchUC:       batchUC,
		OfferUC:       offerUC,
		CreateSale:    createSaleUC,
		ConfirmSale:   confirmSaleUC,
		CancelSale:    cancelSaleUC,
		GetSale:       getSaleUC,
		RecordPayment: recordPaymentUC,
		FinanceReport: financeReportUC,
		JWTSecret:     cfg.JWT.Secret,
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
