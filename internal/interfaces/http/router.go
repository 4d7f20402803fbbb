package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Terrenos-api/internal/application/analytics"
	"github.com/jhoicas/Terrenos-api/internal/application/auth"
	"github.com/jhoicas/Terrenos-api/internal/application/payments"
	"github.com/jhoicas/Terrenos-api/internal/application/sales"
	"github.com/jhoicas/Terrenos-api/internal/application/usecase"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ClientUC      *usecase.ClientUseCase
	BatchUC       *usecase.BatchUseCase
	OfferUC       *usecase.OfferUseCase
	CreateSale    *sales.CreateSaleUseCase
	ConfirmSale   *sales.ConfirmSaleUseCase
	CancelSale    *sales.CancelSaleUseCase
	GetSale       *sales.GetSaleUseCase
	RecordPayment *payments.RecordPaymentUseCase
	FinanceReport *analytics.FinanceReportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Batches y pieces (protegido; escrituras solo admin)
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", RequireRole(entity.RoleAdmin), batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", RequireRole(entity.RoleAdmin), batchHandler.Update)
	batches.Post("/:id/pieces", RequireRole(entity.RoleAdmin), batchHandler.AddPiece)
	batches.Get("/:id/pieces", batchHandler.ListPieces)

	// Offers (protegido; escrituras solo admin)
	offers := protected.Group("/offers")
	offerHandler := NewOfferHandler(deps.OfferUC)
	offers.Post("/", RequireRole(entity.RoleAdmin), offerHandler.Create)
	offers.Get("/", offerHandler.List)
	offers.Get("/:id", offerHandler.GetByID)
	offers.Put("/:id", RequireRole(entity.RoleAdmin), offerHandler.Update)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ConfirmSale, deps.CancelSale, deps.GetSale)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/confirm", saleHandler.Confirm)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Get("/:id/installments", saleHandler.ListInstallments)

	// Payments (protegido)
	paymentHandler := NewPaymentHandler(deps.RecordPayment)
	protected.Post("/payments", paymentHandler.Record)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.FinanceReport)
	dashboard.Get("/finance", dashboardHandler.Finance)
}
