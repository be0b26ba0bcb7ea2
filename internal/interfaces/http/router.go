package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/auth"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *inventory.InventoryUseCase
	TransferUC  *transfer.TransferUseCase
	AuthUC      *auth.AuthUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	api.Get("/health", Health)

	// Auth (público)
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
		// Token opcional: solo identifica al actor del historial
		api.Use(OptionalAuth(deps.AuthUC))
	}

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.InventoryUC)
	transferHandler := NewTransferHandler(deps.TransferUC)

	// Rutas fijas antes de /:id
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/export", transferHandler.Export)
	products.Get("/report.pdf", transferHandler.Report)
	products.Post("/import", transferHandler.Import)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/history", productHandler.History)
}
