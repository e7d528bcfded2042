package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netyark/mall-api/internal/application/auth"
	"github.com/netyark/mall-api/internal/application/inventory"
	"github.com/netyark/mall-api/internal/application/order"
	"github.com/netyark/mall-api/internal/application/usecase"
	"github.com/netyark/mall-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	MessageUC  *usecase.MessageUseCase
	OrderUC    *order.UseCase
	StockUC    *inventory.StockUseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login is public, register requires an admin token
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Contact form (public)
	messageHandler := NewMessageHandler(deps.MessageUC)
	api.Post("/messages", messageHandler.Create)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)

	// Inventory: manual stock mutations and ledger projections
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.ProductUC)
	invGroup.Post("/restock", inventoryHandler.Restock)
	invGroup.Post("/reduce", inventoryHandler.Reduce)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/logs", inventoryHandler.ListLogs)
	invGroup.Get("/logs/:id", inventoryHandler.GetLog)
	invGroup.Get("/product/:id", inventoryHandler.ProductLogs)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/out-of-stock", inventoryHandler.OutOfStock)

	// Messages (admin side)
	messages := protected.Group("/messages")
	messages.Get("/", messageHandler.List)
	messages.Put("/:id/read", messageHandler.MarkRead)
	messages.Delete("/:id", messageHandler.Delete)
}
