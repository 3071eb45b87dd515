// Package router contains routing setup for the HTTP delivery.
package router

import (
	"darkstore/internal/delivery/http/middleware"
	"darkstore/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler   *handler.ProductHandler
	CheckoutHandler  *handler.CheckoutHandler
	WebhookHandler   *handler.WebhookHandler
	OrderHandler     *handler.OrderHandler
	CustomerHandler  *handler.CustomerHandler
	AnalyticsHandler *handler.AnalyticsHandler
	ChatHandler      *handler.ChatHandler
	AuthHandler      *handler.AuthHandler
	ContentHandler   *handler.ContentHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	productHandler   *handler.ProductHandler
	checkoutHandler  *handler.CheckoutHandler
	webhookHandler   *handler.WebhookHandler
	orderHandler     *handler.OrderHandler
	customerHandler  *handler.CustomerHandler
	analyticsHandler *handler.AnalyticsHandler
	chatHandler      *handler.ChatHandler
	authHandler      *handler.AuthHandler
	contentHandler   *handler.ContentHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		productHandler:   params.ProductHandler,
		checkoutHandler:  params.CheckoutHandler,
		webhookHandler:   params.WebhookHandler,
		orderHandler:     params.OrderHandler,
		customerHandler:  params.CustomerHandler,
		analyticsHandler: params.AnalyticsHandler,
		chatHandler:      params.ChatHandler,
		authHandler:      params.AuthHandler,
		contentHandler:   params.ContentHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public storefront routes
	e.GET("/products", r.productHandler.ListProducts)
	e.GET("/products/:id", r.productHandler.GetProduct)
	e.POST("/checkout", r.checkoutHandler.CreateSession)
	e.POST("/chat", r.chatHandler.Ask)
	e.GET("/content", r.contentHandler.GetContent)

	// Payment provider callbacks authenticate via payload signature,
	// not bearer tokens.
	e.POST("/webhooks/payment", r.webhookHandler.HandlePaymentEvent)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Catalog mutations share the public /products paths but require a
	// dashboard token.
	e.POST("/products", r.productHandler.CreateProduct, r.authMiddleware.Authenticate)
	e.PATCH("/products/:id", r.productHandler.UpdateProduct, r.authMiddleware.Authenticate)
	e.DELETE("/products/:id", r.productHandler.DeleteProduct, r.authMiddleware.Authenticate)

	// Dashboard routes that require authentication
	ordersGroup := e.Group("/orders")
	ordersGroup.Use(r.authMiddleware.Authenticate)
	{
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus)
	}

	e.GET("/users", r.customerHandler.ListCustomers, r.authMiddleware.Authenticate)
	e.GET("/analytics", r.analyticsHandler.Overview, r.authMiddleware.Authenticate)
}
