// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"booknest/internal/delivery/http/middleware"
	"booknest/internal/delivery/http/router/handler"
	"booknest/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	BookHandler    *handler.BookHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	UserHandler    *handler.UserHandler
	AdminHandler   *handler.AdminHandler
	MediaHandler   *handler.MediaHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	bookHandler    *handler.BookHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	userHandler    *handler.UserHandler
	adminHandler   *handler.AdminHandler
	mediaHandler   *handler.MediaHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		bookHandler:    params.BookHandler,
		orderHandler:   params.OrderHandler,
		reviewHandler:  params.ReviewHandler,
		userHandler:    params.UserHandler,
		adminHandler:   params.AdminHandler,
		mediaHandler:   params.MediaHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Book routes; reads are public, writes need an authenticated seller
	bookGroup := api.Group("/books")
	{
		bookGroup.GET("", r.bookHandler.ListBooks)
		bookGroup.GET("/mine", r.bookHandler.ListMyBooks,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
		bookGroup.GET("/:id", r.bookHandler.GetBook)
		bookGroup.POST("", r.bookHandler.CreateBook,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
		bookGroup.PUT("/:id", r.bookHandler.UpdateBook,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
		bookGroup.DELETE("/:id", r.bookHandler.DeleteBook,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
	}

	// Order routes all require authentication
	orderGroup := api.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("/myorders", r.orderHandler.ListMyOrders)
		orderGroup.GET("/seller", r.orderHandler.ListSellerOrders,
			r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
		orderGroup.GET("", r.orderHandler.ListAllOrders,
			r.authMiddleware.RequireRole(entity.RoleAdmin))
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.GET("/:id/qrcode", r.orderHandler.OrderPickupQR)
		orderGroup.PUT("/:id/deliver", r.orderHandler.MarkDelivered,
			r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
	}

	// Review routes; listing is public, writing needs authentication
	reviewGroup := api.Group("/reviews")
	{
		reviewGroup.GET("/book/:id", r.reviewHandler.ListBookReviews)
		reviewGroup.POST("", r.reviewHandler.CreateReview, r.authMiddleware.Authenticate)
	}

	// User routes that require authentication
	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetMe)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
		userGroup.PUT("/updatepassword", r.userHandler.UpdatePassword)
		userGroup.GET("/wishlist", r.userHandler.GetWishlist)
		userGroup.POST("/wishlist/:id", r.userHandler.ToggleWishlist)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:id", r.adminHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)
		adminGroup.PUT("/sellers/:id/approve", r.adminHandler.ApproveSeller)
		adminGroup.GET("/books", r.adminHandler.ListAllBooks)
	}

	// Media upload for cover images, sellers and admins only
	mediaGroup := api.Group("/media")
	mediaGroup.Use(r.authMiddleware.Authenticate)
	mediaGroup.Use(r.authMiddleware.RequireRole(entity.RoleSeller, entity.RoleAdmin))
	{
		mediaGroup.POST("", r.mediaHandler.UploadImage)
	}
}
