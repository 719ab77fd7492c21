// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"dealradar/internal/delivery/http/middleware"
	"dealradar/internal/delivery/http/router/handler"
	"dealradar/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middlewares, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	BusinessHandler *handler.BusinessHandler
	ProductHandler  *handler.ProductHandler
	DealHandler     *handler.DealHandler
	CategoryHandler *handler.CategoryHandler
	SessionHandler  *handler.SessionHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Exists          *middleware.ExistsMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	user     *handler.UserHandler
	business *handler.BusinessHandler
	product  *handler.ProductHandler
	deal     *handler.DealHandler
	category *handler.CategoryHandler
	session  *handler.SessionHandler
	auth     *middleware.AuthMiddleware
	exists   *middleware.ExistsMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		user:     params.UserHandler,
		business: params.BusinessHandler,
		product:  params.ProductHandler,
		deal:     params.DealHandler,
		category: params.CategoryHandler,
		session:  params.SessionHandler,
		auth:     params.AuthMiddleware,
		exists:   params.Exists,
	}
}

// RegisterRoutes sets up all the API routes for the application. Every
// existence rule is fixed here, at registration time, so a route's
// reference checks are visible next to the route itself.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/v1")

	userGroup := v1.Group("/u")
	{
		userGroup.POST("/new", r.user.Register, r.exists.Require(
			middleware.Check{Entity: repository.KindUser, Source: middleware.SourceBody, Field: "email", Policy: middleware.MustNotExist},
			middleware.Check{Entity: repository.KindUser, Source: middleware.SourceBody, Field: "phoneNumber", Policy: middleware.MustNotExist},
		))
		userGroup.POST("/login", r.user.Login)
		userGroup.POST("/logout", r.user.Logout)
		userGroup.PUT("/:id", r.user.Update, r.auth.Authenticate)
		userGroup.DELETE("/:id", r.user.Delete, r.auth.Authenticate)
	}

	businessGroup := v1.Group("/b", r.auth.Authenticate)
	{
		businessGroup.POST("/new", r.business.Create, r.exists.Require(
			middleware.Check{Entity: repository.KindUser, Source: middleware.SourceBody, Field: "userId", Policy: middleware.MustExist},
			middleware.Check{Entity: repository.KindCategory, Source: middleware.SourceBody, Field: "categoryId", Policy: middleware.MustExist},
			middleware.Check{Entity: repository.KindSubCategory, Source: middleware.SourceBody, Field: "subCategoryId", Policy: middleware.MustExist},
		))
		businessGroup.PUT("/:id", r.business.Update)
		businessGroup.DELETE("/:id", r.business.Delete)
		businessGroup.GET("/:id/qr", r.business.PaymentQR)
	}

	productGroup := v1.Group("/p", r.auth.Authenticate)
	{
		productGroup.POST("/new", r.product.Create, r.exists.Require(
			middleware.Check{Entity: repository.KindBusiness, Source: middleware.SourceBody, Field: "businessId", Policy: middleware.MustExist},
			middleware.Check{Entity: repository.KindUser, Source: middleware.SourceBody, Field: "userId", Policy: middleware.MustExist},
		))
		productGroup.PUT("/:id", r.product.Update)
		productGroup.DELETE("/:id", r.product.Delete)
	}

	dealGroup := v1.Group("/d", r.auth.Authenticate)
	{
		dealGroup.POST("/new", r.deal.Create, r.exists.Require(
			middleware.Check{Entity: repository.KindProduct, Source: middleware.SourceBody, Field: "productId", Policy: middleware.MustExist},
			middleware.Check{Entity: repository.KindBusiness, Source: middleware.SourceBody, Field: "businessId", Policy: middleware.MustExist},
			middleware.Check{Entity: repository.KindUser, Source: middleware.SourceBody, Field: "userId", Policy: middleware.MustExist},
		))
		dealGroup.PUT("/:id", r.deal.Update)
		dealGroup.DELETE("/:id", r.deal.Delete)
		// Discovery carries its filter in the GET body by design.
		dealGroup.GET("", r.deal.Discover)
	}

	categoryGroup := v1.Group("/c")
	{
		categoryGroup.GET("", r.category.ListCategories)
		categoryGroup.GET("/:id/sub", r.category.ListSubCategories)
		categoryGroup.POST("/new", r.category.CreateCategory, r.auth.Authenticate)
		categoryGroup.PUT("/:id", r.category.UpdateCategory, r.auth.Authenticate)
		categoryGroup.DELETE("/:id", r.category.DeleteCategory, r.auth.Authenticate)
	}

	subCategoryGroup := v1.Group("/sc", r.auth.Authenticate)
	{
		subCategoryGroup.POST("/new", r.category.CreateSubCategory, r.exists.Require(
			middleware.Check{Entity: repository.KindCategory, Source: middleware.SourceBody, Field: "categoryId", Policy: middleware.MustExist},
		))
		subCategoryGroup.PUT("/:id", r.category.UpdateSubCategory)
		subCategoryGroup.DELETE("/:id", r.category.DeleteSubCategory)
	}

	sessionGroup := v1.Group("/s")
	{
		sessionGroup.POST("/refresh", r.session.Rotate, r.auth.RequireRefreshToken)
	}
}
