package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hellobooks-backend/internal/shared/middleware"
	"hellobooks-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupBorrowRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.GET("/borrows", c.BorrowHandler.BorrowingHistory)
		users.GET("/borrows/open", c.BorrowHandler.BooksNotReturned)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)

		authed := books.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			authed.POST("/:id/borrow", c.BorrowHandler.BorrowBook)
		}

		admin := books.Group("")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.POST("", c.BookHandler.CreateBook)
			admin.PUT("/:id", c.BookHandler.UpdateBook)
			admin.DELETE("/:id", c.BookHandler.DeleteBook)
		}
	}
}

func setupBorrowRoutes(v1 *gin.RouterGroup, c *container.Container) {
	borrows := v1.Group("/borrows")
	borrows.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		borrows.PUT("/:id/return", c.BorrowHandler.ReturnBook)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/borrows", c.BorrowHandler.BooksCurrentlyOut)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":  dbStatus,
			"cache":   cacheStatus,
			"version": c.Config.App.Version,
			"env":     c.Config.App.Environment,
		})
	}
}
