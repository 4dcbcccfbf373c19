package handler

import (
	"movie-wallet/internal/adapter/http/middleware"
	"movie-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	LedgerSvc      ports.LedgerService
	TransferSvc    ports.TransferService
	UserSvc        ports.UserService
	DeviceSvc      ports.DeviceService
	CatalogSvc     ports.CatalogService
	ReportingSvc   ports.ReportingService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	health := HealthCheck(deps.HealthCheckers...)
	r.GET("/health", health)

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/openapi.yaml", SwaggerDoc)
	}

	v1 := r.Group("/api/v1")
	v1.GET("/health", health)

	admin := middleware.AdminAuth(deps.TokenSvc, deps.Logger)

	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", admin, authHandler.Logout)
	}

	movieHandler := NewMovieHandler(deps.CatalogSvc)
	v1.GET("/movies", movieHandler.List)

	deviceHandler := NewDeviceHandler(deps.DeviceSvc)
	devices := v1.Group("/devices")
	{
		devices.POST("/ping", deviceHandler.Ping)
		devices.GET("", admin, deviceHandler.List)
	}

	userHandler := NewUserHandler(deps.UserSvc)
	walletHandler := NewWalletHandler(deps.LedgerSvc, deps.TransferSvc)
	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)

	users := v1.Group("/users", admin)
	{
		users.POST("", userHandler.Create)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.GET("/:id/wallet", walletHandler.GetWallet)
		users.GET("/:id/dashboard", dashboardHandler.GetDashboard)
		users.GET("/:id/transactions", walletHandler.ListTransactions)
		users.POST("/:id/transactions", walletHandler.CreateTransaction)
		users.POST("/:id/deposit", walletHandler.Deposit)
		users.POST("/:id/withdraw", walletHandler.Withdraw)
		users.POST("/:id/movies/:movieId/watch", walletHandler.WatchMovie)
		users.POST("/:id/bank-transfers", walletHandler.BankTransfer)
	}

	v1.GET("/transactions/:id", admin, walletHandler.GetTransaction)

	return r
}
