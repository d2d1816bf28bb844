package main

import (
	"log"
	"os"

	_ "vouchbooks/api/swagger" // swagger docs
	"vouchbooks/internal/database"
	"vouchbooks/internal/handler"
	"vouchbooks/internal/logger"
	"vouchbooks/internal/middleware"
	"vouchbooks/internal/repository"
	"vouchbooks/internal/service"
	"vouchbooks/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           VouchBooks API
// @version         1.0
// @description     Bookkeeping and Nigeria Tax Act 2025 compliance API for small businesses and freelancers.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	logger.Init()

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	statementRepo := repository.NewStatementRepository(db)
	filingRepo := repository.NewFilingRepository(db)
	insightRepo := repository.NewInsightRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo, tokenRepo, auditRepo)
	txnService := service.NewTransactionService(txnRepo, userRepo, auditRepo, txManager)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, txnRepo, auditRepo, txManager)
	statementService := service.NewStatementService(statementRepo, txnRepo, userRepo, auditRepo, txManager, wsHub)
	taxService := service.NewTaxService(userRepo, txnRepo, filingRepo, auditRepo, txManager, wsHub)
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	insightService := service.NewInsightService(insightRepo, userRepo, txnRepo, wsHub)
	settingService := service.NewSettingService(settingRepo, auditRepo)
	auditService := service.NewAuditService(db)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	txnHandler := handler.NewTransactionHandler(txnService)
	customerHandler := handler.NewCustomerHandler(customerService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	statementHandler := handler.NewStatementHandler(statementService)
	taxHandler := handler.NewTaxHandler(taxService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	insightHandler := handler.NewInsightHandler(insightService)
	settingHandler := handler.NewSettingHandler(settingService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("/api/v1")
	userHandler.RegisterRoutes(api)
	txnHandler.RegisterRoutes(api)
	customerHandler.RegisterRoutes(api)
	invoiceHandler.RegisterRoutes(api)
	statementHandler.RegisterRoutes(api)
	taxHandler.RegisterRoutes(api)
	analyticsHandler.RegisterRoutes(api)
	insightHandler.RegisterRoutes(api)
	settingHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
