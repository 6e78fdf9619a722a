package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-ws/internal/handler"
	"go-pos-ws/internal/middleware"
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/repository"
	"go-pos-ws/internal/service"
	"go-pos-ws/internal/ws"
	"go-pos-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Category{},
		&model.Shift{},
		&model.Transaction{},
		&model.TransactionItem{},
	)

	// 3. Seed demo users and catalog
	seedDemoData(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	shiftRepo := repository.NewShiftRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, wsHub)
	shiftService := service.NewShiftService(shiftRepo, wsHub)
	saleService := service.NewSaleService(shiftRepo, productRepo, txRepo, db, wsHub)
	reportService := service.NewReportService(txRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	txHandler := handler.NewTransactionHandler(saleService)
	statsHandler := handler.NewStatsHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "ProPOS API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	protected.Get("/auth/me", authHandler.Me)

	// Product Routes (mutations are admin-only)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin), productHandler.CreateProduct)
	protected.Patch("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.DeleteProduct)

	// Category Routes
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", middleware.RequireRole(model.RoleAdmin), categoryHandler.CreateCategory)
	protected.Delete("/categories/:id", middleware.RequireRole(model.RoleAdmin), categoryHandler.DeleteCategory)

	// Shift Routes
	protected.Post("/shifts", shiftHandler.OpenShift)
	protected.Get("/shifts", shiftHandler.GetShifts)
	protected.Get("/shifts/active", shiftHandler.GetActiveShift)
	protected.Post("/shifts/:id/close", shiftHandler.CloseShift)

	// Transaction Routes
	protected.Post("/transactions", txHandler.CreateTransaction)
	protected.Get("/transactions", txHandler.GetTransactions)
	protected.Get("/transactions/shift/:shiftId", txHandler.GetShiftTransactions)
	protected.Get("/transactions/:id/items", txHandler.GetTransactionItems)

	// Stats Routes
	protected.Get("/stats", statsHandler.GetSalesStats)
	protected.Get("/stats/weekly", statsHandler.GetWeeklySales)
	protected.Get("/stats/categories", statsHandler.GetCategorySales)

	// WebSocket Route (live stock/shift events for terminals)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDemoData creates the demo users and starter catalog if the
// database is empty
func seedDemoData(db *gorm.DB) {
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		demoUsers := []struct {
			email, password, name, role string
		}{
			{"admin@pos.com", "admin123", "Admin User", model.RoleAdmin},
			{"kasir@pos.com", "kasir123", "Cashier 01", model.RoleEmployee},
		}
		for _, u := range demoUsers {
			user := &model.User{Email: u.email, Name: u.name, Role: u.role}
			if err := user.SetPassword(u.password); err != nil {
				log.Printf("Warning: failed to hash password for %s: %v", u.email, err)
				continue
			}
			if err := db.Create(user).Error; err != nil {
				log.Printf("Warning: failed to seed user %s: %v", u.email, err)
			} else {
				log.Printf("Seeded user %s (%s)", u.email, u.role)
			}
		}
	}

	var productCount int64
	db.Model(&model.Product{}).Count(&productCount)
	if productCount > 0 {
		return
	}

	for _, name := range []string{"Coffee", "Tea", "Bakery"} {
		if err := db.Create(&model.Category{Name: name}).Error; err != nil {
			log.Printf("Warning: failed to seed category %s: %v", name, err)
		}
	}

	demoProducts := []model.Product{
		{Name: "Espresso Intenso", Category: "Coffee", Price: decimal.RequireFromString("3.50"), Stock: 45},
		{Name: "Cappuccino Royale", Category: "Coffee", Price: decimal.RequireFromString("4.50"), Stock: 28},
		{Name: "Matcha Green Tea Latte", Category: "Tea", Price: decimal.RequireFromString("5.00"), Stock: 15},
		{Name: "Blueberry Muffin", Category: "Bakery", Price: decimal.RequireFromString("3.25"), Stock: 12},
		{Name: "Chocolate Croissant", Category: "Bakery", Price: decimal.RequireFromString("3.75"), Stock: 8},
	}
	for i := range demoProducts {
		if err := db.Create(&demoProducts[i]).Error; err != nil {
			log.Printf("Warning: failed to seed product %s: %v", demoProducts[i].Name, err)
		}
	}
	log.Println("Seeded demo catalog")
}
