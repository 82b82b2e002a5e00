package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go-counter-pos/internal/cache"
	"go-counter-pos/internal/handler"
	"go-counter-pos/internal/middleware"
	"go-counter-pos/internal/model"
	"go-counter-pos/internal/repository"
	"go-counter-pos/internal/service"
	"go-counter-pos/internal/ws"
	"go-counter-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.MenuItem{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.DailySummary{},
		&model.WeeklySummary{},
		&model.MonthlySummary{},
		&model.User{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Summary cache: Redis when configured, no-op otherwise
	var summaryCache cache.SummaryCache = cache.NoopSummaryCache{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		redisCache := cache.NewRedisSummaryCache(addr, os.Getenv("REDIS_PASSWORD"), redisDB)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Printf("Warning: Redis unreachable (%v), summary cache disabled", err)
		} else {
			summaryCache = redisCache
			defer redisCache.Close()
			log.Println("Redis summary cache enabled")
		}
	}

	// 5. Dependency Injection (Wiring Layers)
	menuRepo := repository.NewMenuRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	summaryRepo := repository.NewSummaryRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Seed default menu and admin user
	seedDefaults(menuRepo, userRepo)

	salesService := service.NewSalesService(menuRepo, txRepo, summaryRepo, db, wsHub, summaryCache)
	summaryService := service.NewSummaryService(txRepo, summaryRepo, db, wsHub, summaryCache)
	menuService := service.NewMenuService(menuRepo, db, wsHub)
	dashService := service.NewDashboardService(menuRepo, summaryRepo)
	authService := service.NewAuthService(userRepo)

	salesHandler := handler.NewSalesHandler(salesService)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	menuHandler := handler.NewMenuHandler(menuService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Counter POS v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetCounterStats)

	// Menu catalog
	protected.Get("/menu", menuHandler.GetMenuItems)
	protected.Get("/menu/:id", menuHandler.GetMenuItem)
	protected.Post("/menu", menuHandler.CreateMenuItem)
	protected.Put("/menu/:id", menuHandler.UpdateMenuItem)
	protected.Post("/menu-stock/reset", menuHandler.ResetStock)

	// Transactions (sales ledger)
	protected.Get("/transactions", salesHandler.GetTransactions)
	protected.Get("/transactions/:id", salesHandler.GetTransaction)
	protected.Post("/transactions", salesHandler.CreateTransaction)
	protected.Delete("/transactions", salesHandler.DeleteAllTransactions)
	protected.Delete("/transactions/item", salesHandler.DeleteByItemAndDate)
	protected.Delete("/transactions/date/:date", summaryHandler.RetractDay)

	// Summaries (rollups)
	protected.Get("/summaries/daily", summaryHandler.GetDailySummaries)
	protected.Get("/summaries/weekly", summaryHandler.GetWeeklySummaries)
	protected.Get("/summaries/monthly", summaryHandler.GetMonthlySummaries)
	protected.Delete("/summaries/weekly/:weekStart", summaryHandler.RetractWeek)
	protected.Delete("/summaries/monthly/:month", summaryHandler.RetractMonth)

	// WebSocket Route
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

// seedDefaults creates the starter menu and an admin user if the
// database is empty. Failures are logged, not fatal.
func seedDefaults(menuRepo repository.MenuRepository, userRepo repository.UserRepository) {
	// 1. Seed the default beverage/snack menu
	count, err := menuRepo.Count()
	if err != nil {
		log.Printf("Warning: Failed to check menu catalog: %v", err)
	} else if count == 0 {
		defaults := []model.MenuItem{
			{Name: "Tea", Category: "beverage", Price: decimal.RequireFromString("10.00")},
			{Name: "Coffee", Category: "beverage", Price: decimal.RequireFromString("15.00")},
			{Name: "Badam Milk", Category: "beverage", Price: decimal.RequireFromString("25.00")},
			{Name: "Lemon Soda", Category: "beverage", Price: decimal.RequireFromString("20.00")},
			{Name: "Samosa", Category: "snack", Price: decimal.RequireFromString("12.00")},
			{Name: "Veg Puff", Category: "snack", Price: decimal.RequireFromString("18.00")},
			{Name: "Biscuit Packet", Category: "snack", Price: decimal.RequireFromString("10.00")},
		}
		for i := range defaults {
			defaults[i].Available = true
			defaults[i].StockQuantity = model.DefaultStockQuantity
			defaults[i].CreatedBy = "system"
			defaults[i].UpdatedBy = "system"
			if err := menuRepo.Create(&defaults[i]); err != nil {
				log.Printf("Warning: Failed to seed menu item %q: %v", defaults[i].Name, err)
			}
		}
		log.Printf("✅ Seeded %d default menu items", len(defaults))
	}

	// 2. Create default admin user
	_, err = userRepo.FindByUsername("admin")
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Warning: Failed to check admin user: %v", err)
	} else if errors.Is(err, repository.ErrNotFound) {
		admin := &model.User{
			Username: "admin",
			Email:    "admin@example.com",
			FullName: "Counter Administrator",
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin / admin123")
		}
	}
}
