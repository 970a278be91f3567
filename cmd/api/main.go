package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-pos-sync/internal/handler"
	"go-pos-sync/internal/middleware"
	"go-pos-sync/internal/model"
	"go-pos-sync/internal/replication"
	"go-pos-sync/internal/repository"
	"go-pos-sync/internal/service"
	"go-pos-sync/internal/ws"
	"go-pos-sync/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Databases. The local store is migrated here; the central
	// store is authoritative and provisioned elsewhere.
	localDB := database.ConnectLocal()
	localDB.AutoMigrate(
		&model.Warehouse{}, &model.User{}, &model.ReceiptSetting{},
		&model.Product{}, &model.Customer{}, &model.Supplier{},
		&model.Sale{}, &model.SaleItem{}, &model.PaymentMethod{},
		&model.Purchase{}, &model.PurchaseItem{},
	)
	centralDB := database.ConnectCentral()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Replication engine
	localStore := replication.NewGormStore(localDB)
	centralStore := replication.NewGormStore(centralDB)
	runner := replication.NewRunner(replication.NewExecutor(), replication.DefaultConcurrency)
	orchestrator := replication.NewOrchestrator(localStore, centralStore, runner)
	invalidator := replication.NewInvalidator(localStore)

	// 5. Dependency Injection (Wiring Layers)
	warehouseRepo := repository.NewWarehouseRepo(localDB)
	userRepo := repository.NewUserRepo(localDB)
	productRepo := repository.NewProductRepo(localDB)
	customerRepo := repository.NewCustomerRepo(localDB)
	supplierRepo := repository.NewSupplierRepo(localDB)
	saleRepo := repository.NewSaleRepo(localDB)
	purchaseRepo := repository.NewPurchaseRepo(localDB)

	salesService := service.NewSalesService(localDB, warehouseRepo, productRepo, saleRepo, invalidator, wsHub)
	purchaseService := service.NewPurchaseService(localDB, warehouseRepo, productRepo, purchaseRepo, invalidator, wsHub)
	catalogService := service.NewCatalogService(productRepo, supplierRepo, customerRepo, warehouseRepo, wsHub)
	authService := service.NewAuthService(userRepo)

	syncHandler := handler.NewSyncHandler(orchestrator, wsHub)
	salesHandler := handler.NewSalesHandler(salesService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Offline Sync v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Sync (manual trigger + status poll)
	protected.Post("/sync", syncHandler.RunSync)
	protected.Get("/sync/status", syncHandler.Status)

	// Sales
	protected.Post("/sales", salesHandler.CreateSale)
	protected.Get("/sales", salesHandler.GetSales)
	protected.Get("/sales/:invoiceNo", salesHandler.GetSale)
	protected.Delete("/sales/:invoiceNo", salesHandler.DeleteSale)

	// Purchases
	protected.Post("/purchases", purchaseHandler.CreatePurchase)
	protected.Get("/purchases", purchaseHandler.GetPurchases)
	protected.Get("/purchases/:referenceNo", purchaseHandler.GetPurchase)
	protected.Delete("/purchases/:referenceNo", middleware.RequireRole("admin", "manager"), purchaseHandler.DeletePurchase)

	// Catalog
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole("admin", "manager"), catalogHandler.DeleteProduct)

	protected.Get("/suppliers", catalogHandler.GetSuppliers)
	protected.Post("/suppliers", catalogHandler.CreateSupplier)
	protected.Put("/suppliers/:id", catalogHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequireRole("admin", "manager"), catalogHandler.DeleteSupplier)

	protected.Get("/customers", catalogHandler.GetCustomers)
	protected.Get("/warehouses", catalogHandler.GetWarehouses)

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

	// 8. Optional scheduled sync
	stopScheduler := make(chan struct{})
	if interval := os.Getenv("SYNC_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			log.Printf("Warning: invalid SYNC_INTERVAL %q: %v", interval, err)
		} else {
			go runScheduledSync(orchestrator, wsHub, d, stopScheduler)
		}
	}

	// 9. Graceful Shutdown
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
	close(stopScheduler)
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// runScheduledSync fires a pass on a fixed interval. A pass that fails on
// connectivity is just retried next tick; all the durable state lives in the
// per-record sync flags.
func runScheduledSync(o *replication.Orchestrator, hub *ws.Hub, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Println("Scheduled sync enabled, interval:", interval)
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			summary, err := o.RunPass(ctx)
			cancel()
			if err != nil {
				log.Printf("Scheduled sync skipped: %v", err)
				continue
			}
			hub.BroadcastEvent(ws.Event{Type: "sync_completed", Payload: summary})
		case <-stop:
			return
		}
	}
}
