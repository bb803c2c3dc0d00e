package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"stock-backend/internal/auth"
	"stock-backend/internal/cache"
	"stock-backend/internal/config"
	"stock-backend/internal/database"
	"stock-backend/internal/db"
	"stock-backend/internal/handlers"
	"stock-backend/internal/health"
	h "stock-backend/internal/http"
	"stock-backend/internal/memstore"
	"stock-backend/internal/middleware"
	"stock-backend/internal/models"
	"stock-backend/internal/notify"
	"stock-backend/internal/repositories"
	"stock-backend/internal/services"
	"stock-backend/migrations"
)

// stores groups the per-entity store implementations so both backends
// wire identically into the services.
type stores struct {
	users     services.UserStore
	products  services.ProductStore
	locations services.LocationStore
	transfers services.TransferStore
	settings  services.EmailSettingsStore
	pinger    health.Pinger
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx := context.Background()

	// Postgres is the normal backend. Without it the server runs in demo
	// mode on the in-memory store with seeded accounts.
	var st stores
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Printf("[DB] Postgres unavailable: %v", err)
		log.Printf("[DB] Running in DEMO mode with in-memory store (data is not persisted)")

		mem := memstore.New()
		password := os.Getenv("DEMO_PASSWORD")
		if password == "" {
			password = "changeme"
		}
		if err := mem.SeedDemoUsers(ctx, password); err != nil {
			log.Fatalf("Failed to seed demo users: %v", err)
		}
		log.Printf("[DB] Demo accounts seeded (admin@fairfield.com / DEMO_PASSWORD)")

		st = stores{
			users:     mem.Users,
			products:  mem.Products,
			locations: mem.Locations,
			transfers: mem.Transfers,
			settings:  mem.Settings,
			pinger:    mem,
		}
	} else {
		defer pool.Close()
		log.Printf("[DB] Connected to %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := database.NewMigrator(pool, migrations.Files).RunMigrations(migrateCtx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		st = stores{
			users:     repositories.NewUserRepository(pool),
			products:  repositories.NewProductRepository(pool),
			locations: repositories.NewLocationRepository(pool),
			transfers: repositories.NewTransferRepository(pool),
			settings:  repositories.NewEmailSettingsRepository(pool),
			pinger:    pool,
		}
	}

	// Redis is optional; login falls back to bcrypt-only when it is down.
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
		defer cache.Close()
	}

	jwtManager := auth.NewJWTManager(cfg)

	notifier := notify.NewEmailNotifier(st.settings)
	notifyTimeout := time.Duration(cfg.Notify.TimeoutSeconds) * time.Second

	userService := services.NewUserService(st.users, jwtManager)
	productService := services.NewProductService(st.products)
	locationService := services.NewLocationService(st.locations)
	transferService := services.NewTransferService(st.transfers, st.products, st.locations, notifier, notifyTimeout)
	settingsService := services.NewSettingsService(st.settings, notifier)
	reportService := services.NewReportService(st.transfers, st.locations)

	bootstrapAdmin(ctx, st.users, userService)

	healthChecker := health.NewHealthChecker(st.pinger)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	locationHandler := handlers.NewLocationHandler(locationService)
	transferHandler := handlers.NewTransferHandler(transferService, reportService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, st.users)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		productHandler,
		locationHandler,
		transferHandler,
		settingsHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// bootstrapAdmin creates an initial admin account when the user store is
// empty, so a fresh database is immediately usable.
func bootstrapAdmin(ctx context.Context, users services.UserStore, svc *services.UserService) {
	existing, err := users.List(ctx)
	if err != nil || len(existing) > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@fairfield.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Printf("[Bootstrap] ADMIN_PASSWORD not set, using default - change it after first login")
	}

	_, err = svc.CreateUser(ctx, &models.CreateUserRequest{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     "admin",
	})
	if err != nil {
		log.Printf("[Bootstrap] Failed to create admin account: %v", err)
		return
	}
	log.Printf("[Bootstrap] Created initial admin account %s", email)
}
