package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/cache"
	"github.com/chakrahealing/admin_api/internal/config"
	"github.com/chakrahealing/admin_api/internal/database"
	"github.com/chakrahealing/admin_api/internal/handler"
	"github.com/chakrahealing/admin_api/internal/middleware"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/repository"
	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/sse"
	"github.com/chakrahealing/admin_api/internal/storage"
	"github.com/chakrahealing/admin_api/internal/utils"
	"github.com/chakrahealing/admin_api/internal/worker"
	"github.com/chakrahealing/admin_api/pkg/rolefn"
)

// main is the application entrypoint for the Chakra Healing admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting chakra admin api")
	utils.InitJWT(cfg.JWTSecret, cfg.JWTTTL)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	tokenCache := cache.NewTokenCache(redisClient, cfg.JWTSecret)

	// 3c. Object storage. Without it uploads fail but stored URLs still resolve.
	store, err := storage.New(context.Background(), &cfg.S3, &cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("S3 initialization failed - image uploads will be disabled")
		store = storage.NewWithClient(nil, cfg.Storage)
	}

	// 4. Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	contactRepo := repository.NewContactRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 5. Live updates
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Initialize services
	authSvc := service.NewAuthService(userRepo, tokenCache, service.LogResetSender{}, cfg.Auth.PasswordResetTTL, cfg.Auth.ResetURL)
	orderSvc := service.NewOrderService(orderRepo, notifier, cfg.Snapshot.OrderLimit)
	paymentSvc := service.NewPaymentService(orderRepo, cfg.Snapshot.OrderLimit)
	bookingSvc := service.NewBookingService(bookingRepo, notifier)
	productSvc := service.NewProductService(productRepo, store, cfg.Snapshot.ProductLimit)
	reviewSvc := service.NewReviewService(reviewRepo, notifier, cfg.Snapshot.ReviewLimit)
	customerSvc := service.NewCustomerService(customerRepo)
	catalogSvc := service.NewCatalogService(catalogRepo, store)
	blogSvc := service.NewBlogService(blogRepo, store)
	contactSvc := service.NewContactService(contactRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo)
	settingsSvc := service.NewSettingsService(userRepo, rolefn.NewClient(cfg.Roles.BaseURL, cfg.Roles.Timeout))
	roleFnSvc := service.NewRoleFunctionService(userRepo)

	if err := authSvc.EnsureSuperAdmin(context.Background(), cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
		log.Error().Err(err).Msg("failed to create bootstrap super admin")
	}

	// 7. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(tokenCache, middleware.NewInvalidAuthRateLimiter())

	// 8. Initialize handlers
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(db, redisClient),
		Auth:         handler.NewAuthHandler(authSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		Order:        handler.NewOrderHandler(orderSvc),
		Payment:      handler.NewPaymentHandler(paymentSvc),
		Booking:      handler.NewBookingHandler(bookingSvc),
		Product:      handler.NewProductHandler(productSvc),
		Review:       handler.NewReviewHandler(reviewSvc),
		Customer:     handler.NewCustomerHandler(customerSvc),
		Service:      handler.NewServiceHandler(catalogSvc),
		Blog:         handler.NewBlogHandler(blogSvc),
		Contact:      handler.NewContactHandler(contactSvc),
		Settings:     handler.NewSettingsHandler(settingsSvc),
		RoleFunction: handler.NewRoleFunctionHandler(roleFnSvc, jwtMw),
		SSE:          handler.NewSSEHandler(hub, jwtMw),
	}

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	if cfg.Razorpay.Enabled() {
		rzp := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
		go worker.NewPaymentReconcileWorker(
			bookingRepo, rzp.Payment, notifier,
			cfg.Worker.PaymentReconcileInterval,
			cfg.Worker.PaymentReconcileStaleAfter,
		).Start(ctx)
	} else {
		log.Info().Msg("Razorpay keys not set - payment reconciliation disabled")
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers and end open SSE streams
	cancel()
	hub.CloseAll()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Dashboard    *handler.DashboardHandler
	Order        *handler.OrderHandler
	Payment      *handler.PaymentHandler
	Booking      *handler.BookingHandler
	Product      *handler.ProductHandler
	Review       *handler.ReviewHandler
	Customer     *handler.CustomerHandler
	Service      *handler.ServiceHandler
	Blog         *handler.BlogHandler
	Contact      *handler.ContactHandler
	Settings     *handler.SettingsHandler
	RoleFunction *handler.RoleFunctionHandler
	SSE          *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Privileged role functions authenticate the caller themselves.
	functions := router.Group("/functions/v1")
	{
		functions.POST("/grant-role", handlers.RoleFunction.GrantRole)
		functions.POST("/revoke-role", handlers.RoleFunction.RevokeRole)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.POST("/auth/forgot-password", handlers.Auth.ForgotPassword)
	admin.POST("/auth/update-password", handlers.Auth.UpdatePassword)
	// EventSource cannot send headers; the stream checks ?token itself.
	admin.GET("/sse", handlers.SSE.Stream)

	admin.Use(jwtMiddleware.Handle(), middleware.RequirePanelAccess())
	{
		admin.POST("/auth/logout", handlers.Auth.Logout)
		admin.GET("/auth/me", handlers.Auth.Me)

		admin.GET("/dashboard", handlers.Dashboard.GetStats)

		// Bookings
		admin.GET("/bookings", handlers.Booking.ListBookings)
		admin.GET("/bookings/:id", handlers.Booking.GetBooking)
		admin.PUT("/bookings/:id", handlers.Booking.UpdateBooking)
		admin.DELETE("/bookings/:id", handlers.Booking.DeleteBooking)

		// Services
		admin.GET("/services", handlers.Service.ListServices)
		admin.GET("/services/:id", handlers.Service.GetService)
		admin.POST("/services", handlers.Service.CreateService)
		admin.PUT("/services/:id", handlers.Service.UpdateService)
		admin.DELETE("/services/:id", handlers.Service.DeleteService)

		// Customers
		admin.GET("/customers", handlers.Customer.ListCustomers)
		admin.PUT("/customers/:id", handlers.Customer.UpdateCustomer)
		admin.DELETE("/customers/:id", handlers.Customer.DeleteCustomer)

		// Orders
		admin.GET("/orders", handlers.Order.ListOrders)
		admin.GET("/orders/:id", handlers.Order.GetOrder)
		admin.PUT("/orders/:id/shipping-status", handlers.Order.UpdateShippingStatus)

		// Payments
		admin.GET("/payments", handlers.Payment.ListPayments)
		admin.PUT("/payments/:id", handlers.Payment.UpdatePayment)
		admin.DELETE("/payments/:id", handlers.Payment.DeletePayment)

		// Products
		admin.GET("/products", handlers.Product.ListProducts)
		admin.GET("/products/:id", handlers.Product.GetProduct)
		admin.POST("/products", handlers.Product.CreateProduct)
		admin.PUT("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)

		// Reviews
		admin.GET("/reviews", handlers.Review.ListReviews)
		admin.PUT("/reviews/:id/status", handlers.Review.UpdateReviewStatus)
		admin.DELETE("/reviews/:id", handlers.Review.DeleteReview)

		// Blogs
		admin.GET("/blogs", handlers.Blog.ListBlogs)
		admin.GET("/blogs/authors", handlers.Blog.ListAuthors)
		admin.GET("/blogs/categories", handlers.Blog.ListCategories)
		admin.GET("/blogs/:id", handlers.Blog.GetBlog)
		admin.POST("/blogs", handlers.Blog.CreateBlog)
		admin.PUT("/blogs/:id", handlers.Blog.UpdateBlog)
		admin.DELETE("/blogs/:id", handlers.Blog.DeleteBlog)

		// Contacts
		admin.GET("/contacts", handlers.Contact.ListContacts)
		admin.GET("/contacts/:id", handlers.Contact.GetContact)
		admin.DELETE("/contacts/:id", handlers.Contact.DeleteContact)

		// Settings
		admin.GET("/settings/profile", handlers.Settings.GetProfile)
		admin.PUT("/settings/profile", handlers.Settings.UpdateProfile)

		roles := admin.Group("/settings/roles", middleware.RequireRole(models.RoleSuperAdmin))
		{
			roles.GET("", handlers.Settings.ListRoles)
			roles.POST("/grant", handlers.Settings.GrantRole)
			roles.POST("/revoke", handlers.Settings.RevokeRole)
		}
	}
}

func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
