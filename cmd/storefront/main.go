package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/storefront-labs/storefront-api/docs"
	"github.com/storefront-labs/storefront-api/internal/api/handlers"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/cache"
	"github.com/storefront-labs/storefront-api/internal/config"
	"github.com/storefront-labs/storefront-api/internal/events"
	"github.com/storefront-labs/storefront-api/internal/health"
	"github.com/storefront-labs/storefront-api/internal/metrics"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	service "github.com/storefront-labs/storefront-api/internal/services"
	"github.com/storefront-labs/storefront-api/internal/tracing"
	"github.com/storefront-labs/storefront-api/pkg/sendgrid"
	"github.com/storefront-labs/storefront-api/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Storefront API
//	@version					1.0
//	@description				Catalog, cart, checkout and payment API for an online store.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT token.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Otel)
	if err != nil {
		slog.Error("Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	productCache := cache.NewRedisCache(redisClient, cfg.Cache)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	userRepo := repository.NewUserRepo(repos.DB)
	customerRepo := repository.NewCustomerRepo(repos.DB)
	collectionRepo := repository.NewCollectionRepo(repos.DB)
	productRepo := repository.NewProductRepo(repos.DB)
	promotionRepo := repository.NewPromotionRepo(repos.DB)
	reviewRepo := repository.NewReviewRepo(repos.DB)
	cartRepo := repository.NewCartRepo(repos.DB)
	orderRepo := repository.NewOrderRepository(repos.DB)
	paymentRepo := repository.NewPaymentRepository(repos.DB)
	notificationRepo := repository.NewNotificationRepo(repos.DB)

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Order events
	subscribers := []events.Subscriber{events.NewEmailNotifier(emailService, notificationRepo)}
	endpoints := &health.Endpoints{Stripe: stripeClient}

	if cfg.RabbitMQ.URL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.RabbitMQ)
		if err != nil {
			slog.Error("Error connecting to RabbitMQ", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer rabbit.Close()

		subscribers = append(subscribers, rabbit)
		endpoints.Broker = rabbit
	}

	dispatcher := events.NewDispatcher(cfg.Events.DeliveryTimeout, subscribers...)

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	h := handlers.Handlers{
		Users:         handlers.NewUserHandler(service.NewUserService(userRepo, rateLimiter, jwtKey, tokenTTL)),
		Products:      handlers.NewProductHandler(service.NewProductService(productRepo, productCache)),
		Collections:   handlers.NewCollectionHandler(service.NewCollectionService(collectionRepo)),
		Promotions:    handlers.NewPromotionHandler(service.NewPromotionService(promotionRepo)),
		Reviews:       handlers.NewReviewHandler(service.NewReviewService(reviewRepo)),
		Carts:         handlers.NewCartHandler(service.NewCartService(cartRepo)),
		Orders:        handlers.NewOrderHandler(service.NewOrderService(orderRepo, cartRepo, customerRepo, dispatcher)),
		Customers:     handlers.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		Payments:      handlers.NewPaymentHandler(service.NewPaymentService(paymentRepo, orderRepo, customerRepo, stripeClient, cfg.Stripe.Currency)),
		Notifications: handlers.NewNotificationHandler(service.NewNotificationService(notificationRepo)),
	}

	healthChecker, err := health.NewHealthHandler(cfg, endpoints)
	if err != nil {
		slog.Error("Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	handlers.RegisterRoutes(routerMux, middleware.NewAuthMiddleware(jwtKey), h)
	routerMux.Handle("GET /health", healthChecker.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront-api")
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	// in-flight order event deliveries finish before their sinks are closed
	dispatcher.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Error flushing traces", slog.String("error", err.Error()))
	}
}
