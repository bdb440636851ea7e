package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "ritual_desk/docs"
	"ritual_desk/internal/adapter/http/handlers"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/adapter/http/routes"
	"ritual_desk/internal/adapter/persistence"
	"ritual_desk/internal/infrastructure/cache"
	"ritual_desk/internal/infrastructure/config"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/infrastructure/messaging"
	"ritual_desk/internal/infrastructure/payments"
	"ritual_desk/internal/infrastructure/telemetry"
	"ritual_desk/internal/usecase"
	"ritual_desk/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
)

// @title           Ritual Desk API
// @version         1.0
// @description     Quote negotiation, service request lifecycle and ritual progress tracking backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, config.Load())
	stop()
	os.Exit(code)
}

// run wires and serves the API until ctx is cancelled. It returns the exit
// code instead of exiting so deferred shutdowns and the log flush still run.
func run(ctx context.Context, cfg config.Config) int {
	log, err := logger.New(logger.Options{Mode: cfg.App.Environment, Level: cfg.App.LogLevel, FilePath: cfg.App.LogFilePath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		return 1
	}
	defer log.Sync()

	if cfg.Auth.Disabled {
		log.Warn("[app] auth disabled, caller identity is read from headers")
	} else if cfg.Auth.JWTSecret == "" {
		log.Error("[app] JWT_SECRET is required unless AUTH_DISABLED is set")
		return 1
	}

	shutdownTracing := telemetry.Init(ctx, log, cfg.Telemetry, cfg.App.Environment)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("[telemetry] shutdown failed", "err", err)
		}
	}()

	stores, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		log.Error("[app] storage init failed", "driver", cfg.Storage.Driver, "err", err)
		return 1
	}
	log.Info("[app] storage ready", "driver", cfg.Storage.Driver)

	var publisher interfaces.IEventPublisher = messaging.NewNoopPublisher(log)
	if cfg.Events.AMQPURL != "" {
		amqpPublisher := messaging.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		defer func() { _ = amqpPublisher.Close() }()
		publisher = amqpPublisher
		log.Info("[app] events go to amqp", "exchange", cfg.Events.Exchange)
	}

	var summaryCache interfaces.ISummaryCache
	if cfg.Redis.Addr != "" {
		if rdb := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); rdb != nil {
			defer func() { _ = rdb.Close() }()
			summaryCache = cache.NewRedisSummaryCache(rdb)
			log.Info("[app] analytics cache enabled", "addr", cfg.Redis.Addr)
		} else {
			log.Warn("[app] redis unreachable, analytics not cached", "addr", cfg.Redis.Addr)
		}
	}

	var gateway interfaces.IPaymentGateway
	if !cfg.Payments.Mock {
		mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments.MercadoPagoAccessToken, log)
		if err != nil {
			log.Warn("[app] Mercado Pago gateway not configured", "err", err)
		} else {
			gateway = mpGateway
		}
	}

	quoteUseCase := usecase.NewQuoteUseCase(stores.Quotes, publisher, log, usecase.QuoteUseCaseOptions{
		DefaultCurrency:  cfg.Quotes.DefaultCurrency,
		DefaultValidDays: cfg.Quotes.DefaultValidDays,
	})
	requestUseCase := usecase.NewServiceRequestUseCase(stores.Requests, stores.Quotes, publisher, log)
	paymentUseCase := usecase.NewPaymentUseCase(stores.Payments, stores.Requests, stores.Quotes, requestUseCase, gateway, usecase.PaymentUseCaseOptions{
		Mock:               cfg.Payments.Mock,
		AccessToken:        cfg.Payments.MercadoPagoAccessToken,
		SandboxPayerEmail:  cfg.Payments.SandboxPayerEmail,
		SandboxPayerUserID: cfg.Payments.SandboxPayerUserID,
	}, log)
	analyticsUseCase := usecase.NewAnalyticsUseCase(stores.Requests, summaryCache, cfg.Redis.TTL, log)

	if cfg.App.Environment == "production" || cfg.App.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	serviceName := ""
	if cfg.Telemetry.Enabled {
		serviceName = cfg.Telemetry.ServiceName
	}
	router := routes.NewRouter(routes.Handlers{
		Quotes:    handlers.NewQuoteHandler(quoteUseCase),
		Requests:  handlers.NewServiceRequestHandler(requestUseCase, quoteUseCase),
		Payments:  handlers.NewPaymentHandler(paymentUseCase, requestUseCase, cfg.Payments.Mock, log),
		Analytics: handlers.NewAnalyticsHandler(analyticsUseCase),
	}, routes.Options{
		Auth:               middleware.AuthOptions{Secret: cfg.Auth.JWTSecret, Disabled: cfg.Auth.Disabled},
		CorsAllowedOrigins: cfg.App.CorsAllowedOrigins,
		ServiceName:        serviceName,
		Log:                log,
	})

	if err := routes.Run(ctx, ":"+cfg.App.Port, router, log); err != nil {
		log.Error("[app] failed to start the application", "err", err)
		return 1
	}
	log.Info("[app] stopped")
	return 0
}
