package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "ritual_desk/docs"
	"ritual_desk/internal/adapter/http/handlers"
	"ritual_desk/internal/adapter/http/middleware"
	"ritual_desk/internal/infrastructure/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const shutdownTimeout = 10 * time.Second

// Handlers are the route targets, built by the caller.
type Handlers struct {
	Quotes    *handlers.QuoteHandler
	Requests  *handlers.ServiceRequestHandler
	Payments  *handlers.PaymentHandler
	Analytics *handlers.AnalyticsHandler
}

type Options struct {
	Auth               middleware.AuthOptions
	CorsAllowedOrigins []string
	ServiceName        string
	Log                *logger.Logger
}

// NewRouter mounts every route under /v1. Client routes need a valid token;
// admin routes additionally need the admin role.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}

	router := gin.New()
	setMiddlewares(router, opts, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authed := v1.Group("", middleware.JWTAuth(opts.Auth))
	addClientRoutes(authed, h)

	admin := authed.Group(PathAdmin, middleware.RequireAdmin())
	addAdminRoutes(admin, h)

	return router
}

func setMiddlewares(router *gin.Engine, opts Options, log *logger.Logger) {
	router.Use(middleware.Recovery(log))
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(middleware.RequestLogger(log))
	corsCfg := cors.Config{
		AllowOrigins:     opts.CorsAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderActorID, middleware.HeaderActorRole},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	router.Use(cors.New(corsCfg))
}

// Run serves router on addr until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, addr string, router http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("[http][server] listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
