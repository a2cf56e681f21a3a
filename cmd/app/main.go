package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"

	"nps/cmd/fx/account_fx"
	"nps/cmd/fx/company_fx"
	"nps/cmd/fx/controllers_fx"
	"nps/cmd/fx/dashboard"
	"nps/cmd/fx/db_fx"
	"nps/cmd/fx/evaluation_fx"
	"nps/cmd/fx/mail_fx"
	"nps/cmd/fx/memcache_fx"
	"nps/internal/api/controllers"
	"nps/internal/config"
	"nps/pkg/id"
	"nps/pkg/logger"
	"nps/pkg/middleware"
	mem "nps/pkg/memcache"
	"nps/pkg/utils"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// OTel must be ready before the logger picks its handler.
	telemetry, err := logger.SetupTelemetry(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}
	if err := utils.RegisterValidators(); err != nil {
		slog.ErrorContext(ctx, "failed to register validators", "error", err)
		os.Exit(1)
	}
	utils.SetExposeErrorDetails(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: slog.Default()}
		}),
		fx.Supply(cfg),

		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		company_fx.Module,
		account_fx.Module,
		evaluation_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRateLimiter),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
	}
}

func ProvideRateLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(cfg.HTTP.PublicRatePerMinute, cfg.HTTP.PublicRateBurst)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go limiter.Run(ctx, 10*time.Minute)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return limiter
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			go func() {
				slog.Info("http server starting", "port", cfg.Port, "env", cfg.Env)
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("http server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			slog.Info("stopping http server")
			return server.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config      config.Config
	DB          *gorm.DB
	JWT         *utils.JWTManager
	Revoked     mem.RevokedTokenStore
	Accounts    middleware.AccountChecker
	RateLimiter *middleware.RateLimiter

	AccountController    *controllers.AccountController
	UserController       *controllers.UserController
	CompanyController    *controllers.CompanyController
	EvaluationController *controllers.EvaluationController
	DashboardController  *controllers.DashboardController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	r := gin.New()

	// OTel opens the span first so that recovery and logging see its trace.
	if p.Config.OTel.Enabled() {
		r.Use(otelgin.Middleware(p.Config.OTel.ServiceName))
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.Logger())
	r.Use(middleware.CORSMiddleware(p.Config.HTTP.AllowedOrigins))

	RegisterRoutes(r, p)

	return r
}
