package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"goflare.io/billing"
	"goflare.io/billing/config"
	"goflare.io/billing/handlers"
)

type Server struct {
	echo     *echo.Echo
	grpc     *GRPCServer
	config   config.ServerConfig
	billing  billing.Billing
	registry *prometheus.Registry
	logger   *zap.Logger

	SetupIntent handlers.SetupIntentHandler
	Webhook     handlers.WebhookHandler
}

func NewServer(
	appConfig *config.Config,
	SetupIntent handlers.SetupIntentHandler,
	Webhook handlers.WebhookHandler,
	billing billing.Billing,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()

	s := &Server{
		echo:        e,
		grpc:        NewGRPCServer(logger),
		config:      appConfig.Server,
		billing:     billing,
		registry:    registry,
		logger:      logger,
		SetupIntent: SetupIntent,
		Webhook:     Webhook,
	}
	s.registerMiddlewares()
	s.registerRoutes()

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens for HTTP connections on the configured address.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("address", s.config.Address))
	return s.echo.Start(s.config.Address)
}

// Run starts the HTTP and gRPC servers and blocks until SIGINT/SIGTERM or a listener fails,
// then shuts both down within the configured timeout and closes the billing pipeline.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := s.grpc.Start(s.config.GRPCAddress); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		s.logger.Error("Server failed", zap.Error(runErr))
	}

	return errors.Join(runErr, s.Shutdown())
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	err := s.echo.Shutdown(ctx)
	s.grpc.Stop()
	s.billing.Close()
	return err
}

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				s.logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			s.logger.Info("request", fields...)
			return nil
		},
	}))
}

func (s *Server) registerRoutes() {

	s.echo.GET("/setup_intents", s.SetupIntent.ListSetupIntents)
	s.echo.GET("/setup_intents/:id", s.SetupIntent.GetSetupIntent)

	s.echo.POST("/webhook", s.Webhook.HandleStripeWebhook)

	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})))
}
