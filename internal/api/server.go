package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/internal/api/handler"
	"github.com/vfg2006/social-insights-dashboard/internal/api/handler/router"
	"github.com/vfg2006/social-insights-dashboard/internal/config"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/account"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/servicing"
	"github.com/vfg2006/social-insights-dashboard/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne o que as rotas precisam
type Dependencies struct {
	BackendMode       string
	ServicingService  servicing.ServicingService
	AccountService    account.AccountService
	ChartRenderer     handler.ChartRenderer
	PanelRenderer     handler.PanelRenderer
	MetricsHandler    http.Handler
	CacheSweepService handler.CronJob
	Cache             handler.CacheInvalidator
}

// NewHandler monta o router com a cadeia de middlewares
func NewHandler(config *config.Config, deps Dependencies) http.Handler {
	cronServices := handler.CronJobServices{
		CacheSweepService: deps.CacheSweepService,
	}

	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(deps.BackendMode)...),
		router.WithRoutes(handler.Metrics(deps.MetricsHandler)...),
		router.WithRoutes(handler.ContractedServices(deps.ServicingService)...),
		router.WithRoutes(handler.MetaAdAccounts(deps.AccountService)...),
		router.WithRoutes(handler.Charts(deps.ChartRenderer)...),
		router.WithRoutes(handler.Pages(deps.PanelRenderer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	}
	if deps.Cache != nil {
		configs = append(configs, router.WithRoutes(handler.CacheInvalidation(deps.Cache)...))
	}

	rt := router.New(configs...)

	logrus.WithField("routes", rt.Routes()).Debug("Rotas registradas")

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(config.Backend.JWTSecret),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	if deps.ServicingService == nil || deps.AccountService == nil {
		return nil, fmt.Errorf("servicing and account services are required")
	}
	if deps.ChartRenderer == nil || deps.PanelRenderer == nil {
		return nil, fmt.Errorf("chart and panel renderers are required")
	}
	if deps.MetricsHandler == nil {
		deps.MetricsHandler = http.NotFoundHandler()
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, deps),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
