package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend/gateway"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/repository"
	"github.com/vfg2006/social-insights-dashboard/internal/api"
	"github.com/vfg2006/social-insights-dashboard/internal/config"
	"github.com/vfg2006/social-insights-dashboard/internal/metrics"
	"github.com/vfg2006/social-insights-dashboard/internal/presentation/chart"
	"github.com/vfg2006/social-insights-dashboard/internal/presentation/emptystate"
	"github.com/vfg2006/social-insights-dashboard/internal/querycache"
	"github.com/vfg2006/social-insights-dashboard/internal/scheduler"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/account"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/servicing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	client, closer, err := gateway.New(ctx, cfg, collector, pgconn)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o gateway do backend")
	}
	defer closer.Close()

	cache := querycache.New(querycache.Options{
		StaleTime: cfg.QueryCache.StaleTime(),
		GCTime:    cfg.QueryCache.GCTime(),
		Recorder:  collector,
	})

	projectRepo := repository.NewProjectRepository(client)
	metaAdAccountRepo := repository.NewMetaAdAccountRepository(client)

	servicingService := servicing.NewService(projectRepo, cache)
	accountService := account.NewService(metaAdAccountRepo, cache)

	chartRenderer, err := chart.NewRenderer(cfg.Chart.Locale)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o gráfico")
	}

	cacheSweepService := scheduler.NewCacheSweepService(cache, collector, cfg)
	if err := cacheSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do cache")
	} else {
		logrus.Info("Agendador de limpeza do cache iniciado com sucesso")
	}

	if cfg.Backend.JWTSecret == "" {
		logrus.Warn("SUPABASE_JWT_SECRET ausente: rotas de serviço (cron e cache) ficam indisponíveis")
	}

	server, err := api.New(cfg, api.Dependencies{
		BackendMode:       gateway.Mode(client),
		ServicingService:  servicingService,
		AccountService:    accountService,
		ChartRenderer:     chartRenderer,
		PanelRenderer:     emptystate.NewRenderer(),
		MetricsHandler:    metrics.Handler(registry),
		CacheSweepService: cacheSweepService,
		Cache:             cache,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria e testa a conexão com o banco de dados do driver postgres
func pgconn(ctx context.Context, dbConfig config.Database) (*postgres.Connection, error) {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		return nil, err
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn, nil
}
