// Package gateway escolhe, uma única vez na inicialização, qual implementação
// de backend.Client será injetada nos repositórios.
package gateway

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend/pgclient"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend/restclient"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/social-insights-dashboard/internal/config"
)

// Recorder agrega as métricas dos drivers e do modo desabilitado
type Recorder interface {
	backend.DisabledRecorder
	RecordBackendRequest(table string, outcome string, duration time.Duration)
}

// Connector abre a conexão do driver postgres
type Connector func(ctx context.Context, cfg config.Database) (*postgres.Connection, error)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New devolve o cliente configurado e um Closer para os recursos abertos.
// Falta de credenciais não é erro: resulta no cliente desabilitado.
func New(ctx context.Context, cfg *config.Config, recorder Recorder, connect Connector) (backend.Client, io.Closer, error) {
	switch cfg.Backend.Driver {
	case config.BackendDriverPostgres:
		if cfg.Database.DSN == "" {
			return disabled(recorder, "DATABASE_URL"), nopCloser{}, nil
		}

		conn, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		logrus.Info("Gateway do backend usando conexão direta com PostgreSQL")

		client := pgclient.NewClient(conn, cfg.Backend.Timeout())
		if recorder != nil {
			client.WithRecorder(recorder)
		}
		return client, conn, nil

	default:
		if missing := cfg.Backend.Missing(); len(missing) > 0 {
			return disabled(recorder, missing...), nopCloser{}, nil
		}

		logrus.WithField("url", cfg.Backend.URL).Info("Gateway do backend usando API REST")

		client := restclient.NewClient(cfg.Backend.URL, cfg.Backend.AnonKey, cfg.Backend.Timeout())
		if recorder != nil {
			client.WithRecorder(recorder)
		}
		return client, nopCloser{}, nil
	}
}

func disabled(recorder Recorder, missing ...string) backend.Client {
	logrus.WithField("missing", missing).Warn("Credenciais do backend ausentes: gateway operando em modo desabilitado")

	client := backend.NewDisabled(missing...)
	if recorder != nil {
		client.WithRecorder(recorder)
	}
	return client
}

const ModeDisabled = "disabled"

// Mode descreve o cliente em uso, exposto no healthcheck
func Mode(client backend.Client) string {
	switch client.(type) {
	case *backend.Disabled:
		return ModeDisabled
	case *pgclient.Client:
		return config.BackendDriverPostgres
	case *restclient.Client:
		return config.BackendDriverREST
	default:
		return "unknown"
	}
}
