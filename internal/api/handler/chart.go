package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/vfg2006/social-insights-dashboard/internal/domain"
	"github.com/vfg2006/social-insights-dashboard/pkg/apiErrors"
	"github.com/vfg2006/social-insights-dashboard/pkg/log"
)

const maxChartBodyBytes = 1 << 20

type ChartRenderer interface {
	RenderCommentsAverage(w io.Writer, metrics []domain.EntityMetrics) (bool, error)
}

// CommentsAverageChart recebe as métricas no corpo e responde o painel HTML,
// ou 204 quando a lista é vazia.
func CommentsAverageChart(renderer ChartRenderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var metrics []domain.EntityMetrics
		if err := json.NewDecoder(io.LimitReader(r.Body, maxChartBodyBytes)).Decode(&metrics); err != nil {
			logger.WithError(err).Warn("Corpo inválido para o gráfico de comentários")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo deve ser uma lista de métricas", nil)
			return
		}

		var buf bytes.Buffer
		rendered, err := renderer.RenderCommentsAverage(&buf, metrics)
		if err != nil {
			logger.WithError(err).Error("Erro ao renderizar gráfico de comentários")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao renderizar gráfico", nil)
			return
		}

		if !rendered {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeHTML(w, buf.Bytes())
	})
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		log.L.WithError(err).Warn("Erro ao escrever resposta HTML")
	}
}
