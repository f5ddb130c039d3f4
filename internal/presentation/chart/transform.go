package chart

import "github.com/vfg2006/social-insights-dashboard/internal/domain"

// Transform mapeia as métricas para o formato do gráfico de barras,
// mantendo a ordem e o tamanho da entrada.
func Transform(metrics []domain.EntityMetrics) []domain.BarDatum {
	data := make([]domain.BarDatum, 0, len(metrics))

	for _, m := range metrics {
		data = append(data, domain.BarDatum{
			Label: m.Name,
			Value: m.AvgComments,
			Color: m.Color,
		})
	}

	return data
}
