package domain

// EntityMetrics são as métricas de uma entidade acompanhada (página própria ou concorrente)
type EntityMetrics struct {
	Name        string  `json:"name"`
	AvgComments float64 `json:"avg_comments"`
	Color       string  `json:"color"`
}

// BarDatum é o mínimo que o gráfico de barras precisa
type BarDatum struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}
