package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/social-insights-dashboard/internal/domain"
	"github.com/vfg2006/social-insights-dashboard/pkg/utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale = "pt-BR"

	commentsAverageTitle  = "Média de comentários por publicação"
	commentsAverageSeries = "Média de comentários"
	chartHeight           = "320px"
	chartIDPrefix         = "chart"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Hex, nomes (red, steelblue) e rgb()/rgba()/hsl()/hsla()
var cssColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)

type Renderer struct {
	printer *message.Printer
	newID   func() (string, error)
}

// NewRenderer cria o renderizador para o locale informado (BCP 47).
func NewRenderer(locale string) (*Renderer, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid chart locale %q", locale)
	}

	return &Renderer{
		printer: message.NewPrinter(tag),
		newID: func() (string, error) {
			return utils.GenerateElementID(chartIDPrefix)
		},
	}, nil
}

// FormatValue formata o valor no locale do renderizador com até duas casas decimais.
func (r *Renderer) FormatValue(value float64) string {
	return r.printer.Sprint(number.Decimal(value, number.MaxFractionDigits(2)))
}

// RenderCommentsAverage escreve o painel de média de comentários. Com a lista
// vazia nada é escrito e o retorno é false.
func (r *Renderer) RenderCommentsAverage(w io.Writer, metrics []domain.EntityMetrics) (bool, error) {
	data := Transform(metrics)
	if len(data) == 0 {
		return false, nil
	}

	bar, labels, err := r.barChart(data)
	if err != nil {
		return false, err
	}

	// O go-echarts grava as opções num <script> sem escapar HTML
	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return false, errors.Wrap(err, "failed to render comments average chart")
	}

	if _, err := labels.WriteString(w, buf.String()); err != nil {
		return false, errors.Wrap(err, "failed to write comments average chart")
	}

	return true, nil
}

// barChart monta o gráfico com marcadores no lugar dos nomes. O Replacer
// devolvido troca cada marcador pelo nome escapado para string JavaScript.
func (r *Renderer) barChart(data []domain.BarDatum) (*charts.Bar, *strings.Replacer, error) {
	chartID, err := r.newID()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate chart id")
	}

	labels := make([]string, 0, len(data))
	items := make([]opts.BarData, 0, len(data))
	replacements := make([]string, 0, 2*len(data))

	for i, d := range data {
		placeholder := chartID + "_label_" + strconv.Itoa(i) + "_"
		replacements = append(replacements, placeholder, scriptSafe(d.Label))

		labels = append(labels, placeholder)
		items = append(items, opts.BarData{
			Name:      placeholder,
			Value:     d.Value,
			ItemStyle: &opts.ItemStyle{Color: SafeColor(d.Color)},
			Tooltip: &opts.Tooltip{
				Show: true,
				// O tooltip do ECharts interpreta HTML
				Formatter: fmt.Sprintf("%s: %s", html.EscapeString(d.Label), r.FormatValue(d.Value)),
			},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: commentsAverageTitle,
			ChartID:   chartID,
			Width:     "100%",
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: commentsAverageTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: false}),
	)

	bar.SetXAxis(labels).
		AddSeries(commentsAverageSeries, items,
			charts.WithLabelOpts(opts.Label{Show: true, Position: "top"}),
		)

	return bar, strings.NewReplacer(replacements...), nil
}

// scriptSafe escapa o texto para dentro de uma string JSON em <script>:
// <, > e & viram \u003c, \u003e e \u0026.
func scriptSafe(text string) string {
	encoded, err := json.Marshal(text)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(string(encoded), `"`), `"`)
}

// SafeColor devolve a cor quando é uma cor CSS simples. Qualquer outra coisa
// vira vazio e o ECharts usa a paleta padrão.
func SafeColor(color string) string {
	color = strings.TrimSpace(color)
	if !cssColorPattern.MatchString(color) {
		return ""
	}
	return color
}
