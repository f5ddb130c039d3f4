package emptystate

import (
	"bytes"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Panel é um painel estático sem dependência de dados. Body é Markdown.
type Panel struct {
	Icon    string
	Heading string
	Body    string
}

var (
	analysesPanel = Panel{
		Icon:    "chart-line",
		Heading: "Nenhuma análise disponível",
		Body: "As análises do projeto aparecem aqui assim que houver dados coletados.\n\n" +
			"Enquanto isso, confira os **serviços contratados** e as **contas de anúncios** vinculadas.",
	}

	reportsPanel = Panel{
		Icon:    "file-text",
		Heading: "Nenhum relatório gerado",
		Body: "Os relatórios mensais ficam disponíveis aqui ao final de cada período.\n\n" +
			"Nenhuma ação é necessária.",
	}
)

func Analyses() Panel {
	return analysesPanel
}

func Reports() Panel {
	return reportsPanel
}

const panelTemplate = `<section class="empty-state" data-icon="{{.Icon}}">
  <span class="empty-state__icon icon-{{.Icon}}" aria-hidden="true"></span>
  <h2 class="empty-state__heading">{{.Heading}}</h2>
  <div class="empty-state__body">{{.Body}}</div>
</section>
`

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	tmpl   *template.Template
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)

	return &Renderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
		tmpl:   template.Must(template.New("empty-state").Parse(panelTemplate)),
	}
}

func (r *Renderer) Render(w io.Writer, p Panel) error {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(p.Body), &body); err != nil {
		return errors.Wrap(err, "failed to convert empty state body")
	}

	data := struct {
		Icon    string
		Heading string
		Body    template.HTML
	}{
		Icon:    p.Icon,
		Heading: p.Heading,
		Body:    template.HTML(r.policy.Sanitize(body.String())),
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, "failed to render empty state")
	}

	return nil
}
