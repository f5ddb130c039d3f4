package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/vfg2006/social-insights-dashboard/internal/presentation/emptystate"
	"github.com/vfg2006/social-insights-dashboard/pkg/apiErrors"
	"github.com/vfg2006/social-insights-dashboard/pkg/log"
)

type PanelRenderer interface {
	Render(w io.Writer, p emptystate.Panel) error
}

func EmptyStatePage(renderer PanelRenderer, panel emptystate.Panel) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := renderer.Render(&buf, panel); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao renderizar página")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao renderizar página", nil)
			return
		}

		writeHTML(w, buf.Bytes())
	})
}
