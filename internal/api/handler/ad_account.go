package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/social-insights-dashboard/internal/usecases/account"
	"github.com/vfg2006/social-insights-dashboard/pkg/log"
)

// ListMetaAdAccounts lista as contas do projeto ou, sem project_id, todas por nome
func ListMetaAdAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(r.URL.Query().Get("project_id"))

		log.ForContext(r.Context()).WithField("project_id", projectID).Debug("INIT - ListMetaAdAccounts")

		state := service.GetMetaAdAccounts(r.Context(), projectID)
		writeState(w, state, newStateResponse(state))
	})
}

func ListAllMetaAdAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Debug("INIT - ListAllMetaAdAccounts")

		state := service.GetAllMetaAdAccounts(r.Context())
		writeState(w, state, newStateResponse(state))
	})
}
