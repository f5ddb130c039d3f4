package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/social-insights-dashboard/internal/usecases/servicing"
	"github.com/vfg2006/social-insights-dashboard/pkg/log"
)

type contractedServicesResponse struct {
	stateResponse
	Channels   []string `json:"channels"`
	HasChannel *bool    `json:"has_channel,omitempty"`
}

func GetContractedServices(service servicing.ServicingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		projectID := strings.TrimSpace(query.Get("project_id"))
		channel := strings.TrimSpace(query.Get("channel"))

		log.ForContext(r.Context()).WithField("project_id", projectID).Debug("INIT - GetContractedServices")

		state := service.GetContractedServices(r.Context(), projectID)

		resp := contractedServicesResponse{
			stateResponse: newStateResponse(state.State),
			Channels:      state.Channels,
		}

		if channel != "" {
			hasChannel := state.HasChannel(channel)
			resp.HasChannel = &hasChannel
		}

		writeState(w, state.State, resp)
	})
}
