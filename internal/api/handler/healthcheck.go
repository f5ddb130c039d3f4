package handler

import (
	"net/http"
	"time"
)

type healthcheckResponse struct {
	Status  string    `json:"status"`
	Backend string    `json:"backend"`
	Time    time.Time `json:"time"`
}

// HealthcheckHandler responde 200 mesmo com o backend desabilitado: o
// dashboard continua no ar, apenas sem dados.
func HealthcheckHandler(backendMode string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthcheckResponse{
			Status:  "ok",
			Backend: backendMode,
			Time:    time.Now(),
		})
	})
}
