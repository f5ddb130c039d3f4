package handler

import (
	"errors"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/internal/querycache"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/account"
	"github.com/vfg2006/social-insights-dashboard/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// stateResponse é a representação JSON de um querycache.State
type stateResponse struct {
	Status    querycache.Status `json:"status"`
	IsLoading bool              `json:"is_loading"`
	Data      any               `json:"data"`
	Error     *stateError       `json:"error,omitempty"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
}

type stateError struct {
	Kind    string   `json:"kind"`
	Table   string   `json:"table,omitempty"`
	Status  int      `json:"status,omitempty"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func newStateResponse[T any](state querycache.State[T]) stateResponse {
	resp := stateResponse{
		Status:    state.Status,
		IsLoading: state.IsLoading,
		Data:      state.Data,
	}

	if !state.UpdatedAt.IsZero() {
		updatedAt := state.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	if state.Err != nil {
		resp.Error = describeError(state.Err)
	}

	return resp
}

func describeError(err error) *stateError {
	var cfgErr *backend.ConfigurationError
	if errors.As(err, &cfgErr) {
		return &stateError{Kind: "configuration", Message: err.Error(), Missing: cfgErr.Missing}
	}

	var qErr *backend.QueryError
	if errors.As(err, &qErr) {
		return &stateError{Kind: qErr.Code, Table: qErr.Table, Status: qErr.Status, Message: err.Error()}
	}

	if errors.Is(err, account.ErrReservedProjectID) {
		return &stateError{Kind: "validation", Message: err.Error()}
	}

	return &stateError{Kind: "unknown", Message: err.Error()}
}

// errorCode mapeia o erro do estado para o código da API
func errorCode(err error) (string, string) {
	var qErr *backend.QueryError

	switch {
	case errors.Is(err, account.ErrReservedProjectID):
		return apiErrors.ErrInvalidRequest, "project_id \"all\" é reservado"
	case errors.Is(err, backend.ErrNotConfigured):
		return apiErrors.ErrServiceNotConfigured, "Backend não configurado"
	case backend.IsCardinality(err):
		return apiErrors.ErrNotFound, "Registro não encontrado ou não é único"
	case errors.As(err, &qErr) && qErr.Code == backend.CodeUnauthorized:
		return apiErrors.ErrInvalidToken, "Acesso negado pelo backend"
	default:
		return apiErrors.ErrExternalService, "Erro ao consultar o backend"
	}
}

// writeState responde 200 para estados pendentes ou de sucesso e o erro
// padronizado da API, com o estado em details, quando a consulta falhou.
func writeState[T any](w http.ResponseWriter, state querycache.State[T], resp any) {
	if state.IsError() {
		code, message := errorCode(state.Err)
		apiErrors.WriteError(w, code, message, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Cabeçalho já enviado, resta registrar
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}
