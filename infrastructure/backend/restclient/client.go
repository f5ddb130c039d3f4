// Package restclient implementa o driver vivo do gateway sobre a API REST (PostgREST) do serviço hospedado.
package restclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	restPath           = "/rest/v1/"
	singleObjectAccept = "application/vnd.pgrst.object+json"
	// Código do PostgREST para "JSON object requested, multiple (or no) rows returned"
	singleObjectCode = "PGRST116"
	maxErrorBody     = 4096
)

// RequestRecorder recebe a duração e o resultado de cada requisição
type RequestRecorder interface {
	RecordBackendRequest(table string, outcome string, duration time.Duration)
}

// errorResponse é o corpo de erro padrão do PostgREST
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	recorder   RequestRecorder
}

func NewClient(baseURL string, anonKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) WithRecorder(recorder RequestRecorder) *Client {
	c.recorder = recorder
	return c
}

func (c *Client) Execute(ctx context.Context, q backend.Query) backend.Result {
	start := time.Now()

	data, err := c.execute(ctx, q)

	if c.recorder != nil {
		c.recorder.RecordBackendRequest(q.Table, outcome(err), time.Since(start))
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"table": q.Table,
			"error": err.Error(),
		}).Debug("backend: consulta REST falhou")
		return backend.Result{Err: err}
	}

	return backend.Result{Data: data}
}

func (c *Client) execute(ctx context.Context, q backend.Query) ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, backend.NewQueryError(backend.CodeInvalidQuery, q.Table, "", err)
	}

	reqURL := c.baseURL + restPath + q.Table + "?" + BuildParams(q).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backend.NewQueryError(backend.CodeTransport, q.Table, "", errors.Wrap(err, "erro ao criar a requisição"))
	}

	bearer := c.anonKey
	if token, ok := backend.AccessToken(ctx); ok {
		bearer = token
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if q.SingleRow {
		req.Header.Set("Accept", singleObjectAccept)
	} else {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, backend.NewQueryError(backend.CodeTransport, q.Table, "", errors.Wrap(err, "erro ao fazer a requisição"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, backend.NewQueryError(backend.CodeTransport, q.Table, "", errors.Wrap(err, "erro ao ler a resposta"))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, handleErrorResponse(q.Table, resp.StatusCode, body)
}

// BuildParams traduz a Query para os parâmetros de URL do PostgREST
func BuildParams(q backend.Query) url.Values {
	params := url.Values{}

	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	} else {
		params.Set("select", "*")
	}

	for _, f := range q.Filters {
		params.Add(f.Column, fmt.Sprintf("eq.%v", f.Value))
	}

	if len(q.Orders) > 0 {
		orders := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			direction := "desc"
			if o.Ascending {
				direction = "asc"
			}
			orders = append(orders, o.Column+"."+direction)
		}
		params.Set("order", strings.Join(orders, ","))
	}

	return params
}

func handleErrorResponse(table string, status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		errResp.Message = string(body)
	}

	message := errResp.Message
	if errResp.Details != "" {
		message = fmt.Sprintf("%s (%s)", message, errResp.Details)
	}

	code := backend.CodeRemote
	switch {
	case status == http.StatusNotAcceptable || errResp.Code == singleObjectCode:
		code = backend.CodeCardinality
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = backend.CodeUnauthorized
	}

	queryErr := backend.NewQueryError(code, table, message, nil)
	queryErr.Status = status
	return queryErr
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}

	var qErr *backend.QueryError
	if errors.As(err, &qErr) {
		return qErr.Code
	}
	return "error"
}
