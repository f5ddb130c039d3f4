// Package pgclient implementa o driver vivo do gateway lendo direto do Postgres do serviço hospedado.
package pgclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/database/postgres"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestRecorder recebe a duração e o resultado de cada consulta
type RequestRecorder interface {
	RecordBackendRequest(table string, outcome string, duration time.Duration)
}

type Client struct {
	conn     postgres.Queryer
	timeout  time.Duration
	recorder RequestRecorder
}

func NewClient(conn postgres.Queryer, timeout time.Duration) *Client {
	return &Client{
		conn:    conn,
		timeout: timeout,
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
		outcome := "success"
		var qErr *backend.QueryError
		if errors.As(err, &qErr) {
			outcome = qErr.Code
		}
		c.recorder.RecordBackendRequest(q.Table, outcome, time.Since(start))
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"table": q.Table,
			"error": err.Error(),
		}).Debug("backend: consulta Postgres falhou")
		return backend.Result{Err: err}
	}

	return backend.Result{Data: data}
}

func (c *Client) execute(ctx context.Context, q backend.Query) ([]byte, error) {
	query, args, err := BuildSQL(q)
	if err != nil {
		return nil, backend.NewQueryError(backend.CodeInvalidQuery, q.Table, "", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var raw []byte
	if err := c.conn.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			code := backend.CodeRemote
			if pqErr.Code == "42501" { // insufficient_privilege
				code = backend.CodeUnauthorized
			}
			return nil, backend.NewQueryError(code, q.Table, fmt.Sprintf("database error (code: %s)", pqErr.Code), pqErr)
		}
		return nil, backend.NewQueryError(backend.CodeTransport, q.Table, "", errors.Wrap(err, "falha ao executar a query"))
	}

	return ShapeResult(q, raw)
}

// BuildSQL monta uma consulta que devolve as linhas como um único array JSON
func BuildSQL(q backend.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	columns := q.Columns
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	inner := squirrel.Select(columns...).From(q.Table)

	for _, f := range q.Filters {
		inner = inner.Where(squirrel.Eq{f.Column: f.Value})
	}

	// Em modo linha única basta saber se existe mais de uma
	if q.SingleRow {
		inner = inner.Limit(2)
	}

	aggregate := "json_agg(t)"
	if len(q.Orders) > 0 {
		orders := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			direction := "DESC"
			if o.Ascending {
				direction = "ASC"
			}
			orders = append(orders, fmt.Sprintf("t.%s %s", o.Column, direction))
		}
		aggregate = fmt.Sprintf("json_agg(t ORDER BY %s)", strings.Join(orders, ", "))
	}

	return squirrel.
		Select(fmt.Sprintf("COALESCE(%s, '[]'::json)", aggregate)).
		FromSelect(inner, "t").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// ShapeResult aplica a regra de linha única sobre o array devolvido pelo banco
func ShapeResult(q backend.Query, raw []byte) ([]byte, error) {
	if !q.SingleRow {
		return raw, nil
	}

	var rows []jsoniter.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, backend.NewQueryError(backend.CodeDecode, q.Table, "", err)
	}

	switch len(rows) {
	case 1:
		return rows[0], nil
	case 0:
		return nil, backend.NewQueryError(backend.CodeCardinality, q.Table, "JSON object requested, no rows returned", nil)
	default:
		return nil, backend.NewQueryError(backend.CodeCardinality, q.Table, "JSON object requested, multiple rows returned", nil)
	}
}
