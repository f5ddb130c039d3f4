// Package backend define o handle compartilhado de leitura sobre o serviço de dados remoto.
package backend

import (
	"context"

	jsoniter "github.com/json-iterator/go"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client executa consultas de leitura. Nunca entra em pânico e nunca devolve
// erro fora do Result.
type Client interface {
	Execute(ctx context.Context, q Query) Result
}

// Result carrega o JSON devolvido pelo serviço ou o erro da consulta.
// Em consultas SingleRow, Data é um objeto; nas demais, um array.
type Result struct {
	Data []byte
	Err  error
}

func (r Result) Decode(v any) error {
	if r.Err != nil {
		return r.Err
	}
	if r.Data == nil {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

type accessTokenKey struct{}

// WithAccessToken anexa o token do usuário atual ao contexto
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken devolve o token do usuário atual, se houver
func AccessToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
