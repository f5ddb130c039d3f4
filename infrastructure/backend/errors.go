package backend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured indica que o gateway está em modo desabilitado
	ErrNotConfigured = errors.New("backend client not configured")
)

// Códigos de QueryError
const (
	CodeTransport    = "transport"
	CodeUnauthorized = "unauthorized"
	CodeCardinality  = "cardinality"
	CodeRemote       = "remote"
	CodeDecode       = "decode"
	CodeInvalidQuery = "invalid_query"
)

// ConfigurationError é devolvido por todas as operações do cliente desabilitado
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) == 0 {
		return ErrNotConfigured.Error()
	}
	return fmt.Sprintf("%s: missing %s", ErrNotConfigured.Error(), strings.Join(e.Missing, ", "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrNotConfigured
}

// QueryError cobre falhas de transporte, autorização e cardinalidade
type QueryError struct {
	Code    string // Categoria do erro
	Table   string // Tabela consultada
	Status  int    // Status HTTP ou 0 quando não se aplica
	Message string // Mensagem do serviço remoto
	Err     error  // Erro base
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("query %s on %q failed", e.Code, e.Table)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func NewQueryError(code string, table string, message string, err error) *QueryError {
	return &QueryError{
		Code:    code,
		Table:   table,
		Message: message,
		Err:     err,
	}
}

// IsCardinality informa se o erro é uma violação de linha única
func IsCardinality(err error) bool {
	var qErr *QueryError
	return errors.As(err, &qErr) && qErr.Code == CodeCardinality
}
