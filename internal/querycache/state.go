package querycache

import "time"

type Status string

const (
	// StatusPending: ainda sem dado, com requisição em andamento ou não iniciada
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State é o resultado observado de uma consulta. As transições por requisição
// são pending -> success ou pending -> error.
type State[T any] struct {
	Status    Status
	Data      T
	Err       error
	IsLoading bool
	UpdatedAt time.Time
}

// Disabled é o estado de uma consulta sem o parâmetro obrigatório: nenhuma
// requisição é feita e não há carregamento em curso.
func Disabled[T any]() State[T] {
	return State[T]{Status: StatusPending, IsLoading: false}
}

func (s State[T]) IsError() bool {
	return s.Status == StatusError
}
