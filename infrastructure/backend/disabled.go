package backend

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DisabledRecorder recebe uma notificação a cada chamada no modo desabilitado
type DisabledRecorder interface {
	RecordDisabledCall(table string)
}

// Disabled é o substituto usado quando faltam credenciais. Toda chamada
// resolve imediatamente com ConfigurationError e registra um aviso.
type Disabled struct {
	missing  []string
	recorder DisabledRecorder
}

func NewDisabled(missing ...string) *Disabled {
	return &Disabled{missing: missing}
}

func (d *Disabled) WithRecorder(recorder DisabledRecorder) *Disabled {
	d.recorder = recorder
	return d
}

func (d *Disabled) Execute(_ context.Context, q Query) Result {
	err := &ConfigurationError{Missing: d.missing}

	logrus.WithFields(logrus.Fields{
		"table":   q.Table,
		"missing": d.missing,
	}).Warn("Backend não configurado: consulta ignorada")

	if d.recorder != nil {
		d.recorder.RecordDisabledCall(q.Table)
	}

	return Result{Data: nil, Err: err}
}
