package backend

import (
	"fmt"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Filter é um filtro de igualdade sobre uma coluna
type Filter struct {
	Column string
	Value  any
}

// Order é uma ordenação sobre uma coluna
type Order struct {
	Column    string
	Ascending bool
}

// Query descreve uma leitura sobre uma tabela do serviço remoto.
// Os métodos retornam cópias, então uma Query base pode ser reaproveitada.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Orders  []Order
	// SingleRow exige exatamente uma linha no resultado
	SingleRow bool
}

func From(table string) Query {
	return Query{Table: table}
}

func (q Query) Select(columns ...string) Query {
	q.Columns = append(append([]string(nil), q.Columns...), columns...)
	return q
}

func (q Query) Eq(column string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

func (q Query) OrderAsc(column string) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Column: column, Ascending: true})
	return q
}

func (q Query) Single() Query {
	q.SingleRow = true
	return q
}

// Validate garante que tabela e colunas são identificadores simples,
// já que os drivers os interpolam na URL ou no SQL.
func (q Query) Validate() error {
	if !identifierPattern.MatchString(q.Table) {
		return fmt.Errorf("invalid table name %q", q.Table)
	}

	for _, c := range q.Columns {
		if !identifierPattern.MatchString(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
	}

	for _, f := range q.Filters {
		if !identifierPattern.MatchString(f.Column) {
			return fmt.Errorf("invalid filter column %q", f.Column)
		}
	}

	for _, o := range q.Orders {
		if !identifierPattern.MatchString(o.Column) {
			return fmt.Errorf("invalid order column %q", o.Column)
		}
	}

	return nil
}
