package pgclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
)

func TestBuildSQL(t *testing.T) {
	tests := []struct {
		name     string
		query    backend.Query
		contains []string
		args     []any
	}{
		{
			name:  "contas de um projeto ordenadas por criação",
			query: backend.From("meta_ad_accounts").Eq("project_id", "p1").OrderAsc("created_at"),
			contains: []string{
				"COALESCE(json_agg(t ORDER BY t.created_at ASC), '[]'::json)",
				"SELECT * FROM meta_ad_accounts WHERE project_id = $1",
				"AS t",
			},
			args: []any{"p1"},
		},
		{
			name:  "todas as contas ordenadas por nome",
			query: backend.From("meta_ad_accounts").OrderAsc("account_name"),
			contains: []string{
				"json_agg(t ORDER BY t.account_name ASC)",
				"SELECT * FROM meta_ad_accounts",
			},
		},
		{
			name:  "linha única com projeção",
			query: backend.From("projects").Select("contracted_services").Eq("id", "p1").Single(),
			contains: []string{
				"COALESCE(json_agg(t), '[]'::json)",
				"SELECT contracted_services FROM projects WHERE id = $1 LIMIT 2",
			},
			args: []any{"p1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildSQL(tt.query)
			require.NoError(t, err)

			for _, fragment := range tt.contains {
				assert.Contains(t, sql, fragment)
			}
			assert.Equal(t, len(tt.args), len(args))
			for i := range tt.args {
				assert.Equal(t, tt.args[i], args[i])
			}
		})
	}
}

func TestBuildSQL_RejectsInvalidIdentifiers(t *testing.T) {
	_, _, err := BuildSQL(backend.From("projects").OrderAsc("id; drop table projects"))
	assert.Error(t, err)
}

func TestShapeResult(t *testing.T) {
	single := backend.From("projects").Single()

	data, err := ShapeResult(single, []byte(`[{"id":"p1"}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1"}`, string(data))

	_, err = ShapeResult(single, []byte(`[]`))
	assert.True(t, backend.IsCardinality(err))

	_, err = ShapeResult(single, []byte(`[{"id":"p1"},{"id":"p1"}]`))
	assert.True(t, backend.IsCardinality(err))

	_, err = ShapeResult(single, []byte(`not json`))
	var qErr *backend.QueryError
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, backend.CodeDecode, qErr.Code)

	list, err := ShapeResult(backend.From("projects"), []byte(`[{"id":"p1"},{"id":"p2"}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"},{"id":"p2"}]`, string(list))
}
