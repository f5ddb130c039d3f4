package restclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
)

type recordedRequest struct {
	table   string
	outcome string
}

type fakeRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) RecordBackendRequest(table string, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{table: table, outcome: outcome})
}

func TestBuildParams(t *testing.T) {
	q := backend.From("meta_ad_accounts").
		Eq("project_id", "p1").
		OrderAsc("created_at")

	params := BuildParams(q)

	assert.Equal(t, "*", params.Get("select"))
	assert.Equal(t, "eq.p1", params.Get("project_id"))
	assert.Equal(t, "created_at.asc", params.Get("order"))

	desc := backend.From("projects").Select("id", "contracted_services")
	desc.Orders = []backend.Order{{Column: "id", Ascending: false}}
	params = BuildParams(desc)
	assert.Equal(t, "id,contracted_services", params.Get("select"))
	assert.Equal(t, "id.desc", params.Get("order"))
}

func TestClient_ExecuteList(t *testing.T) {
	var gotPath, gotQuery, gotAPIKey, gotAuth, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"account_name":"Conta A"},{"account_name":"Conta B"}]`))
	}))
	defer server.Close()

	recorder := &fakeRecorder{}
	client := NewClient(server.URL+"/", "anon-key", time.Second).WithRecorder(recorder)

	res := client.Execute(context.Background(), backend.From("meta_ad_accounts").OrderAsc("account_name"))
	require.NoError(t, res.Err)

	var rows []map[string]string
	require.NoError(t, res.Decode(&rows))
	assert.Len(t, rows, 2)

	assert.Equal(t, "/rest/v1/meta_ad_accounts", gotPath)
	assert.Equal(t, "order=account_name.asc&select=%2A", gotQuery)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, []recordedRequest{{table: "meta_ad_accounts", outcome: "success"}}, recorder.requests)
}

func TestClient_ForwardsUserToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx := backend.WithAccessToken(context.Background(), "user-jwt")
	res := NewClient(server.URL, "anon-key", time.Second).Execute(ctx, backend.From("projects"))

	require.NoError(t, res.Err)
	assert.Equal(t, "Bearer user-jwt", gotAuth)
}

func TestClient_SingleRow(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantStatus int
	}{
		{
			name:   "exatamente uma linha",
			status: http.StatusOK,
			body:   `{"contracted_services":{"channels":["instagram"]}}`,
		},
		{
			name:       "mais de uma linha",
			status:     http.StatusNotAcceptable,
			body:       `{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned","details":"The result contains 2 rows"}`,
			wantCode:   backend.CodeCardinality,
			wantStatus: http.StatusNotAcceptable,
		},
		{
			name:       "não autorizado",
			status:     http.StatusUnauthorized,
			body:       `{"code":"PGRST301","message":"JWT expired"}`,
			wantCode:   backend.CodeUnauthorized,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "erro do servidor com corpo não JSON",
			status:     http.StatusInternalServerError,
			body:       `upstream exploded`,
			wantCode:   backend.CodeRemote,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAccept, gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAccept = r.Header.Get("Accept")
				gotQuery = r.URL.Query().Get("id")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			q := backend.From("projects").Select("contracted_services").Eq("id", "p1").Single()
			res := NewClient(server.URL, "anon-key", time.Second).Execute(context.Background(), q)

			assert.Equal(t, "application/vnd.pgrst.object+json", gotAccept)
			assert.Equal(t, "eq.p1", gotQuery)

			if tt.wantCode == "" {
				require.NoError(t, res.Err)
				assert.JSONEq(t, tt.body, string(res.Data))
				return
			}

			assert.Nil(t, res.Data)
			var qErr *backend.QueryError
			require.True(t, errors.As(res.Err, &qErr))
			assert.Equal(t, tt.wantCode, qErr.Code)
			assert.Equal(t, tt.wantStatus, qErr.Status)
			assert.Equal(t, "projects", qErr.Table)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	recorder := &fakeRecorder{}
	res := NewClient(server.URL, "anon-key", time.Second).
		WithRecorder(recorder).
		Execute(context.Background(), backend.From("projects"))

	var qErr *backend.QueryError
	require.True(t, errors.As(res.Err, &qErr))
	assert.Equal(t, backend.CodeTransport, qErr.Code)
	assert.Equal(t, []recordedRequest{{table: "projects", outcome: backend.CodeTransport}}, recorder.requests)
}

func TestClient_InvalidQueryNeverHitsNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	res := NewClient(server.URL, "anon-key", time.Second).
		Execute(context.Background(), backend.From("projects").Eq("id;", "p1"))

	var qErr *backend.QueryError
	require.True(t, errors.As(res.Err, &qErr))
	assert.Equal(t, backend.CodeInvalidQuery, qErr.Code)
	assert.Zero(t, calls)
}
