package crmapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/crmapi"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var session = &domain.Session{UserID: "user_2abc"}

func newClient(t *testing.T, baseURL string) (*crmapi.Client, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("crm-test", crmapi.BreakerIsSuccessful, nil)
	opts := crmapi.Options{
		BaseURL: baseURL,
		Lock:    "lock-value",
		Key:     "key-value",
		Resilience: resilience.Config{
			MaxRetries:     2,
			InitialBackoff: time.Millisecond,
			MaxConcurrency: 4,
		},
	}
	return crmapi.NewClient(&http.Client{Timeout: 2 * time.Second}, opts, cb, metrics, zap.NewNop()), metrics
}

func TestDo_SendsHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"id": 1, "clerk_id": "user_2abc"}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Users().Get(t.Context(), session, "user_2abc")

	require.True(t, env.Success)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "lock-value", got.Get(crmapi.HeaderLock))
	assert.Equal(t, "key-value", got.Get(crmapi.HeaderKey))
	assert.Equal(t, "user_2abc", got.Get(crmapi.HeaderID))
	assert.Equal(t, "no-cache", got.Get("Cache-Control"))
	assert.Equal(t, "no-cache", got.Get("Pragma"))
}

func TestDo_NoSessionSendsNothing(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	for _, sess := range []*domain.Session{nil, {}} {
		env := c.Companies().Get(t.Context(), sess, "c1")
		assert.False(t, env.Success)
		assert.Equal(t, http.StatusUnauthorized, env.Status)
		assert.Equal(t, domain.KindUnauthorized, env.Kind)
		assert.NotNil(t, env.Data)
		assert.Empty(t, env.Data)
	}
	assert.Zero(t, calls.Load())
}

func TestDo_RemoteErrorKeepsStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found."}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Companies().Details(t.Context(), session, "missing")

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, domain.KindRemote, env.Kind)
	assert.Empty(t, env.Data)
	assert.Equal(t, int32(1), calls.Load(), "4xx is not retried")
}

func TestDo_GetRetriedOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id": 3, "uuid": "c3", "name": "Acme"}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Companies().Get(t.Context(), session, "c3")

	require.True(t, env.Success)
	assert.Equal(t, int32(3), calls.Load())
	company, ok := env.First()
	require.True(t, ok)
	assert.Equal(t, "Acme", company.Name)
}

func TestDo_GetRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Companies().Get(t.Context(), session, "c3")

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusServiceUnavailable, env.Status)
	assert.Equal(t, domain.KindRemote, env.Kind)
	assert.Equal(t, int32(3), calls.Load(), "1 call + 2 retries")
}

func TestDo_MutationNotRetried(t *testing.T) {
	var calls atomic.Int32
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/companies/c3/", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Companies().Update(t.Context(), session, "c3", domain.Fields{"arr": 1200.5})

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1200.5, body["arr"])
}

func TestDo_TransportErrorIs500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, metrics := newClient(t, url)
	env := c.People().Delete(t.Context(), session, "p1")

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, domain.KindTransport, env.Kind)
	assert.NotNil(t, env.Data)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.FailedRequests)
}

func TestDo_CircuitOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	for i := 0; i < 5; i++ {
		c.Tasks().Delete(t.Context(), session, "t1")
	}

	env := c.Tasks().Delete(t.Context(), session, "t1")
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, domain.KindCircuitOpen, env.Kind)
}

func TestDo_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces/w1/companies", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"count": 25, "next": null, "previous": "p1", "results": [{"id": 11}, {"id": 12}]}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Companies().List(t.Context(), session, "w1", domain.PageRequest{Page: 2, PageSize: 10})

	require.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 25, env.Pagination.Count)
	assert.Nil(t, env.Pagination.Next)
	assert.Equal(t, "p1", *env.Pagination.Prev)
	assert.Len(t, env.Data, 2)
}

func TestDo_SearchEncodesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces/w1/companies/", r.URL.Path)
		assert.Equal(t, "Ås & Co", r.URL.Query().Get("name"))
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Companies().Search(t.Context(), session, "w1", "Ås & Co", domain.PageRequest{})
	assert.True(t, env.Success)
}

func TestDo_BaseURLJoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/v2/notes/n1/", r.URL.Path)
		w.Write([]byte(`{"id": 1, "content": "hi"}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL+"/internal/v2/")
	env := c.Companies().Notes().Get(t.Context(), session, "ignored", "n1")
	note, ok := env.First()
	require.True(t, ok)
	assert.Equal(t, "hi", note.Content)
}

func TestDo_ScopedNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/people/p1/notes/", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 5, "content": "call back"}`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.People().Notes().Create(t.Context(), session, "p1", domain.Fields{"content": "call back"})
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.Status)
}

func TestDo_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Views().Delete(t.Context(), session, "v1")
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusNoContent, env.Status)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Data)
}

func TestKanban_BoardArrayIsSingleElement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "stage": "lead"}, {"id": 2, "stage": "won"}]`))
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	env := c.Kanban().Board(t.Context(), session, "w1")
	require.Len(t, env.Data, 1)
	assert.Len(t, env.Data[0], 2)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	assert.NoError(t, c.Ping(t.Context()))

	srv.Close()
	assert.Error(t, c.Ping(t.Context()))
}
