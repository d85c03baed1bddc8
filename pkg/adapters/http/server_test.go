package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tapestryhttp "github.com/aretw0/tapestry/pkg/adapters/http"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSessions []string

func (s staticSessions) List() []string { return s }

func TestHealth(t *testing.T) {
	story := domain.NewStory(
		domain.Node{ID: "title", Type: domain.NodeTypeTitle, Next: domain.To("end")},
		domain.Node{ID: "end", Type: domain.NodeTypeEnd},
	)
	story.ApplyDefaults()

	handler := tapestryhttp.NewHandler(
		tapestryhttp.WithStory(story),
		tapestryhttp.WithSessions(staticSessions{"a", "b"}),
	)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got tapestryhttp.Health
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, tapestryhttp.Health{Status: "ok", Title: "title", Nodes: 2, Sessions: 2}, got)
}

func TestHealth_SessionManager(t *testing.T) {
	story := domain.NewStory(
		domain.Node{ID: "title", Type: domain.NodeTypeTitle, Next: domain.To("end")},
		domain.Node{ID: "end", Type: domain.NodeTypeEnd},
	)
	mgr := session.NewManager(session.StoryFactory(story))
	ctx := context.Background()
	for _, id := range []string{"ana", "bruno"} {
		_, _, err := mgr.Open(ctx, id)
		require.NoError(t, err)
	}

	handler := tapestryhttp.NewHandler(tapestryhttp.WithStory(story), tapestryhttp.WithSessions(mgr))
	read := func() tapestryhttp.Health {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var got tapestryhttp.Health
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		return got
	}

	assert.Equal(t, 2, read().Sessions)
	require.NoError(t, mgr.Close(ctx, "ana"))
	assert.Equal(t, 1, read().Sessions)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "tapestry_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Add(3)

	handler := tapestryhttp.NewHandler(tapestryhttp.WithGatherer(reg))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tapestry_test_total 3")
}

func TestUnknownRoute(t *testing.T) {
	handler := tapestryhttp.NewHandler()

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/navigate", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
