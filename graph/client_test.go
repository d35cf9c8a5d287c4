package graph_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slop-at/slop/graph"
	"github.com/slop-at/slop/statement"
	vocab "github.com/slop-at/slop/vocabulary/slop"
)

func testSet() *statement.Set {
	set := &statement.Set{}
	set.Add("https://slop.at/slop/a1b2c3d4", vocab.PredSlopID, statement.Literal("a1b2c3d4"))
	return set
}

// tripleStore is a minimal in-memory triple store for idempotency tests.
type tripleStore struct {
	mu      sync.Mutex
	triples map[string]bool
}

func (s *tripleStore) insert(update string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.triples == nil {
		s.triples = make(map[string]bool)
	}
	for _, line := range strings.Split(update, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, " .") {
			s.triples[line] = true
		}
	}
}

func (s *tripleStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.triples)
}

func TestPublish(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := graph.NewClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, client.Publish(context.Background(), testSet()))

	assert.Equal(t, "application/sparql-update", gotContentType)
	assert.True(t, strings.HasPrefix(gotBody, "INSERT DATA {"))
	assert.Contains(t, gotBody, `"a1b2c3d4"`)
}

func TestPublishIdempotent(t *testing.T) {
	store := &tripleStore{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		store.insert(string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := graph.NewClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, client.Publish(context.Background(), testSet()))
	after := store.count()
	require.NoError(t, client.Publish(context.Background(), testSet()))

	assert.Equal(t, after, store.count(), "re-publishing the same set must not grow the store")
}

func TestPublishRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "malformed triple at line 2", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := graph.NewClient(srv.URL, 5*time.Second, nil)
	err := client.Publish(context.Background(), testSet())
	require.Error(t, err)
	assert.True(t, graph.IsRejected(err))
	assert.False(t, graph.IsTransport(err))
	assert.Contains(t, err.Error(), "malformed triple")
}

func TestPublishServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := graph.NewClient(srv.URL, 5*time.Second, nil)
	err := client.Publish(context.Background(), testSet())
	require.Error(t, err)
	assert.True(t, graph.IsTransport(err))
}

func TestPublishConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := graph.NewClient(srv.URL, time.Second, nil)
	err := client.Publish(context.Background(), testSet())
	require.Error(t, err)
	assert.True(t, graph.IsTransport(err))
}

func TestQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/sparql-query", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{
			"head": {"vars": ["s", "name"]},
			"results": {"bindings": [
				{"s": {"type": "uri", "value": "https://slop.at/slop/a1b2c3d4"},
				 "name": {"type": "literal", "value": "Ada Lovelace"}}
			]}
		}`))
	}))
	defer srv.Close()

	client := graph.NewClient(srv.URL, 5*time.Second, nil)
	results, err := client.Query(context.Background(), "SELECT ?s ?name WHERE { ?s ?p ?name } LIMIT 1")
	require.NoError(t, err)

	assert.Equal(t, []string{"s", "name"}, results.Head.Vars)
	require.Len(t, results.Results.Bindings, 1)
	assert.Equal(t, "Ada Lovelace", results.Results.Bindings[0]["name"].Value)
}

func TestQueryMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "parse error near SELEKT", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := graph.NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Query(context.Background(), "SELEKT * WHERE { ?s ?p ?o }")
	require.Error(t, err)

	var malformed *graph.MalformedQueryError
	assert.ErrorAs(t, err, &malformed)
}
