package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubSearcher(t *testing.T) {
	result, err := NewStubSearcher(testLog()).Search(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, "The web search results for 'golang' indicate that the capital of France is Paris.", result)
}

func TestSerpAPISearcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "quantum computing", r.URL.Query().Get("q"))
		assert.Equal(t, "serp-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("num"))
		_, _ = w.Write([]byte(`{"organic_results":[
			{"title":"Quantum","link":"https://a.example","snippet":"first"},
			{"title":"Computing","link":"https://b.example","snippet":"second"},
			{"title":"Extra","link":"https://c.example","snippet":"third"}
		]}`))
	}))
	defer server.Close()

	searcher := NewSerpAPISearcher("serp-key", server.URL+"/search.json", 2, testLog())
	result, err := searcher.Search(context.Background(), "quantum computing")
	require.NoError(t, err)

	assert.Equal(t, "1. Quantum - first (https://a.example)\n2. Computing - second (https://b.example)", result)
}

func TestSerpAPISearcherErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{"http error", http.StatusUnauthorized, `{"error":"Invalid API key"}`, nil},
		{"api error", http.StatusOK, `{"error":"Invalid API key"}`, nil},
		{"no results", http.StatusOK, `{"organic_results":[]}`, ErrNoSearchResults},
		{"bad json", http.StatusOK, `not json`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewSerpAPISearcher("k", server.URL, 3, testLog()).Search(context.Background(), "q")
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target))
			}
		})
	}
}
