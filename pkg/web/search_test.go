package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/web"
)

func TestGoogleSearchParsesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"link":"https://a.example","title":"A"},{"link":"https://b.example","title":"B"}]}`))
	}))
	defer server.Close()

	g := web.NewGoogleSearch("test-key", "test-cx", server.URL)
	results, err := g.Search(context.Background(), "query", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "https://a.example", results[0].URL)
}

func TestGoogleSearchRequiresCredentials(t *testing.T) {
	g := web.NewGoogleSearch("", "", "https://example.com")
	_, err := g.Search(context.Background(), "q", 5)
	require.Error(t, err)
}
