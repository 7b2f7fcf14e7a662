package suggest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/suggest"
)

func TestClient_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "photosynthesis", req.Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"suggestion": "conversion of light into chemical energy"}`))
	}))
	defer server.Close()

	client := suggest.New(server.URL, time.Second)
	got, err := client.Suggest(context.Background(), "photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, "conversion of light into chemical energy", got)
}

func TestClient_SuggestNullSuggestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"suggestion": null}`))
	}))
	defer server.Close()

	client := suggest.New(server.URL, time.Second)
	got, err := client.Suggest(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_SuggestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := suggest.New(server.URL, time.Second)
	_, err := client.Suggest(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_SuggestMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := suggest.New(server.URL, time.Second)
	_, err := client.Suggest(context.Background(), "anything")
	assert.Error(t, err)
}

func TestClient_SuggestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := suggest.New(server.URL, 20*time.Millisecond)
	_, err := client.Suggest(context.Background(), "anything")
	assert.Error(t, err)
}
