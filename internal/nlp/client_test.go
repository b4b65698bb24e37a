// ABOUTME: Tests for the NLP sidecar HTTP client
// ABOUTME: Covers correction, extraction order pass-through, and failure modes

package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Correct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/correct", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "moove the blot", req.Text)

		json.NewEncoder(w).Encode(map[string]string{"corrected": "move the bolt"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	corrected, err := c.Correct(context.Background(), "moove the blot")
	require.NoError(t, err)
	assert.Equal(t, "move the bolt", corrected)
}

func TestClient_ExtractPreservesCollaboratorOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entities", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"entities": []Entity{
				{Text: "shelf A", Label: LabelLocation},
				{Text: "bolt", Label: LabelObject},
				{Text: "bin 3", Label: LabelLocation},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	entities, err := c.Extract(context.Background(), "move the bolt from shelf A to bin 3")
	require.NoError(t, err)

	// Order must be exactly what the collaborator returned, no re-sorting.
	require.Len(t, entities, 3)
	assert.Equal(t, Entity{Text: "shelf A", Label: LabelLocation}, entities[0])
	assert.Equal(t, Entity{Text: "bolt", Label: LabelObject}, entities[1])
	assert.Equal(t, Entity{Text: "bin 3", Label: LabelLocation}, entities[2])
}

func TestClient_ExtractEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"entities": []Entity{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	entities, err := c.Extract(context.Background(), "hello")
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestClient_ErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)

	_, err := c.Correct(context.Background(), "text")
	assert.Error(t, err)

	_, err = c.Extract(context.Background(), "text")
	assert.Error(t, err)
}

func TestClient_UnreachableSidecar(t *testing.T) {
	// Grab an address that refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, 0, nil)
	_, err := c.Extract(context.Background(), "text")
	assert.Error(t, err)
}
