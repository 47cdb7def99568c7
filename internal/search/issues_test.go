package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samaj-issue/api/internal/models"
)

func newFakeES(t *testing.T, handler http.HandlerFunc) *IssueIndex {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewIssueIndex(client, "issue")
}

func TestIndex_SendsDocumentWithID(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotDoc models.Issue
	ix := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"result": "created"})
	})

	err := ix.Index(context.Background(), &models.Issue{
		ID:    5,
		Title: "Pothole on Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "/issue/_doc/5", gotPath)
	assert.Equal(t, "Pothole on Main St", gotDoc.Title)
}

func TestIndex_ServerError(t *testing.T) {
	t.Parallel()

	ix := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := ix.Index(context.Background(), &models.Issue{ID: 5, Title: "x"})
	require.Error(t, err)
}

func TestRemove_404Tolerated(t *testing.T) {
	t.Parallel()

	ix := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"result": "not_found"})
	})

	require.NoError(t, ix.Remove(context.Background(), 99))
}

func TestSearch_DecodesHits(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	ix := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/issue/_search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{
				"total": map[string]any{"value": 2},
				"hits": []map[string]any{
					{"_source": map[string]any{"id": 1, "title": "Pothole on Main St", "status": "Pending"}},
					{"_source": map[string]any{"id": 4, "title": "Pothole near school", "status": "Resolved"}},
				},
			},
		})
	})

	total, issues, err := ix.Search(context.Background(), "pothole", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, issues, 2)
	assert.Equal(t, uint(1), issues[0].ID)
	assert.Equal(t, "Pothole on Main St", issues[0].Title)
	assert.Equal(t, "Resolved", issues[1].Status)

	query := gotBody["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "pothole", query["query"])
	assert.Equal(t, "AUTO", query["fuzziness"])
	assert.EqualValues(t, 0, gotBody["from"])
	assert.EqualValues(t, 10, gotBody["size"])
}
