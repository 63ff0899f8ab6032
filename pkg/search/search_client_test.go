package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) SearchClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSearchClient(ClientConfig{BaseURL: srv.URL + "/", APIKey: "master-key"})
}

func TestCreateIndex_CreatesMissingIndex(t *testing.T) {
	var created map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer master-key", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/indexes/recipes":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"index_not_found","message":"Index recipes not found."}`))
		case r.Method == http.MethodPost && r.URL.Path == "/indexes":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"taskUid":1}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	err := client.CreateIndex(context.Background(), domain.RecipeIndexUID, domain.RecipeIndexPrimaryKey)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"uid": "recipes", "primaryKey": "RecipeId"}, created)
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"uid":"recipes","primaryKey":"RecipeId"}`))
	})

	err := client.CreateIndex(context.Background(), "recipes", "RecipeId")
	assert.ErrorIs(t, err, domain.ErrIndexAlreadyExists)
}

func TestCreateIndex_ConflictOnCreate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"index_already_exists","message":"Index recipes already exists."}`))
	})

	err := client.CreateIndex(context.Background(), "recipes", "RecipeId")
	assert.ErrorIs(t, err, domain.ErrIndexAlreadyExists)
}

func TestAddDocuments(t *testing.T) {
	var (
		primaryKey string
		docs       []map[string]any
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/recipes/documents", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		primaryKey = r.URL.Query().Get("primaryKey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&docs))
		w.WriteHeader(http.StatusAccepted)
	})

	batch := []*entities.Recipe{{RecipeID: 38, Name: "Low-Fat Berry Blue Frozen Dessert"}, {RecipeID: 39, Name: "Biryani"}}
	require.NoError(t, client.AddDocuments(context.Background(), "recipes", "RecipeId", batch))

	assert.Equal(t, "RecipeId", primaryKey)
	require.Len(t, docs, 2)
	assert.EqualValues(t, 38, docs[0]["RecipeId"])
	assert.Equal(t, "Biryani", docs[1]["Name"])
}

func TestSearchRecipes_DecodesHits(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes/recipes/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"hits":[{"RecipeId":40,"Name":"Best Lemonade","Calories":311}],"query":"lemon"}`))
	})

	recipes, err := client.SearchRecipes(context.Background(), "lemon")
	require.NoError(t, err)
	assert.Equal(t, "lemon", body["q"])
	assert.EqualValues(t, defaultSearchLimit, body["limit"])
	require.Len(t, recipes, 1)
	assert.Equal(t, 40, recipes[0].RecipeID)
	assert.Equal(t, "Best Lemonade", recipes[0].Name)
}

func TestSearchRecipes_NoHits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":[]}`))
	})

	recipes, err := client.SearchRecipes(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestAPIError_Retryable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	err := client.AddDocuments(context.Background(), "recipes", "RecipeId", []int{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.True(t, IsRetryable(err))

	assert.False(t, IsRetryable(&APIError{StatusCode: http.StatusBadRequest}))
	assert.True(t, IsRetryable(&APIError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(nil))
}

func TestCircuitBreaker_OpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for range 5 {
		_, err := client.SearchRecipes(context.Background(), "x")
		require.Error(t, err)
	}

	_, err := client.SearchRecipes(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
	assert.Equal(t, int32(5), calls.Load())
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_search_q","message":"bad query"}`))
	})

	for range 8 {
		_, err := client.SearchRecipes(context.Background(), "x")
		assert.NotErrorIs(t, err, domain.ErrSearchUnavailable)
	}
	assert.Equal(t, int32(8), calls.Load())
}
