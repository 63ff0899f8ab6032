package search

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchRecipeRepository struct {
	recipes []*entities.Recipe
}

func newBatchRecipeRepository(n int) *batchRecipeRepository {
	repo := &batchRecipeRepository{}
	for i := 1; i <= n; i++ {
		repo.recipes = append(repo.recipes, &entities.Recipe{RecipeID: i, Name: "recipe"})
	}
	return repo
}

func (r *batchRecipeRepository) GetRecipeByID(context.Context, int) (*entities.Recipe, error) {
	return nil, errors.New("not used")
}

func (r *batchRecipeRepository) GetAllRecipes(context.Context) ([]*entities.Recipe, error) {
	return r.recipes, nil
}

func (r *batchRecipeRepository) SearchRecipesByName(context.Context, string) ([]*entities.Recipe, error) {
	return nil, nil
}

func (r *batchRecipeRepository) RecipeExists(context.Context, int) (bool, error) {
	return false, nil
}

func (r *batchRecipeRepository) CountRecipes(context.Context) (int64, error) {
	return int64(len(r.recipes)), nil
}

func (r *batchRecipeRepository) FindRecipesInBatches(_ context.Context, batchSize int, fn func([]*entities.Recipe, int) error) error {
	for i, batchNum := 0, 1; i < len(r.recipes); i, batchNum = i+batchSize, batchNum+1 {
		end := min(i+batchSize, len(r.recipes))
		if err := fn(r.recipes[i:end], batchNum); err != nil {
			return err
		}
	}
	return nil
}

// fakeSearchClient stores documents by primary key, like the real index.
type fakeSearchClient struct {
	mu        sync.Mutex
	createErr error
	// failures maps a batch's first recipe id to the errors returned on
	// successive attempts.
	failures map[int][]error
	calls    int
	docs     map[int]*entities.Recipe
	block    chan struct{}
	started  chan struct{}
}

func newFakeSearchClient() *fakeSearchClient {
	return &fakeSearchClient{failures: map[int][]error{}, docs: map[int]*entities.Recipe{}}
}

func (c *fakeSearchClient) CreateIndex(context.Context, string, string) error {
	return c.createErr
}

func (c *fakeSearchClient) AddDocuments(_ context.Context, _, _ string, documents any) error {
	if c.started != nil {
		close(c.started)
		c.started = nil
		<-c.block
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	batch := documents.([]*entities.Recipe)
	first := batch[0].RecipeID
	if errs := c.failures[first]; len(errs) > 0 {
		c.failures[first] = errs[1:]
		return errs[0]
	}
	for _, r := range batch {
		c.docs[r.RecipeID] = r
	}
	return nil
}

func (c *fakeSearchClient) Search(context.Context, string, string, int, any) error {
	return nil
}

func (c *fakeSearchClient) SearchRecipes(context.Context, string) ([]*entities.Recipe, error) {
	return nil, nil
}

func newTestIndexer(repo *batchRecipeRepository, client SearchClient, batchSize int) *recipeIndexer {
	idx := NewRecipeIndexer(repo, client, batchSize).(*recipeIndexer)
	idx.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}
	return idx
}

func serverError() error {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Message: "unavailable"}
}

func TestReindex_PushesAllBatches(t *testing.T) {
	client := newFakeSearchClient()
	idx := newTestIndexer(newBatchRecipeRepository(2500), client, 1000)

	report, err := idx.Reindex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2500, report.Total)
	assert.Equal(t, 2500, report.Indexed)
	assert.Equal(t, 3, report.Batches)
	assert.Equal(t, 1000, report.BatchSize)
	assert.False(t, report.HasFailures())
	assert.NotEmpty(t, report.Duration)
	assert.Len(t, client.docs, 2500)
	assert.False(t, idx.Running())
}

func TestReindex_RetriesTransientFailure(t *testing.T) {
	client := newFakeSearchClient()
	client.failures[1001] = []error{serverError(), errors.New("connection reset")}
	idx := newTestIndexer(newBatchRecipeRepository(2500), client, 1000)

	report, err := idx.Reindex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2500, report.Indexed)
	assert.Empty(t, report.FailedBatches)
	assert.Equal(t, 5, client.calls)
}

func TestReindex_RecordsFailedBatchAndContinues(t *testing.T) {
	client := newFakeSearchClient()
	client.failures[1] = []error{&APIError{StatusCode: http.StatusBadRequest, Message: "invalid document"}}
	client.failures[2001] = []error{serverError(), serverError(), serverError()}
	idx := newTestIndexer(newBatchRecipeRepository(2500), client, 1000)

	report, err := idx.Reindex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Batches)
	assert.Equal(t, 1000, report.Indexed)
	require.Len(t, report.FailedBatches, 2)

	assert.Equal(t, 1, report.FailedBatches[0].Batch)
	assert.Equal(t, 1, report.FailedBatches[0].Attempts)
	assert.Contains(t, report.FailedBatches[0].Error, "invalid document")

	assert.Equal(t, 3, report.FailedBatches[1].Batch)
	assert.Equal(t, 500, report.FailedBatches[1].Documents)
	assert.Equal(t, 3, report.FailedBatches[1].Attempts)
}

func TestReindex_AllBatchesFailed(t *testing.T) {
	client := newFakeSearchClient()
	client.failures[1] = []error{&APIError{StatusCode: http.StatusUnauthorized, Message: "invalid api key"}}
	idx := newTestIndexer(newBatchRecipeRepository(10), client, 1000)

	report, err := idx.Reindex(context.Background())
	assert.ErrorIs(t, err, domain.ErrAllBatchesFailed)
	assert.Len(t, report.FailedBatches, 1)
	assert.Zero(t, report.Indexed)
}

func TestReindex_EmptyCatalog(t *testing.T) {
	idx := newTestIndexer(newBatchRecipeRepository(0), newFakeSearchClient(), 1000)

	report, err := idx.Reindex(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Batches)
	assert.Zero(t, report.Total)
}

func TestReindex_IsIdempotent(t *testing.T) {
	client := newFakeSearchClient()
	idx := newTestIndexer(newBatchRecipeRepository(1200), client, 500)

	_, err := idx.Reindex(context.Background())
	require.NoError(t, err)
	_, err = idx.Reindex(context.Background())
	require.NoError(t, err)

	assert.Len(t, client.docs, 1200)
}

func TestReindex_ExistingIndexIsNotAnError(t *testing.T) {
	client := newFakeSearchClient()
	client.createErr = domain.ErrIndexAlreadyExists
	idx := newTestIndexer(newBatchRecipeRepository(3), client, 1000)

	report, err := idx.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Indexed)
}

func TestReindex_CreateIndexFailure(t *testing.T) {
	client := newFakeSearchClient()
	client.createErr = domain.ErrSearchUnavailable
	idx := newTestIndexer(newBatchRecipeRepository(3), client, 1000)

	_, err := idx.Reindex(context.Background())
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
	assert.Zero(t, client.calls)
}

func TestReindex_RejectsConcurrentRun(t *testing.T) {
	client := newFakeSearchClient()
	client.started = make(chan struct{})
	client.block = make(chan struct{})
	started := client.started
	idx := newTestIndexer(newBatchRecipeRepository(3), client, 1000)

	done := make(chan error, 1)
	go func() {
		_, err := idx.Reindex(context.Background())
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first reindex never reached the search client")
	}
	assert.True(t, idx.Running())

	_, err := idx.Reindex(context.Background())
	assert.ErrorIs(t, err, domain.ErrReindexInProgress)

	close(client.block)
	require.NoError(t, <-done)
	assert.False(t, idx.Running())
}

func TestNewRecipeIndexer_DefaultBatchSize(t *testing.T) {
	idx := NewRecipeIndexer(newBatchRecipeRepository(0), newFakeSearchClient(), 0).(*recipeIndexer)
	assert.Equal(t, DefaultBatchSize, idx.batchSize)
}
