package search

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/metrics"
	"recipe-catalog/pkg/recipe"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofiber/fiber/v2/log"
)

const (
	DefaultBatchSize  = 1000
	defaultMaxRetries = 3
)

type (
	RecipeIndexer interface {
		EnsureIndex(ctx context.Context) error
		Reindex(ctx context.Context) (domain.IndexReport, error)
		ReindexInBackground(ctx context.Context)
		Running() bool
	}

	recipeIndexer struct {
		recipeRepository recipe.RecipeRepository
		client           SearchClient
		batchSize        int
		newBackOff       func() backoff.BackOff
		running          atomic.Bool
	}
)

func NewRecipeIndexer(recipeRepository recipe.RecipeRepository, client SearchClient, batchSize int) RecipeIndexer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &recipeIndexer{
		recipeRepository: recipeRepository,
		client:           client,
		batchSize:        batchSize,
		newBackOff:       defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = time.Minute
	return backoff.WithMaxRetries(b, defaultMaxRetries)
}

func (i *recipeIndexer) Running() bool {
	return i.running.Load()
}

// EnsureIndex creates the recipe index; an existing index is not an error.
func (i *recipeIndexer) EnsureIndex(ctx context.Context) error {
	err := i.client.CreateIndex(ctx, domain.RecipeIndexUID, domain.RecipeIndexPrimaryKey)
	if errors.Is(err, domain.ErrIndexAlreadyExists) {
		log.Infow("search index already exists", "index", domain.RecipeIndexUID)
		return nil
	}
	return err
}

// Reindex pushes every recipe to the search index batch by batch. A batch
// is retried on its own; one that keeps failing is recorded in the report
// and the run moves on to the next batch.
func (i *recipeIndexer) Reindex(ctx context.Context) (report domain.IndexReport, err error) {
	if !i.running.CompareAndSwap(false, true) {
		return report, domain.ErrReindexInProgress
	}
	defer i.running.Store(false)

	report = domain.IndexReport{
		Index:     domain.RecipeIndexUID,
		BatchSize: i.batchSize,
		StartedAt: time.Now(),
	}
	defer func() {
		elapsed := time.Since(report.StartedAt)
		report.Duration = elapsed.String()
		metrics.IndexRunDuration.Observe(elapsed.Seconds())
	}()

	if err := i.EnsureIndex(ctx); err != nil {
		return report, err
	}

	total, err := i.recipeRepository.CountRecipes(ctx)
	if err != nil {
		return report, err
	}
	report.Total = int(total)

	err = i.recipeRepository.FindRecipesInBatches(ctx, i.batchSize, func(batch []*entities.Recipe, batchNum int) error {
		report.Batches++
		result := i.pushBatch(ctx, batch, batchNum)
		if result.Error != "" {
			report.FailedBatches = append(report.FailedBatches, result)
		} else {
			report.Indexed += result.Documents
		}
		return ctx.Err()
	})
	if err != nil {
		return report, err
	}

	if report.Batches > 0 && len(report.FailedBatches) == report.Batches {
		return report, domain.ErrAllBatchesFailed
	}
	if !report.HasFailures() {
		metrics.IndexLastSuccess.SetToCurrentTime()
	}
	return report, nil
}

func (i *recipeIndexer) pushBatch(ctx context.Context, batch []*entities.Recipe, batchNum int) domain.BatchResult {
	result := domain.BatchResult{Batch: batchNum, Documents: len(batch)}

	op := func() error {
		result.Attempts++
		err := i.client.AddDocuments(ctx, domain.RecipeIndexUID, domain.RecipeIndexPrimaryKey, batch)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		metrics.IndexBatches.WithLabelValues("retry").Inc()
		log.Warnw("index batch failed, retrying", "batch", batchNum, "attempt", result.Attempts, "wait", wait.String(), "error", err)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(i.newBackOff(), ctx), notify); err != nil {
		result.Error = err.Error()
		metrics.IndexBatches.WithLabelValues("failure").Inc()
		log.Errorw("index batch failed", "batch", batchNum, "documents", len(batch), "attempts", result.Attempts, "error", err)
		return result
	}

	metrics.IndexBatches.WithLabelValues("success").Inc()
	metrics.IndexDocuments.Add(float64(len(batch)))
	log.Infow("index batch pushed", "batch", batchNum, "documents", len(batch), "attempts", result.Attempts)
	return result
}

// ReindexInBackground runs Reindex on its own goroutine and logs the outcome.
func (i *recipeIndexer) ReindexInBackground(ctx context.Context) {
	go func() {
		report, err := i.Reindex(ctx)
		if err != nil {
			log.Errorw("background reindex failed", "error", err, "indexed", report.Indexed, "total", report.Total)
			return
		}
		log.Infow("background reindex finished",
			"indexed", report.Indexed,
			"total", report.Total,
			"batches", report.Batches,
			"failed_batches", len(report.FailedBatches),
			"duration", report.Duration,
		)
	}()
}
