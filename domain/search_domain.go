package domain

import (
	"errors"
	"time"
)

const (
	RecipeIndexUID        = "recipes"
	RecipeIndexPrimaryKey = "RecipeId"
)

var (
	MessageSuccessIndexRecipes = "recipes indexed successfully"
	MessagePartialIndexRecipes = "recipes indexed with failed batches"
	MessageFailedIndexRecipes  = "failed to index recipes"

	ErrReindexInProgress  = errors.New("recipe reindex already in progress")
	ErrIndexAlreadyExists = errors.New("index already exists")
	ErrSearchUnavailable  = errors.New("search service unavailable")
	ErrAllBatchesFailed   = errors.New("every index batch failed")
)

type (
	BatchResult struct {
		Batch     int    `json:"batch"`
		Documents int    `json:"documents"`
		Attempts  int    `json:"attempts"`
		Error     string `json:"error,omitempty"`
	}

	IndexStatus struct {
		Index   string `json:"index"`
		Running bool   `json:"running"`
	}

	IndexReport struct {
		Index         string        `json:"index"`
		Total         int           `json:"total"`
		Indexed       int           `json:"indexed"`
		BatchSize     int           `json:"batch_size"`
		Batches       int           `json:"batches"`
		FailedBatches []BatchResult `json:"failed_batches,omitempty"`
		StartedAt     time.Time     `json:"started_at"`
		Duration      string        `json:"duration"`
	}
)

func (r IndexReport) HasFailures() bool {
	return len(r.FailedBatches) > 0
}
