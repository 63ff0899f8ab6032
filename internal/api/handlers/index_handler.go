package handlers

import (
	"errors"

	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/search"

	"github.com/gofiber/fiber/v2"
)

type (
	IndexHandler interface {
		IndexRecipes(c *fiber.Ctx) error
	}

	indexHandler struct {
		indexer search.RecipeIndexer
	}
)

func NewIndexHandler(indexer search.RecipeIndexer) IndexHandler {
	return &indexHandler{
		indexer: indexer,
	}
}

// IndexRecipes runs a full reindex. Failed batches do not fail the request
// unless every batch failed.
func (h *indexHandler) IndexRecipes(c *fiber.Ctx) error {
	report, err := h.indexer.Reindex(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrAllBatchesFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(presenters.Response{
				Status:  false,
				Message: domain.MessageFailedIndexRecipes,
				Data:    report,
				Error:   err.Error(),
			})
		}
		if errors.Is(err, domain.ErrReindexInProgress) {
			return c.Status(fiber.StatusConflict).JSON(presenters.Response{
				Status:  false,
				Message: domain.MessageFailedIndexRecipes,
				Data:    domain.IndexStatus{Index: domain.RecipeIndexUID, Running: h.indexer.Running()},
				Error:   err.Error(),
			})
		}
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedIndexRecipes, err)
	}

	message := domain.MessageSuccessIndexRecipes
	if report.HasFailures() {
		message = domain.MessagePartialIndexRecipes
	}
	return presenters.SuccessResponse(c, report, fiber.StatusOK, message)
}
