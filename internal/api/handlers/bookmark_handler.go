package handlers

import (
	"strconv"

	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/bookmark"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BookmarkHandler interface {
		BookmarkRecipe(c *fiber.Ctx) error
		GetBookmarks(c *fiber.Ctx) error
		RemoveBookmark(c *fiber.Ctx) error
	}

	bookmarkHandler struct {
		bookmarkService bookmark.BookmarkService
		validator       *validator.Validate
	}
)

func NewBookmarkHandler(bookmarkService bookmark.BookmarkService, validator *validator.Validate) BookmarkHandler {
	return &bookmarkHandler{
		bookmarkService: bookmarkService,
		validator:       validator,
	}
}

func (h *bookmarkHandler) BookmarkRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	req := new(domain.BookmarkRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveBookmark, validationError(err))
	}

	res, err := h.bookmarkService.BookmarkRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSaveBookmark, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveBookmark)
}

func (h *bookmarkHandler) GetBookmarks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	page := new(domain.PaginationRequest)

	if err := c.QueryParser(page); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBookmarks, err)
	}

	if err := h.validator.Struct(page); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBookmarks, validationError(err))
	}

	res, err := h.bookmarkService.GetBookmarks(c.Context(), *page, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetBookmarks, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBookmarks)
}

func (h *bookmarkHandler) RemoveBookmark(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	recipeID, err := strconv.Atoi(c.Params("recipe_id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteBookmark, domain.ErrInvalidID)
	}

	if err := h.bookmarkService.RemoveBookmark(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteBookmark, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBookmark)
}
