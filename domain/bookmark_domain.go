package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSaveBookmark   = "bookmark saved successfully"
	MessageSuccessDeleteBookmark = "bookmark deleted successfully"
	MessageSuccessGetBookmarks   = "success get bookmarks"

	MessageFailedSaveBookmark   = "failed to save bookmark"
	MessageFailedDeleteBookmark = "failed to delete bookmark"
	MessageFailedGetBookmarks   = "failed to get bookmarks"

	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

type (
	BookmarkRecipeRequest struct {
		RecipeID int `json:"recipe_id" validate:"required,min=1"`
		Rating   int `json:"rating" validate:"required,min=1,max=5"`
	}

	Bookmark struct {
		ID        int       `json:"bookmark_id"`
		RecipeID  int       `json:"recipe_id"`
		Rating    int       `json:"rating"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
		Recipe    *Recipe   `json:"recipe,omitempty"`
	}

	BookmarkListResponse struct {
		Bookmarks  []Bookmark         `json:"bookmarks"`
		Pagination PaginationResponse `json:"pagination"`
	}
)
