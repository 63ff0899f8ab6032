package bookmark

import (
	"context"
	"errors"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/pkg/recipe"

	"gorm.io/gorm"
)

type (
	BookmarkService interface {
		BookmarkRecipe(ctx context.Context, req domain.BookmarkRecipeRequest, userID int) (domain.Bookmark, error)
		GetBookmarks(ctx context.Context, page domain.PaginationRequest, userID int) (domain.BookmarkListResponse, error)
		RemoveBookmark(ctx context.Context, recipeID int, userID int) error
	}

	bookmarkService struct {
		bookmarkRepository BookmarkRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewBookmarkService(bookmarkRepository BookmarkRepository, recipeRepository recipe.RecipeRepository) BookmarkService {
	return &bookmarkService{
		bookmarkRepository: bookmarkRepository,
		recipeRepository:   recipeRepository,
	}
}

func (s *bookmarkService) BookmarkRecipe(ctx context.Context, req domain.BookmarkRecipeRequest, userID int) (domain.Bookmark, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.Bookmark{}, domain.ErrInvalidRating
	}

	exists, err := s.recipeRepository.RecipeExists(ctx, req.RecipeID)
	if err != nil {
		return domain.Bookmark{}, err
	}
	if !exists {
		return domain.Bookmark{}, domain.ErrRecipeNotFound
	}

	if err := s.bookmarkRepository.UpsertBookmark(ctx, &entities.Bookmark{
		UserID:   userID,
		RecipeID: req.RecipeID,
		Rating:   req.Rating,
	}); err != nil {
		return domain.Bookmark{}, err
	}

	saved, err := s.bookmarkRepository.GetBookmark(ctx, userID, req.RecipeID)
	if err != nil {
		return domain.Bookmark{}, err
	}
	return toDomain(saved), nil
}

func (s *bookmarkService) GetBookmarks(ctx context.Context, page domain.PaginationRequest, userID int) (domain.BookmarkListResponse, error) {
	page.Normalize()

	bookmarks, count, err := s.bookmarkRepository.GetBookmarksByUser(ctx, userID, page)
	if err != nil {
		return domain.BookmarkListResponse{}, err
	}

	res := make([]domain.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		res = append(res, toDomain(b))
	}

	return domain.BookmarkListResponse{
		Bookmarks:  res,
		Pagination: domain.NewPaginationResponse(page, count),
	}, nil
}

func (s *bookmarkService) RemoveBookmark(ctx context.Context, recipeID int, userID int) error {
	deleted, err := s.bookmarkRepository.DeleteBookmark(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBookmarkNotFound
		}
		return err
	}
	if !deleted {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

func toDomain(b *entities.Bookmark) domain.Bookmark {
	res := domain.Bookmark{
		ID:        b.ID,
		RecipeID:  b.RecipeID,
		Rating:    b.Rating,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Recipe != nil {
		r := recipe.ToDomain(b.Recipe)
		res.Recipe = &r
	}
	return res
}
