package bookmark

import (
	"context"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	BookmarkRepository interface {
		UpsertBookmark(ctx context.Context, bookmark *entities.Bookmark) error
		GetBookmark(ctx context.Context, userID, recipeID int) (*entities.Bookmark, error)
		GetBookmarksByUser(ctx context.Context, userID int, page domain.PaginationRequest) ([]*entities.Bookmark, int64, error)
		DeleteBookmark(ctx context.Context, userID, recipeID int) (bool, error)
	}

	bookmarkRepository struct {
		db *gorm.DB
	}
)

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// UpsertBookmark keeps one row per (user, recipe); bookmarking again replaces
// the rating.
func (r *bookmarkRepository) UpsertBookmark(ctx context.Context, bookmark *entities.Bookmark) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(bookmark).Error
}

func (r *bookmarkRepository) GetBookmark(ctx context.Context, userID, recipeID int) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&bookmark).Error; err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) GetBookmarksByUser(ctx context.Context, userID int, page domain.PaginationRequest) ([]*entities.Bookmark, int64, error) {
	var bookmarks []*entities.Bookmark
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Offset(page.Offset()).
		Limit(page.Limit).
		Order("updated_at desc").
		Order("bookmark_id desc").
		Find(&bookmarks).Error; err != nil {
		return nil, 0, err
	}

	return bookmarks, count, nil
}

func (r *bookmarkRepository) DeleteBookmark(ctx context.Context, userID, recipeID int) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Bookmark{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
