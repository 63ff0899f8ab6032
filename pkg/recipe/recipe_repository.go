package recipe

import (
	"context"
	"strings"

	"recipe-catalog/entities"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type (
	RecipeRepository interface {
		GetRecipeByID(ctx context.Context, id int) (*entities.Recipe, error)
		GetAllRecipes(ctx context.Context) ([]*entities.Recipe, error)
		SearchRecipesByName(ctx context.Context, query string) ([]*entities.Recipe, error)
		RecipeExists(ctx context.Context, id int) (bool, error)
		CountRecipes(ctx context.Context) (int64, error)
		FindRecipesInBatches(ctx context.Context, batchSize int, fn func(batch []*entities.Recipe, batchNum int) error) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id int) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where(`"RecipeId" = ?`, id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetAllRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Order(`"RecipeId" asc`).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) SearchRecipesByName(ctx context.Context, query string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	pattern := "%" + likeEscaper.Replace(query) + "%"

	if err := r.db.WithContext(ctx).
		Where(`"Name" ILIKE ?`, pattern).
		Order(`"RecipeId" asc`).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) RecipeExists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where(`"RecipeId" = ?`, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRecipesInBatches walks the table in primary key order so only one batch
// is held in memory at a time.
func (r *recipeRepository) FindRecipesInBatches(ctx context.Context, batchSize int, fn func(batch []*entities.Recipe, batchNum int) error) error {
	var batch []*entities.Recipe
	return r.db.WithContext(ctx).
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, batchNum int) error {
			return fn(batch, batchNum)
		}).Error
}
