package recipe

import (
	"context"
	"fmt"
	"testing"

	"recipe-catalog/entities"
	"recipe-catalog/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRecipeRepository(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.Reset(t)
	tdb.SeedRecipes(t, "Best Lemonade", "Lemon Bars", "Biryani", "100% Rye_Bread")
	repo := NewRecipeRepository(tdb.DB)
	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		recipe, err := repo.GetRecipeByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Biryani", recipe.Name)

		_, err = repo.GetRecipeByID(ctx, 42)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("list all", func(t *testing.T) {
		recipes, err := repo.GetAllRecipes(ctx)
		require.NoError(t, err)
		require.Len(t, recipes, 4)
		assert.Equal(t, 1, recipes[0].RecipeID)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		recipes, err := repo.SearchRecipesByName(ctx, "LEMON")
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Best Lemonade", recipes[0].Name)
		assert.Equal(t, "Lemon Bars", recipes[1].Name)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		recipes, err := repo.SearchRecipesByName(ctx, "%")
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, 4, recipes[0].RecipeID)

		recipes, err = repo.SearchRecipesByName(ctx, "e_b")
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, 4, recipes[0].RecipeID)
	})

	t.Run("exists and count", func(t *testing.T) {
		ok, err := repo.RecipeExists(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.RecipeExists(ctx, 99)
		require.NoError(t, err)
		assert.False(t, ok)

		count, err := repo.CountRecipes(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}

func TestFindRecipesInBatches(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.Reset(t)
	names := make([]string, 25)
	for i := range names {
		names[i] = fmt.Sprintf("recipe %d", i+1)
	}
	tdb.SeedRecipes(t, names...)
	repo := NewRecipeRepository(tdb.DB)

	var (
		sizes []int
		seen  = map[int]bool{}
	)
	err := repo.FindRecipesInBatches(context.Background(), 10, func(batch []*entities.Recipe, batchNum int) error {
		assert.Equal(t, len(sizes)+1, batchNum)
		sizes = append(sizes, len(batch))
		for _, r := range batch {
			seen[r.RecipeID] = true
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10, 5}, sizes)
	assert.Len(t, seen, 25)
}
