package recipe

import (
	"context"
	"errors"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/metrics"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest) (domain.SearchRecipeResponse, error)
		GetAllRecipes(ctx context.Context) ([]domain.Recipe, error)
		GetRecipeDetail(ctx context.Context, recipeID int) (domain.Recipe, error)
	}

	// RecipeSearcher is the external full-text index.
	RecipeSearcher interface {
		SearchRecipes(ctx context.Context, query string) ([]*entities.Recipe, error)
	}

	ImageResolver interface {
		ResolveImageLink(ctx context.Context, ref string) string
	}

	recipeService struct {
		recipeRepository RecipeRepository
		searcher         RecipeSearcher
		images           ImageResolver
		backend          string
	}
)

func NewRecipeService(recipeRepository RecipeRepository, searcher RecipeSearcher, images ImageResolver, backend string) RecipeService {
	if backend != domain.SearchBackendIndex || searcher == nil {
		backend = domain.SearchBackendDatabase
	}
	return &recipeService{
		recipeRepository: recipeRepository,
		searcher:         searcher,
		images:           images,
		backend:          backend,
	}
}

func (s *recipeService) SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest) (domain.SearchRecipeResponse, error) {
	query := strings.TrimSpace(req.Query)

	if s.backend == domain.SearchBackendIndex {
		recipes, err := s.searcher.SearchRecipes(ctx, query)
		if err == nil {
			metrics.SearchRequests.WithLabelValues(domain.SearchBackendIndex, "success").Inc()
			return domain.SearchRecipeResponse{
				Query:   query,
				Backend: domain.SearchBackendIndex,
				Recipes: s.toDomainList(ctx, recipes),
			}, nil
		}
		metrics.SearchRequests.WithLabelValues(domain.SearchBackendIndex, "failure").Inc()
		log.Warnw("search index unavailable, falling back to database", "query", query, "error", err)
	}

	recipes, err := s.recipeRepository.SearchRecipesByName(ctx, query)
	if err != nil {
		metrics.SearchRequests.WithLabelValues(domain.SearchBackendDatabase, "failure").Inc()
		return domain.SearchRecipeResponse{}, err
	}
	metrics.SearchRequests.WithLabelValues(domain.SearchBackendDatabase, "success").Inc()

	return domain.SearchRecipeResponse{
		Query:   query,
		Backend: domain.SearchBackendDatabase,
		Recipes: s.toDomainList(ctx, recipes),
	}, nil
}

func (s *recipeService) GetAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDomainList(ctx, recipes), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID int) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}
	return s.toDomain(ctx, recipe), nil
}

func (s *recipeService) toDomainList(ctx context.Context, recipes []*entities.Recipe) []domain.Recipe {
	res := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, s.toDomain(ctx, recipe))
	}
	return res
}

func (s *recipeService) toDomain(ctx context.Context, recipe *entities.Recipe) domain.Recipe {
	res := ToDomain(recipe)
	if s.images != nil {
		res.ImageLink = s.images.ResolveImageLink(ctx, res.ImageLink)
	}
	return res
}

func ToDomain(recipe *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:               recipe.RecipeID,
		Name:             recipe.Name,
		AuthorID:         recipe.AuthorID,
		Description:      recipe.Description,
		PrepTime:         recipe.PrepTime,
		CookTime:         recipe.CookTime,
		TotalTime:        recipe.TotalTime,
		DatePublished:    recipe.DatePublished,
		Category:         recipe.RecipeCategory,
		Keywords:         recipe.Keywords,
		AggregatedRating: recipe.AggregatedRating,
		ReviewCount:      recipe.ReviewCount,
		Nutrition: domain.Nutrition{
			Calories:     recipe.Calories,
			Fat:          recipe.FatContent,
			SaturatedFat: recipe.SaturatedFatContent,
			Cholesterol:  recipe.CholesterolContent,
			Sodium:       recipe.SodiumContent,
			Carbohydrate: recipe.CarbohydrateContent,
			Fiber:        recipe.FiberContent,
			Sugar:        recipe.SugarContent,
			Protein:      recipe.ProteinContent,
		},
		Servings:     recipe.RecipeServings,
		Yield:        recipe.RecipeYield,
		Instructions: recipe.RecipeInstructions,
		Images:       recipe.Images,
		ImageLink:    recipe.ImageLink,
	}
}
