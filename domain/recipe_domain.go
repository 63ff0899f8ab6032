package domain

import (
	"errors"
	"time"
)

const (
	SearchBackendDatabase = "database"
	SearchBackendIndex    = "index"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSearchRecipes   = "success search recipes"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSearchRecipes   = "failed to search recipes"

	ErrRecipeNotFound = errors.New("recipe not found")
)

type (
	SearchRecipeRequest struct {
		Query string `query:"query" validate:"required,max=200"`
	}

	Nutrition struct {
		Calories     int `json:"calories"`
		Fat          int `json:"fat"`
		SaturatedFat int `json:"saturated_fat"`
		Cholesterol  int `json:"cholesterol"`
		Sodium       int `json:"sodium"`
		Carbohydrate int `json:"carbohydrate"`
		Fiber        int `json:"fiber"`
		Sugar        int `json:"sugar"`
		Protein      int `json:"protein"`
	}

	Recipe struct {
		ID               int        `json:"id"`
		Name             string     `json:"name"`
		AuthorID         int        `json:"author_id"`
		Description      string     `json:"description"`
		PrepTime         string     `json:"prep_time"`
		CookTime         string     `json:"cook_time"`
		TotalTime        string     `json:"total_time"`
		DatePublished    *time.Time `json:"date_published,omitempty"`
		Category         string     `json:"category"`
		Keywords         string     `json:"keywords"`
		AggregatedRating float64    `json:"aggregated_rating"`
		ReviewCount      int        `json:"review_count"`
		Nutrition        Nutrition  `json:"nutrition"`
		Servings         int        `json:"servings"`
		Yield            string     `json:"yield"`
		Instructions     string     `json:"instructions"`
		Images           string     `json:"images,omitempty"`
		ImageLink        string     `json:"image_link,omitempty"`
	}

	SearchRecipeResponse struct {
		Query   string   `json:"query"`
		Backend string   `json:"backend"`
		Recipes []Recipe `json:"recipes"`
	}
)
