// File: entities/recipe.go
package entities

import (
	"time"
)

// Recipe mirrors the imported recipe dataset. Column names follow the import
// schema, which is why they are quoted CamelCase in SQL.
type Recipe struct {
	RecipeID            int        `gorm:"column:RecipeId;primaryKey;autoIncrement:false" json:"RecipeId"`
	Name                string     `gorm:"column:Name;index" json:"Name"`
	AuthorID            int        `gorm:"column:AuthorId" json:"AuthorId"`
	CookTime            string     `gorm:"column:CookTime" json:"CookTime"`
	PrepTime            string     `gorm:"column:PrepTime" json:"PrepTime"`
	TotalTime           string     `gorm:"column:TotalTime" json:"TotalTime"`
	DatePublished       *time.Time `gorm:"column:DatePublished;type:date" json:"DatePublished,omitempty"`
	Description         string     `gorm:"column:Description" json:"Description"`
	Images              string     `gorm:"column:Images" json:"Images"`
	RecipeCategory      string     `gorm:"column:RecipeCategory" json:"RecipeCategory"`
	Keywords            string     `gorm:"column:Keywords" json:"Keywords"`
	AggregatedRating    float64    `gorm:"column:AggregatedRating" json:"AggregatedRating"`
	ReviewCount         int        `gorm:"column:ReviewCount" json:"ReviewCount"`
	Calories            int        `gorm:"column:Calories" json:"Calories"`
	FatContent          int        `gorm:"column:FatContent" json:"FatContent"`
	SaturatedFatContent int        `gorm:"column:SaturatedFatContent" json:"SaturatedFatContent"`
	CholesterolContent  int        `gorm:"column:CholesterolContent" json:"CholesterolContent"`
	SodiumContent       int        `gorm:"column:SodiumContent" json:"SodiumContent"`
	CarbohydrateContent int        `gorm:"column:CarbohydrateContent" json:"CarbohydrateContent"`
	FiberContent        int        `gorm:"column:FiberContent" json:"FiberContent"`
	SugarContent        int        `gorm:"column:SugarContent" json:"SugarContent"`
	ProteinContent      int        `gorm:"column:ProteinContent" json:"ProteinContent"`
	RecipeServings      int        `gorm:"column:RecipeServings" json:"RecipeServings"`
	RecipeYield         string     `gorm:"column:RecipeYield" json:"RecipeYield"`
	RecipeInstructions  string     `gorm:"column:RecipeInstructions" json:"RecipeInstructions"`
	ImageLink           string     `gorm:"column:image_link" json:"image_link"`
	Text                string     `gorm:"column:text" json:"text"`
}

func (Recipe) TableName() string {
	return "recipes_tb.recipes"
}
