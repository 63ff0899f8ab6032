package entities

type Bookmark struct {
	ID       int `gorm:"column:bookmark_id;primaryKey" json:"bookmark_id"`
	UserID   int `gorm:"column:user_id;not null;uniqueIndex:bookmarks_user_recipe_key,priority:1" json:"user_id"`
	RecipeID int `gorm:"column:recipe_id;not null;uniqueIndex:bookmarks_user_recipe_key,priority:2;index" json:"recipe_id"`
	Rating   int `gorm:"column:rating;not null;check:bookmarks_rating_range,rating BETWEEN 1 AND 5" json:"rating"` // 1-5

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;references:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Timestamp
}

func (Bookmark) TableName() string {
	return "recipes_tb.bookmarks"
}
