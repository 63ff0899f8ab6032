package routes

import (
	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App             *fiber.App
	RecipeHandler   handlers.RecipeHandler
	UserHandler     handlers.UserHandler
	BookmarkHandler handlers.BookmarkHandler
	IndexHandler    handlers.IndexHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	// Limiter is mounted after CORS and metrics.
	Limiter         fiber.Handler
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	if c.Limiter != nil {
		c.App.Use(c.Limiter)
	}
	c.GuestRoute()
	c.Recipes()
	c.User()
	c.Bookmarks()
	c.Index()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/recipes")
	// search is registered before :id so it is not read as an id
	recipes.Get("/search/", c.RecipeHandler.SearchRecipes)
	recipes.Get("/", c.RecipeHandler.GetAllRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Post("/register", c.UserHandler.Register)
	c.App.Post("/login", c.UserHandler.Login)
	c.App.Get("/me", auth, c.UserHandler.Me)
	c.App.Post("/verify/send", auth, c.UserHandler.SendVerificationEmail)
	c.App.Get("/verify", c.UserHandler.VerifyEmail)
}

func (c *Config) Bookmarks() {
	bookmarks := c.App.Group("/bookmarks", c.Middleware.AuthMiddleware(c.JWTService))
	bookmarks.Post("", c.BookmarkHandler.BookmarkRecipe)
	bookmarks.Get("", c.BookmarkHandler.GetBookmarks)
	bookmarks.Delete("/:recipe_id", c.BookmarkHandler.RemoveBookmark)
}

func (c *Config) Index() {
	c.App.Post("/index-recipes", c.Middleware.AuthMiddleware(c.JWTService), c.IndexHandler.IndexRecipes)
}
