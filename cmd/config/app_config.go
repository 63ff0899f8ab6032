package config

import (
	"context"
	"io"
	"os"
	"time"

	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/routes"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/mailing"
	"recipe-catalog/internal/utils/storage"
	"recipe-catalog/pkg/bookmark"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/recipe"
	"recipe-catalog/pkg/search"
	"recipe-catalog/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, search.RecipeIndexer, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:      "recipe-catalog",
		ErrorHandler: middleware.ErrorHandler,
	})
	validator := utils.Validate

	// setting up logging
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, err
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     io.MultiWriter(os.Stdout, file),
	}))

	// utils
	s3, err := storage.NewAwsS3(ctx, storage.LoadS3Config())
	if err != nil {
		return nil, nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	searchClient := search.NewSearchClient(search.ClientConfig{
		BaseURL: utils.GetConfig("SEARCH_URL"),
		APIKey:  utils.GetConfig("SEARCH_API_KEY"),
	})

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	bookmarkRepository := bookmark.NewBookmarkRepository(db)

	// Service
	jwtService := jwt.NewJWTServiceFromConfig()
	userService := user.NewUserService(userRepository, jwtService, mailer, utils.GetConfig("APP_URL"))
	recipeService := recipe.NewRecipeService(recipeRepository, searchClient, s3, utils.GetConfig("SEARCH_BACKEND"))
	bookmarkService := bookmark.NewBookmarkService(bookmarkRepository, recipeRepository)
	indexer := search.NewRecipeIndexer(recipeRepository, searchClient, utils.GetConfigInt("INDEX_BATCH_SIZE", search.DefaultBatchSize))

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	userHandler := handlers.NewUserHandler(userService, validator)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService, validator)
	indexHandler := handlers.NewIndexHandler(indexer)

	log.Infow("application configured",
		"search_backend", utils.GetConfig("SEARCH_BACKEND"),
		"mailer_enabled", mailer.Enabled(),
		"storage_enabled", s3.Enabled(),
	)

	rateLimiter := limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 10),
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics" || c.Path() == "/api/ping"
		},
	})

	// routes
	routesConfig := routes.Config{
		App:             app,
		RecipeHandler:   recipeHandler,
		UserHandler:     userHandler,
		BookmarkHandler: bookmarkHandler,
		IndexHandler:    indexHandler,
		Middleware:      middleware.NewMiddleware(userService, utils.GetConfig("CORS_ALLOW_ORIGINS")),
		JWTService:      jwtService,
		Limiter:         rateLimiter,
	}
	routesConfig.Setup()
	return app, indexer, nil
}
