package config

import (
	"Recipe-Catalog/internal/api/handlers"
	"Recipe-Catalog/internal/api/routes"
	"Recipe-Catalog/internal/middleware"
	"Recipe-Catalog/internal/utils"
	"Recipe-Catalog/internal/utils/storage"
	"Recipe-Catalog/pkg/catalog"
	"Recipe-Catalog/pkg/jwt"
	"Recipe-Catalog/pkg/logger"
	"Recipe-Catalog/pkg/recipe"
	"Recipe-Catalog/pkg/user"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// Dependencies are the collaborators built from configuration.
type Dependencies struct {
	JWTService jwt.JWTService
	Storage    storage.AwsS3
	Query      recipe.QueryConfig
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set: %w", jwt.ErrEmptySecret)
	}

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") == "development",
	})

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	s3, err := newStorage()
	if err != nil {
		return nil, err
	}

	RegisterRoutes(app, db, Dependencies{
		JWTService: jwt.NewJWTService(secret),
		Storage:    s3,
		Query: recipe.QueryConfig{
			CaseSensitiveSearch: utils.GetConfig("RECIPE_SEARCH_CASE_SENSITIVE") == "true",
		},
	})
	return app, nil
}

// RegisterRoutes wires repositories, services and handlers onto app.
func RegisterRoutes(app *fiber.App, db *gorm.DB, deps Dependencies) {
	utils.InitValidator()
	validator := utils.Validate
	middlewares := middleware.NewMiddleware()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ingredientRepository := catalog.NewIngredientRepository(db)
	cuisineRepository := catalog.NewCuisineRepository(db)
	allergenRepository := catalog.NewAllergenRepository(db)

	// Service
	userService := user.NewUserService(userRepository, deps.JWTService)
	recipeService := recipe.NewRecipeService(recipeRepository, deps.Query)
	ingredientService := catalog.NewIngredientService(ingredientRepository)
	cuisineService := catalog.NewCuisineService(cuisineRepository)
	allergenService := catalog.NewAllergenService(allergenRepository)

	// Handler
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       handlers.NewUserHandler(userService, validator),
		RecipeHandler:     handlers.NewRecipeHandler(recipeService, validator),
		IngredientHandler: handlers.NewCatalogHandler(ingredientService, validator),
		CuisineHandler:    handlers.NewCatalogHandler(cuisineService, validator),
		AllergenHandler:   handlers.NewCatalogHandler(allergenService, validator),
		UploadHandler:     handlers.NewUploadHandler(deps.Storage),
		Middleware:        middlewares,
		JWTService:        deps.JWTService,
	}
	routesConfig.Setup()
}

func newStorage() (storage.AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	if bucket == "" {
		logger.Warn("AWS_S3_BUCKET not set, image uploads disabled", nil)
		return nil, nil
	}

	return storage.NewAwsS3(
		context.Background(),
		bucket,
		utils.GetConfig("AWS_S3_REGION"),
		utils.GetConfig("AWS_ACCESS_KEY"),
		utils.GetConfig("AWS_SECRET_KEY"),
	)
}
