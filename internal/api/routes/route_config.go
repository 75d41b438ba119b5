package routes

import (
	"Recipe-Catalog/internal/api/handlers"
	"Recipe-Catalog/internal/middleware"
	"Recipe-Catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.CatalogHandler
	CuisineHandler    handlers.CatalogHandler
	AllergenHandler   handlers.CatalogHandler
	UploadHandler     handlers.UploadHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Catalogs()
	c.Uploads()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	recipes.Get("", c.RecipeHandler.ListRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipe)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Catalogs() {
	ingredients := c.catalog("/api/ingredients", c.IngredientHandler)
	ingredients.Get("/:id/recipes", c.RecipeHandler.ListRecipesByIngredient)

	c.catalog("/api/cuisines", c.CuisineHandler)
	c.catalog("/api/allergens", c.AllergenHandler)
}

func (c *Config) catalog(prefix string, h handlers.CatalogHandler) fiber.Router {
	group := c.App.Group(prefix)
	group.Get("", h.List)
	group.Post("", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
	return group
}

func (c *Config) Uploads() {
	uploads := c.App.Group("/api/uploads", c.Middleware.AuthMiddleware(c.JWTService))
	uploads.Post("/image", c.UploadHandler.UploadImage)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
