package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/internal/handlers"
	"github.com/recipebox-dev/recipebox/internal/middleware"
	"github.com/recipebox-dev/recipebox/internal/store"
	"github.com/recipebox-dev/recipebox/internal/types"
)

type Stores struct {
	Users       store.UserStore
	Recipes     store.RecipeStore
	Tags        store.AttributeStore
	Ingredients store.AttributeStore
}

func NewRouter(stores Stores, images handlers.ImageStore, mediaRoot string) *gin.Engine {
	r := gin.Default()

	// unsupported verbs on known routes answer 405, not 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/media", mediaRoot)

	userHandler := handlers.NewUserHandler(stores.Users)
	recipeHandler := handlers.NewRecipeHandler(stores.Recipes, images)
	tagHandler := handlers.NewTagHandler(stores.Tags)
	ingredientHandler := handlers.NewIngredientHandler(stores.Ingredients)

	authRequired := middleware.AuthMiddleware(stores.Users)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.POST("/token", userHandler.ObtainToken)

			me := users.Group("/me", authRequired)
			{
				me.GET("", userHandler.Me)
				me.PATCH("", userHandler.UpdateMe)
				me.DELETE("", userHandler.DeleteMe)
			}
		}

		recipes := api.Group("/recipes", authRequired)
		{
			recipes.GET("", recipeHandler.List)
			recipes.POST("", recipeHandler.Create)
			recipes.GET("/:id", recipeHandler.Get)
			recipes.PUT("/:id", recipeHandler.Update)
			recipes.PATCH("/:id", recipeHandler.Update)
			recipes.DELETE("/:id", recipeHandler.Delete)
			recipes.POST("/:id/upload-image", recipeHandler.UploadImage)
		}

		tags := api.Group("/tags", authRequired)
		{
			tags.GET("", tagHandler.List)
			tags.PUT("/:id", tagHandler.Update)
			tags.PATCH("/:id", tagHandler.Update)
			tags.DELETE("/:id", tagHandler.Delete)
		}

		ingredients := api.Group("/ingredients", authRequired)
		{
			ingredients.GET("", ingredientHandler.List)
			ingredients.PUT("/:id", ingredientHandler.Update)
			ingredients.PATCH("/:id", ingredientHandler.Update)
			ingredients.DELETE("/:id", ingredientHandler.Delete)
		}
	}

	return r
}
