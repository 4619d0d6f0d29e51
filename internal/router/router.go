package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/receitinhas/backend/internal/api"
	"github.com/receitinhas/backend/internal/middleware"
)

// Deps carries everything the route table needs. Handlers receive their
// services explicitly so tests can swap any of them out.
type Deps struct {
	Auth    *api.AuthHandler
	Recipes *api.RecipeHandler
	Profile *api.ProfileHandler
	Drafts  *api.DraftHandler
	Health  *api.HealthHandler

	TokenValidator middleware.TokenValidator
	Redis          *redis.Client
	CORSOrigins    []string
}

// New builds the gin engine with the full route table.
func New(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/health", d.Health.Health)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/logout", middleware.AuthMiddleware(d.TokenValidator), d.Auth.Logout)
	}

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(d.TokenValidator))

	writeLimit := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if d.Redis != nil {
		writeLimit = middleware.NewRecipeWriteRateLimiter(d.Redis).Middleware()
	}

	recipes := authed.Group("/recipes")
	{
		recipes.GET("", d.Recipes.ListRecipes)
		recipes.POST("", writeLimit, d.Recipes.CreateRecipe)
		recipes.POST("/memories/image", writeLimit, d.Recipes.UploadMemoryImage)
		recipes.GET("/:id", d.Recipes.GetRecipe)
		recipes.PUT("/:id", writeLimit, d.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", d.Recipes.DeleteRecipe)
		recipes.POST("/:id/favorite", d.Recipes.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", d.Recipes.UnfavoriteRecipe)
	}

	profile := authed.Group("/profile")
	{
		profile.GET("", d.Profile.GetProfile)
		profile.PUT("", d.Profile.UpdateProfile)
	}

	drafts := authed.Group("/drafts")
	{
		drafts.POST("", d.Drafts.SaveDraft)
		drafts.GET("/:id", d.Drafts.GetDraft)
		drafts.PUT("/:id", d.Drafts.UpdateDraft)
		drafts.DELETE("/:id", d.Drafts.DeleteDraft)
	}

	return r
}
