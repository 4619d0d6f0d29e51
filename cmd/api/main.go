package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/receitinhas/backend/config"
	"github.com/receitinhas/backend/internal/api"
	"github.com/receitinhas/backend/internal/database"
	"github.com/receitinhas/backend/internal/router"
	"github.com/receitinhas/backend/internal/server"
	"github.com/receitinhas/backend/internal/service"
	"github.com/receitinhas/backend/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := database.RunMigrations(db.Gorm()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to configure S3: %v", err)
	}

	authService := service.NewAuthService(db.Gorm(), redisClient, cfg.JWTSecret)
	profileService := service.NewProfileService(db.Gorm())
	imageService := service.NewImageService(s3cfg.Client, s3cfg.BucketName)
	draftService := service.NewDraftService(redisClient)
	recipeStore := store.New(db.Gorm())

	r := router.New(router.Deps{
		Auth:           api.NewAuthHandler(authService),
		Recipes:        api.NewRecipeHandler(recipeStore, imageService, profileService),
		Profile:        api.NewProfileHandler(profileService, imageService),
		Drafts:         api.NewDraftHandler(draftService),
		Health:         api.NewHealthHandler(db),
		TokenValidator: authService,
		Redis:          redisClient,
		CORSOrigins:    corsOrigins(),
	})

	srv := server.New(r)
	if err := srv.Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
