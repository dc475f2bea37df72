package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/recipebox-dev/recipebox/db"
	"github.com/recipebox-dev/recipebox/internal/auth"
	"github.com/recipebox-dev/recipebox/internal/imagestore"
	"github.com/recipebox-dev/recipebox/internal/router"
	"github.com/recipebox-dev/recipebox/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize token signing: %v", err)
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mediaRoot := os.Getenv("MEDIA_ROOT")

	if mediaRoot == "" {
		mediaRoot = "./media"
	}

	stores := router.Stores{
		Users:       store.NewGormUserStore(db.DB),
		Recipes:     store.NewGormRecipeStore(db.DB),
		Tags:        store.NewGormTagStore(db.DB),
		Ingredients: store.NewGormIngredientStore(db.DB),
	}

	r := router.NewRouter(stores, imagestore.New(mediaRoot), mediaRoot)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
