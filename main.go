package main

import (
	"log"

	api "authws-backend/cmd/api"
	"authws-backend/internal/auth/domain"
	authRepo "authws-backend/internal/auth/repository"
	authUsecase "authws-backend/internal/auth/usecase"
	"authws-backend/pkg/config"
	"authws-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize user repository: Postgres when configured, in-memory
	// otherwise (local development without a database)
	var userRepo authRepo.UserRepository
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		if err := db.AutoMigrate(&domain.User{}, &domain.UserImage{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		userRepo = authRepo.NewUserRepository(db)
	} else {
		log.Printf("[WARN] DATABASE_URL not configured, using in-memory user store")
		userRepo = authRepo.NewMemoryRepository()
	}

	// Initialize token service and use case (dependency injection)
	tokenService := authUsecase.NewTokenService(cfg.SecretKey)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, tokenService, cfg)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
