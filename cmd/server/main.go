package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"taskpad/internal/auth"
	"taskpad/internal/cache"
	"taskpad/internal/config"
	"taskpad/internal/db"
	"taskpad/internal/handler"
	"taskpad/internal/model"
	"taskpad/internal/repository"
	"taskpad/internal/router"
	"taskpad/internal/service"
)

// @title Taskpad API
// @version 1.0
// @description Todo list API with token authentication and owner-scoped todos.
// @BasePath /api
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Todo{},
			&model.AuthToken{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AuthToken{},
		&model.Todo{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)

	// Initialize auth components
	tokenCodec := auth.NewTokenCodec(cfg.JWTSecret)
	sessionCache := auth.NewSessionCache(cacheClient)
	authMW := auth.NewMiddleware(tokenCodec, userRepo, sessionCache)

	// Initialize services
	userService := service.NewUserService(userRepo, tokenCodec, sessionCache)
	todoService := service.NewTodoService(todoRepo, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	todoHandler := handler.NewTodoHandler(todoService)

	// Register routes
	router.Register(e, cfg, authMW, userHandler, todoHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
