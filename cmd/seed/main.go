package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"taskpad/internal/apperr"
	"taskpad/internal/config"
	"taskpad/internal/db"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

const (
	demoEmail    = "demo@taskpad.local"
	demoPassword = "secret123"
)

var demoTodos = []string{
	"Walk the dog",
	"Review the quarterly report",
	"Buy groceries",
	"Book dentist appointment",
}

// Seeds a demo user with a few todos for local development.
func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.AuthToken{}, &model.Todo{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	todos := repository.NewTodoRepository(gormDB)
	ctx := context.Background()

	user, err := findOrCreateDemoUser(ctx, users)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (%s)", user.Email, user.ID)

	created, skipped, err := seedTodos(ctx, todos, user)
	if err != nil {
		log.Fatalf("Failed to seed todos: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New todos created: %d", created)
	log.Printf("  - Already present: %d", skipped)
	log.Printf("Log in with %s / %s", demoEmail, demoPassword)
}

func findOrCreateDemoUser(ctx context.Context, users repository.UserRepository) (*model.User, error) {
	existing, err := users.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        demoEmail,
		PasswordHash: string(hashed),
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedTodos inserts the demo todos that are not already present, matching by
// text so reruns stay idempotent.
func seedTodos(ctx context.Context, todos repository.TodoRepository, user *model.User) (created int, skipped int, err error) {
	existing, err := todos.ListByOwner(ctx, user.ID)
	if err != nil {
		return 0, 0, err
	}
	present := make(map[string]bool, len(existing))
	for _, todo := range existing {
		present[todo.Text] = true
	}

	for _, text := range demoTodos {
		if present[text] {
			skipped++
			continue
		}
		todo := &model.Todo{Text: text, OwnerID: user.ID}
		if err := todos.Create(ctx, todo); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
