// Command create-admin creates or updates an admin profile for password login.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bgpaten/ahyarpattani/auth"
	"github.com/bgpaten/ahyarpattani/config"
	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/models"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (or ADMIN_PASSWORD)")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}
	if err := auth.ValidatePassword(*password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	_ = godotenv.Load()
	db, err := database.Open(config.LoadDatabase(config.New()))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	current := database.New(db)

	ctx := context.Background()
	if err := current.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.Profile{Email: *email, PasswordHash: hash, Role: models.RoleAdmin}
	if err := current.ProfileRepo().Upsert(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("Admin profile saved")
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("ID: %s, Role: %s\n", admin.ID, admin.Role)
}
