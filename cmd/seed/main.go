package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/NTElissa/Tech-Enthusiast/config"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/pkg/helpers"
)

type seedUser struct {
	email     string
	username  string
	firstName string
	lastName  string
	phone     string
	password  string
	role      entity.Role
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	seeds := []seedUser{
		{
			email:     envOr("SEED_SUPERADMIN_EMAIL", "superadmin@techenthusiast.local"),
			username:  "superadmin",
			firstName: "Super",
			lastName:  "Admin",
			phone:     "+250780000001",
			password:  envOr("SEED_SUPERADMIN_PASSWORD", "superadmin123"),
			role:      entity.RoleSuperAdmin,
		},
		{
			email:     envOr("SEED_ADMIN_EMAIL", "admin@techenthusiast.local"),
			username:  "admin",
			firstName: "Site",
			lastName:  "Admin",
			phone:     "+250780000002",
			password:  envOr("SEED_ADMIN_PASSWORD", "admin12345"),
			role:      entity.RoleAdmin,
		},
	}

	for _, s := range seeds {
		hash, err := helpers.HashPassword(s.password)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", s.email, err)
		}
		var id string
		err = db.QueryRow(`
			INSERT INTO users (email, username, first_name, last_name, phone_number, password_hash, age, role, is_verified)
			VALUES ($1, $2, $3, $4, $5, $6, 30, $7, TRUE)
			ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, is_verified = TRUE
			RETURNING id
		`, s.email, s.username, s.firstName, s.lastName, s.phone, hash, int(s.role)).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", s.email, err)
		}
		fmt.Printf("seeded %s: id=%s email=%s\n", s.role, id, s.email)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
