package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/correo/user-service/config"
	"github.com/correo/user-service/internal/domain/entity"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	demo := []struct {
		name, email, phone string
	}{
		{"Ana Martínez", "ana@example.com", "555-0101"},
		{"Luis Pérez", "luis@example.com", "555-0102"},
		{"Carla Gómez", "carla@example.com", ""},
	}

	for _, d := range demo {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (id, name, email, phone, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at
			RETURNING id
		`, uuid.NewString(), d.name, d.email, d.phone, entity.StatusActive, time.Now().UTC()).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", d.email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s\n", id, d.email)
	}
}
