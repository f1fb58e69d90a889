package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/javnievic/comparte-tu-tiempo/config"
	pginfra "github.com/javnievic/comparte-tu-tiempo/internal/infrastructure/postgres"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
)

type seedUser struct {
	email     string
	password  string
	firstName string
	lastName  string
	location  string
	superuser bool
}

type seedOffer struct {
	userEmail string
	title     string
	text      string
	minutes   int64
	isOnline  bool
	location  string
}

var users = []seedUser{
	{"admin@comparte.local", "adminadmin", "Admin", "", "Sevilla", true},
	{"lucia@comparte.local", "lucialucia", "Lucía", "García", "Sevilla", false},
	{"marco@comparte.local", "marcomarco", "Marco", "Pérez", "Madrid", false},
	{"elena@comparte.local", "elenaelena", "Elena", "Ruiz", "Valencia", false},
}

var offers = []seedOffer{
	{"lucia@comparte.local", "Clases de guitarra", "Clases de guitarra española para principiantes.", 60, false, "Sevilla"},
	{"lucia@comparte.local", "Paseo de perros", "Paseo perros por el centro entre semana.", 30, false, "Sevilla"},
	{"marco@comparte.local", "Ayuda con informática", "Resuelvo dudas de ordenador y móvil por videollamada.", 45, true, ""},
	{"elena@comparte.local", "Conversación en inglés", "Práctica de conversación, nivel intermedio.", 60, true, ""},
}

// seed inserts a small demo dataset. Safe to run repeatedly: users are
// upserted by email and offers by (user, title).
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	ids := make(map[string]string, len(users))
	for _, u := range users {
		hash, err := helpers.HashPassword(u.password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", u.email, err)
		}
		var id string
		err = pool.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, first_name, last_name, location, is_superuser)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT ((lower(email))) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				location = EXCLUDED.location,
				is_superuser = EXCLUDED.is_superuser
			RETURNING id`,
			u.email, hash, u.firstName, u.lastName, u.location, u.superuser,
		).Scan(&id)
		if err != nil {
			log.Fatalf("seed user %s: %v", u.email, err)
		}
		ids[u.email] = id
		log.Printf("user %s -> %s", u.email, id)
	}

	for _, o := range offers {
		uid, ok := ids[o.userEmail]
		if !ok {
			log.Fatalf("offer %q references unknown user %s", o.title, o.userEmail)
		}
		tag, err := pool.Exec(ctx, `
			INSERT INTO offers (user_id, title, description, duration_minutes, is_online, location)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (
				SELECT 1 FROM offers WHERE user_id = $1 AND title = $2
			)`,
			uid, o.title, o.text, o.minutes, o.isOnline, o.location,
		)
		if err != nil {
			log.Fatalf("seed offer %q: %v", o.title, err)
		}
		if tag.RowsAffected() > 0 {
			log.Printf("offer %q created for %s", o.title, o.userEmail)
		}
	}

	log.Println("seed complete")
}
