// Command ensureadmin provisions (or re-provisions) the administrator
// account: insert when absent, otherwise promote and reset the
// credential. Safe to run repeatedly.
package main

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"consulting-booking-api/internal/auth"
	"consulting-booking-api/internal/config"
	"consulting-booking-api/internal/model"
	"consulting-booking-api/internal/store"
)

func main() {
	admin, err := config.LoadAdmin()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), admin.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Name:         admin.Name,
		Email:        strings.ToLower(strings.TrimSpace(admin.Email)),
		PasswordHash: hash,
	}
	if err := store.New(pool).EnsureAdmin(context.Background(), u); err != nil {
		log.Fatalf("ensure admin: %v", err)
	}
	log.Printf("admin account ensured for %s", u.Email)
}
