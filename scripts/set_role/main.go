package main

import (
	"context"
	"fmt"
	"os"

	"whatsfood/internal/config"
	"whatsfood/internal/model"
	"whatsfood/internal/role"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Sets a user's role directly in the role table. Useful for the first
// admin, before the user management UI is reachable.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <user-id> <admin|staff>\n", os.Args[0])
		os.Exit(1)
	}
	userID := os.Args[1]
	r := model.Role(os.Args[2])

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := role.NewRepository(pool, zerolog.New(os.Stderr).With().Timestamp().Logger())
	if err := repo.Upsert(ctx, userID, r); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set role: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Role for %s set to %s\n", userID, r)
}
