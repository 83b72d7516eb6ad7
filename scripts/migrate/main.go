package main

import (
	"context"
	"fmt"
	"os"

	"whatsfood/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// Creates the tables the API needs. Idempotent; safe to run on every
// deploy.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	schema := `
		CREATE TABLE IF NOT EXISTS user_roles (
			user_id VARCHAR(64) PRIMARY KEY,
			role VARCHAR(20) NOT NULL CHECK (role IN ('admin', 'staff')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS site_config (
			key VARCHAR(50) PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := conn.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Schema created")
}
