package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"whatsfood/internal/auth"
	"whatsfood/internal/config"
	"whatsfood/internal/model"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Verifies the configured auth backend keys actually work: the service
// key by listing users, the anon key by provoking a clean credential
// rejection from the token endpoint.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	client := auth.NewClient(cfg.Auth.URL, cfg.Auth.AnonKey, cfg.Auth.ServiceKey, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := client.ListUsers(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service key check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Service key OK (%d users)\n", len(users))

	// A rejected sign-in proves the anon key reached the backend; any
	// other failure means the key or URL is wrong.
	_, err = client.SignIn(ctx, "keycheck@invalid.example", "not-a-real-password")
	if errors.Is(err, model.ErrInvalidCredentials) {
		fmt.Println("Anon key OK")
		return
	}
	fmt.Fprintf(os.Stderr, "Anon key check failed: %v\n", err)
	os.Exit(1)
}
