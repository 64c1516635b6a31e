package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cinevault/movie-catalog-api/internal/domain/apikey"
	"github.com/cinevault/movie-catalog-api/internal/storage/postgres"
	"github.com/cinevault/movie-catalog-api/internal/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	name := flag.String("name", "", "Owner name for the new key (required)")
	email := flag.String("email", "", "Owner email (optional)")
	rateLimit := flag.Int("rate-limit", 1000, "Requests allowed per sliding window")
	expiresIn := flag.Duration("expires-in", 0, "Key lifetime, e.g. 720h (0 = never expires)")
	flag.Parse()

	if *name == "" {
		log.Fatal("-name is required")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	plaintext, keyHash, err := util.GenerateAPIKey()
	if err != nil {
		log.Fatalf("Failed to generate API key: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	repo := postgres.NewAPIKeyRepository(pool, logger)

	newKey := &apikey.APIKey{
		KeyHash:   keyHash,
		OwnerName: *name,
		RateLimit: *rateLimit,
		IsActive:  true,
	}
	if *email != "" {
		newKey.OwnerEmail = email
	}
	if *expiresIn > 0 {
		expiresAt := time.Now().UTC().Add(*expiresIn)
		newKey.ExpiresAt = &expiresAt
	}

	created, err := repo.Create(context.Background(), newKey)
	if err != nil {
		log.Fatalf("Failed to save API key to database: %v", err)
	}

	fmt.Printf("Generated API Key (SAVE THIS securely, it is not stored anywhere!):\n%s\n\n", plaintext)
	fmt.Printf("Key Hash: %s\n", keyHash)
	fmt.Printf("API Key saved to database with ID: %d\n", created.ID)
}
