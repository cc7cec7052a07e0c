// cmd/seeder/main.go
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/unclebandit/marketinghub-backend/internal/config"
	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

// The seeder creates one (id, doc) table per collection and loads the demo
// dataset through the same store adapter the server uses.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for seeding")
	}

	pg, err := store.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.DB.Close()

	for _, collection := range model.Collections {
		ddl := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, doc JSONB NOT NULL)`,
			collection,
		)
		if _, err := pg.DB.Exec(ddl); err != nil {
			log.Fatalf("failed to create table %s: %v", collection, err)
		}
		fmt.Printf("Created table: %s\n", collection)
	}

	for collection, records := range store.SeedData() {
		for _, rec := range records {
			// Ids are reassigned by the live store on insert.
			delete(rec, "id")
			if _, err := pg.Insert(collection, rec); err != nil {
				log.Fatalf("failed to seed %s: %v", collection, err)
			}
		}
		fmt.Printf("Seeded: %s (%d rows)\n", collection, len(records))
	}

	fmt.Println("Database seeding completed successfully!")
}
