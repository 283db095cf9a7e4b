// Seeds the prgsessions collection from a grouped schedule JSON file:
// {"2024-2025": [{"date": "16-09-24", "paperTitle": ..., "presenter": [...]}, ...]}.
// Existing sessions are wiped first.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labsite/internal/config"
	"labsite/internal/model"
	"labsite/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	path := "data/prg-schedule.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read schedule file:", err)
	}

	var schedule map[string][]model.SessionInput
	if err := json.Unmarshal(data, &schedule); err != nil {
		log.Fatal("Failed to parse schedule file:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := client.Database(cfg.MongoDatabase)
	repo := repository.NewSessionRepo(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	if _, err := db.Collection("prgsessions").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatal("Failed to clear existing sessions:", err)
	}
	log.Println("Cleared existing PRG sessions")

	inserted := 0
	for year, sessions := range schedule {
		for i := range sessions {
			input := sessions[i]
			input.AcademicYear = year
			if _, err := repo.Create(ctx, &input); err != nil {
				log.Fatalf("Failed to insert session %q (%s): %v", input.PaperTitle, year, err)
			}
			inserted++
		}
	}

	log.Printf("Seeded %d PRG sessions across %d academic years", inserted, len(schedule))
}
