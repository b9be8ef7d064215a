package main

import (
	"context"
	"flag"
	"log"
	"time"

	"coverhub/internal/covers"
	"coverhub/pkg/coverdata"
	"coverhub/pkg/database"
)

func main() {
	out := flag.String("out", "_data/covers.yml", "output cover list (.yml, .json or .csv)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	list, err := covers.NewRepo(db).URLs(ctx)
	if err != nil {
		log.Fatalf("read covers failed: %v", err)
	}
	if err := coverdata.Save(*out, list); err != nil {
		log.Fatalf("export covers failed: %v", err)
	}
	log.Printf("✅ exported %d covers to %s", len(list), *out)
}
