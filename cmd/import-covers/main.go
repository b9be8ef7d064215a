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
	in := flag.String("in", "_data/covers.yml", "input cover list (.yml, .json or .csv)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	list, err := coverdata.Load(*in)
	if err != nil {
		log.Fatalf("load covers failed: %v", err)
	}

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	n, err := covers.NewRepo(db).Replace(ctx, list)
	if err != nil {
		log.Fatalf("import covers failed: %v", err)
	}
	if skipped := len(list) - n; skipped > 0 {
		log.Printf("skipped %d duplicate entries", skipped)
	}
	log.Printf("✅ imported %d covers from %s", n, *in)
}
