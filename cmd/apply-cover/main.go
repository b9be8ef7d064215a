// apply-cover writes a random cover into every page of a built static site.
//
// Usage:
//
//	apply-cover -site _site [-covers _data/covers.yml] [-id cover] [-seed N]
package main

import (
	"flag"
	"log"
	"math/rand/v2"

	"coverhub/internal/site"
	"coverhub/pkg/cover"
	"coverhub/pkg/coverdata"
)

func main() {
	var (
		siteDir   = flag.String("site", "_site", "built site directory")
		coversIn  = flag.String("covers", "_data/covers.yml", "cover list (.yml, .json or .csv)")
		elementID = flag.String("id", cover.DefaultElementID, "id of the cover element")
		seed      = flag.Uint64("seed", 0, "random seed (0 picks a fresh one)")
	)
	flag.Parse()

	list, err := coverdata.Load(*coversIn)
	if err != nil {
		log.Fatalf("load covers failed: %v", err)
	}
	if len(list) == 0 {
		log.Printf("cover list %s is empty, nothing to do", *coversIn)
		return
	}

	opts := []cover.Option{cover.WithElementID(*elementID)}
	if *seed != 0 {
		opts = append(opts, cover.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}

	res, err := site.RewriteDir(*siteDir, cover.NewSelector(list, opts...))
	if err != nil {
		log.Fatalf("apply cover failed: %v", err)
	}
	log.Printf("✅ applied a cover to %d of %d pages", res.Applied, res.Pages)
}
