// Command fetch downloads the draw history of every requested lottery from
// the public results API and writes the combined raw document that cmd/etl
// consumes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/datasource/feed"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/loterias"
)

func main() {
	var (
		baseURL     string
		outPath     string
		list        string
		concurrency int
	)
	flag.StringVar(&baseURL, "base-url", "", "results API root; each product is fetched from <base-url>/<loteria>")
	flag.StringVar(&outPath, "out", "data/raw/dataset.json", "output path for the combined raw document")
	flag.StringVar(&list, "lotteries", "", "comma-separated products (default: all known)")
	flag.IntVar(&concurrency, "concurrency", 3, "parallel downloads")
	flag.Parse()

	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if baseURL == "" {
		baseURL = os.Getenv("ETL_FEED_BASE_URL")
	}

	lotteries := loterias.Known()
	if list != "" {
		lotteries = lotteries[:0]
		for _, l := range strings.Split(list, ",") {
			if n := loterias.NormalizeName(l); n != "" {
				lotteries = append(lotteries, n)
			}
		}
	}

	client, err := feed.NewClient(feed.Config{BaseURL: baseURL, Concurrency: concurrency})
	if err != nil {
		log.Fatal().Err(err).Msg("feed client")
	}

	start := time.Now()
	recs, err := client.FetchAll(context.Background(), lotteries)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch failed")
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatal().Err(err).Msg("create output")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	if err := enc.Encode(recs); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}

	log.Info().
		Int("rows", len(recs)).
		Strs("lotteries", lotteries).
		Dur("elapsed", time.Since(start)).
		Str("out", outPath).
		Msg("dataset written")
}
