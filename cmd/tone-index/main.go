package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/tonegauge/tonegauge/pkg/gauge/config"
	"github.com/tonegauge/tonegauge/pkg/gauge/export"
	"github.com/tonegauge/tonegauge/pkg/gauge/index"
	"github.com/tonegauge/tonegauge/pkg/gauge/marketdata"
	"github.com/tonegauge/tonegauge/pkg/gauge/score"
	"github.com/tonegauge/tonegauge/pkg/gauge/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "Config file (required)")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("--config required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	components, err := cfg.LoadComponents()
	if err != nil {
		log.Fatal("Failed to load scoring resources:", err)
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open corpus store:", err)
	}
	defer st.Close()

	bodies, err := st.DatedBodies(ctx)
	if err != nil {
		log.Fatal("Failed to query article bodies:", err)
	}
	if len(bodies) == 0 {
		log.Fatal("Corpus is empty; run process first")
	}

	points := make([]index.Point, 0, len(bodies))
	for _, b := range bodies {
		t, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			log.Fatalf("Corrupt date %q in store: %v", b.Date, err)
		}
		cleaned := components.Sanitizer.Clean(b.Body)
		points = append(points, index.Point{
			Date:  t,
			Value: score.Sentiment(cleaned, components.Lexicon),
		})
	}

	months := index.AggregateMonthly(points)

	from := months[0].MonthEnd.AddDate(0, -1, 0)
	feed := marketdata.NewClient(cfg.Feed.BaseURL)
	series, err := feed.FetchDaily(ctx, cfg.Feed.Symbol, from)
	if err != nil {
		log.Fatal("Failed to fetch reference series:", err)
	}

	rows := index.AlignForwardFill(months, series)

	refHeader := strings.TrimPrefix(cfg.Feed.Symbol, "^")
	if err := export.WriteMonthlyIndex(cfg.Output.ToneIndex, "score", refHeader, rows); err != nil {
		log.Fatal("Failed to write index:", err)
	}
	log.Printf("Wrote %d monthly rows to %s", len(rows), cfg.Output.ToneIndex)
}
