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

	ctx := context.Background()

	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open corpus store:", err)
	}
	defer st.Close()

	dates, err := st.ArticleDates(ctx)
	if err != nil {
		log.Fatal("Failed to query article dates:", err)
	}
	if len(dates) == 0 {
		log.Fatal("Corpus is empty; run process first")
	}

	// One point per article, value 1: the monthly sum is the count.
	points := make([]index.Point, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			log.Fatalf("Corrupt date %q in store: %v", d, err)
		}
		points = append(points, index.Point{Date: t, Value: 1})
	}

	months := index.AggregateMonthly(points)

	// Fetch from one month before the earliest output month so the
	// first month always has a forward-fill source.
	from := months[0].MonthEnd.AddDate(0, -1, 0)
	feed := marketdata.NewClient(cfg.Feed.BaseURL)
	series, err := feed.FetchDaily(ctx, cfg.Feed.Symbol, from)
	if err != nil {
		log.Fatal("Failed to fetch reference series:", err)
	}

	rows := index.AlignForwardFill(months, series)

	refHeader := strings.TrimPrefix(cfg.Feed.Symbol, "^")
	if err := export.WriteMonthlyIndex(cfg.Output.CountIndex, "article_count", refHeader, rows); err != nil {
		log.Fatal("Failed to write index:", err)
	}
	log.Printf("Wrote %d monthly rows to %s", len(rows), cfg.Output.CountIndex)
}
