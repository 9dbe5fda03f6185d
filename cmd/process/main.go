package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/tonegauge/tonegauge/internal/rawfiles"
	"github.com/tonegauge/tonegauge/pkg/gauge/config"
	"github.com/tonegauge/tonegauge/pkg/gauge/normalize"
	"github.com/tonegauge/tonegauge/pkg/gauge/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (required)")
		dataDir    = flag.String("data", "", "Raw article directory (overrides config)")
	)
	flag.Parse()

	if *configPath == "" {
		log.Fatal("--config required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if cfg.DataDir == "" {
		log.Fatal("data_dir required (config or --data)")
	}

	ctx := context.Background()

	// Sweep incomplete-download placeholders before normalizing.
	indices, err := rawfiles.Sweep(cfg.DataDir)
	if err != nil {
		log.Println("Warning: delivery-notification sweep incomplete:", err)
	}
	log.Printf("There were %d incomplete download files detected", len(indices))
	if len(indices) > 0 {
		log.Printf("Re-scraping recommended for url indices: %s", strings.Join(indices, ", "))
		log.Println("Incomplete download notification files have been deleted")
	}

	files, err := rawfiles.List(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to enumerate raw files:", err)
	}

	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open corpus store:", err)
	}
	defer st.Close()

	batch := normalize.NewBatch(st, normalize.NexisAdapter{})
	report, err := batch.Run(ctx, files)
	if err != nil {
		log.Fatal("Batch aborted:", err)
	}

	for _, f := range report.Failures {
		log.Printf("Skipped %s: stage %s: %s", f.File, f.Stage, f.Err)
	}
	log.Printf("Run %s: processed %d files, inserted %d, duplicates %d [%.1f%%], skipped %d",
		report.RunID, report.Processed, report.Inserted,
		report.Duplicates, report.DuplicatePercent(), len(report.Failures))
}
