// Command extract runs free-text expense extraction and normalization once
// and prints the normalized record as JSON. Nothing is stored.
//
//	extract -date 2024-03-10 "lunch 150 yesterday"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	vertexclient "github.com/GregMSThompson/expense-tracker/internal/client/vertex"
	"github.com/GregMSThompson/expense-tracker/internal/config"
	"github.com/GregMSThompson/expense-tracker/internal/normalize"
	"github.com/GregMSThompson/expense-tracker/internal/services"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	refDate := flag.String("date", "", "reference date (YYYY-MM-DD) used to resolve relative dates, defaults to today")
	raw := flag.Bool("raw", false, "print the model output before normalization")
	flag.Parse()

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: extract [-date YYYY-MM-DD] [-raw] <text>")
		os.Exit(2)
	}

	cfg := config.New()
	log := logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	ctx := logger.ToContext(context.Background(), log)

	ref := time.Now().UTC()
	if *refDate != "" {
		parsed, ok := normalize.ParseDate(*refDate)
		if !ok {
			exitOnError("invalid -date", fmt.Errorf("cannot parse %q", *refDate), log)
		}
		ref = parsed
	}

	adapter, err := vertexclient.NewAdapter(ctx, log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
	exitOnError("vertex init failed", err, log)
	defer adapter.Close()

	extracted, err := services.NewExtractionService(adapter).Extract(ctx, text, ref)
	exitOnError("extraction failed", err, log)

	var out any = extracted
	if !*raw {
		expense, err := normalize.New().Expense(ctx, extracted)
		exitOnError("normalization failed", err, log)
		out = expense
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	exitOnError("encode failed", enc.Encode(out), log)
}
