package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"garage-reconciliation/internal/config"
	"garage-reconciliation/internal/gateway"
	"garage-reconciliation/internal/logging"
	"garage-reconciliation/internal/matcher"
	"garage-reconciliation/internal/presenter"
	"garage-reconciliation/internal/usecase"
)

func main() {
	// Define command-line flags
	obligationsFile := flag.String("obligations", "", "Path to the garage registry CSV file (required)")
	statementFile := flag.String("statement", "", "Path to the bank statement CSV file (required)")
	analysisStr := flag.String("analysis", "", "Analysis date (YYYY-MM-DD), defaults to today")
	monthStr := flag.String("month", "", "Target month for expected dates (YYYY-MM), defaults to the statement period")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	format := flag.String("format", "json", "Output format: json or text")
	flag.Parse()

	// Validate required flags
	if *obligationsFile == "" || *statementFile == "" {
		fmt.Fprintln(os.Stderr, "Error: flags -obligations and -statement are required.")
		flag.Usage()
		os.Exit(1)
	}
	if *format != "json" && *format != "text" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want json or text)\n", *format)
		os.Exit(1)
	}

	cfg, err := config.LoadOrEnvWithPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewComponentLogger(cfg.Logging, os.Stderr, "reconciler")

	analysisDate := time.Now()
	if *analysisStr != "" {
		parsed, err := time.Parse("2006-01-02", *analysisStr)
		if err != nil {
			fatal(logger, "invalid analysis date", err)
		}
		analysisDate = parsed
	}

	var targetMonth *time.Time
	if *monthStr != "" {
		parsed, err := time.Parse("2006-01", *monthStr)
		if err != nil {
			fatal(logger, "invalid target month", err)
		}
		targetMonth = &parsed
	}

	engineCfg, err := cfg.Matching.EngineConfig()
	if err != nil {
		fatal(logger, "invalid matching config", err)
	}

	// --- Dependency Injection (Wiring the application) ---
	csvRepo := gateway.NewCSVTransactionRepository(logging.NewComponentLogger(cfg.Logging, os.Stderr, "gateway"))
	engine := matcher.NewEngine(engineCfg, logging.NewComponentLogger(cfg.Logging, os.Stderr, "matcher"))
	reconciliationUseCase := usecase.NewReconciliationUseCase(csvRepo, engine, logger)

	// --- Execute the Usecase ---
	report, err := reconciliationUseCase.Reconcile(context.Background(), usecase.Request{
		ObligationsPath: *obligationsFile,
		StatementPath:   *statementFile,
		AnalysisDate:    analysisDate,
		TargetMonth:     targetMonth,
	})
	if err != nil {
		fatal(logger, "reconciliation failed", err)
	}

	// --- Present the Output ---
	if *format == "text" {
		if err := presenter.WriteSummary(os.Stdout, report); err != nil {
			fatal(logger, "failed to write summary", err)
		}
		return
	}

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fatal(logger, "failed to generate JSON report", err)
	}
	fmt.Println(string(output))
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
