// Command statement-analyzer serves the bank statement analysis API and
// offers a one-shot CLI analysis mode.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-analyzer/internal/analyzer"
	"github.com/insightdelivered/statement-analyzer/internal/api"
	"github.com/insightdelivered/statement-analyzer/internal/config"
	"github.com/insightdelivered/statement-analyzer/internal/verify"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "statement-analyzer",
		Short: "Extract and classify transactions from bank statements",
		Long: `statement-analyzer parses bank statement files (CSV, Excel, PDF),
extracts transactions, classifies narrations, and reports account
metadata, confidence scores and per-merchant aggregates.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (optional)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newAnalyzeCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := newLogger()

			a := analyzer.New(log, verify.NewClient(cfg.Integration.URL, cfg.Integration.Auth, log))
			handler := &api.Handler{
				Analyzer:    a,
				Log:         log,
				CORSOrigins: cfg.Server.CORSOrigins,
				MaxUploadMB: cfg.Server.MaxUploadMB,
			}

			app := handler.NewApp()
			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			log.Info("starting server", "addr", addr, "version", api.Version)
			return app.Listen(addr)
		},
	}
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "analyze <statement-file>",
		Short: "Analyze a statement file and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := newLogger()

			a := analyzer.New(log, verify.NewClient(cfg.Integration.URL, cfg.Integration.Auth, log))
			resp, pending := a.AnalyzeFile(args[0])
			if len(pending) > 0 {
				log.Info("transactions eligible for account verification", "count", len(pending))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return err
			}

			if csvPath != "" && resp.Success == 1 {
				w := &writer.CSVWriter{IncludeHeader: true}
				if err := w.WriteToFile(csvPath, &resp.Result); err != nil {
					return err
				}
				log.Info("wrote CSV export", "path", csvPath)
			}

			if resp.Success != 1 {
				return fmt.Errorf("analysis failed: %s", resp.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "also export transactions to a CSV file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statement-analyzer v%s\n", api.Version)
		},
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("STMT_LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
