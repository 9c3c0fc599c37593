package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/eolallowlist/internal/allowlist"
	"github.com/nao1215/eolallowlist/internal/classify"
	"github.com/nao1215/eolallowlist/internal/config"
	"github.com/nao1215/eolallowlist/internal/endoflife"
	applog "github.com/nao1215/eolallowlist/internal/log"
	"github.com/nao1215/eolallowlist/internal/model"
	"github.com/nao1215/eolallowlist/internal/pipeline"
	"github.com/nao1215/eolallowlist/internal/report"
	"github.com/spf13/cobra"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch endoflife.date product links and write the allowlists",
		Long: `Scrape lists every product on endoflife.date, fetches the release cycles of
each product one by one, and classifies every distinct cycle link.

Links whose host is an IPv4 address go to ips.txt. Links whose host is a
fully-qualified domain name go to urls.txt (as normalized) and
urls-pihole.txt (FQDN only, lowercased). Anything else is dropped.

The run fails without touching any file when the product list cannot be
fetched or when no usable link is found.

Examples:
  # Write the allowlists into the current directory
  eolallowlist scrape

  # Write into a directory and save a Markdown summary
  eolallowlist scrape -o lists -s lists/SUMMARY.md

  # Use a mirror of the API with a longer delay between requests
  eolallowlist scrape --api https://eol.example.com/api --delay 1s

Configuration file (.eolallowlist) example:
  outputDir: lists
  requestDelay: 500ms
  files:
    fqdns: pihole.txt`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	cmd.Flags().String("api", config.DefaultAPIBaseURL,
		"Root of the endoflife.date API")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request")
	cmd.Flags().DurationP("delay", "d", config.DefaultRequestDelay,
		"Delay between two requests")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory the allowlists are written to")
	cmd.Flags().StringP("summary", "s", "",
		"Write a run summary to the given file (.json for JSON, Markdown otherwise)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .eolallowlist in current or home directory)")
	cmd.Flags().Bool("private-domains", false,
		"Treat private public suffixes such as github.io as suffixes")
	cmd.Flags().Bool("log-json", false,
		"Write logs as JSON")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := applog.NewLogger(cmd.ErrOrStderr(), applog.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.JSONLog,
	})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScrape(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file and
// the flags the user set explicitly, in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if flags.Changed("api") {
		if cfg.APIBaseURL, err = flags.GetString("api"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("delay") {
		if cfg.RequestDelay, err = flags.GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("private-domains") {
		if cfg.PrivateDomains, err = flags.GetBool("private-domains"); err != nil {
			return nil, err
		}
	}

	if cfg.SummaryFile, err = flags.GetString("summary"); err != nil {
		return nil, err
	}
	if cfg.JSONLog, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// runScrape runs the fetch, classify and write pipeline and prints the
// summary to out. The returned error is the one that stopped the run.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	client := endoflife.NewClient(cfg.APIBaseURL,
		endoflife.WithTimeout(cfg.Timeout),
		endoflife.WithRequestDelay(cfg.RequestDelay),
		endoflife.WithUserAgent(cfg.UserAgent),
		endoflife.WithMaxBodySize(cfg.MaxBodySize),
		endoflife.WithLogger(logger),
	)
	classifier := classify.New(classify.WithPrivateDomains(cfg.PrivateDomains))
	writer := allowlist.NewWriter(cfg.OutputDir,
		allowlist.WithFileNames(allowlist.FileNames{
			URLs:  cfg.URLsFile,
			IPs:   cfg.IPsFile,
			FQDNs: cfg.FQDNsFile,
		}),
		allowlist.WithLogger(logger),
	)

	logger.Info("starting scrape",
		"api", client.BaseURL(),
		"outputDir", cfg.OutputDir,
		"delay", cfg.RequestDelay,
	)

	run := model.NewRun(client.BaseURL())
	runErr := pipeline.Default(client, classifier, writer, pipeline.WithLogger(logger)).Execute(ctx, run)

	if _, err := report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose)).Write(run); err != nil {
		logger.Warn("failed to print summary", "error", err)
	}

	if cfg.SummaryFile != "" {
		if err := report.WriteFile(cfg.SummaryFile, run); err != nil {
			logger.Error("failed to save summary", "file", cfg.SummaryFile, "error", err)
		} else {
			logger.Info("summary saved", "file", cfg.SummaryFile)
		}
	}

	if runErr != nil {
		return fmt.Errorf("scrape failed: %w", runErr)
	}
	return nil
}
