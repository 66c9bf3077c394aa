package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/presseportal/config"
	"github.com/s0up4200/presseportal/filter"
	"github.com/s0up4200/presseportal/presseportal"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *presseportal.Client
	presets *filter.Presets

	// Command flags
	filterExpr   string
	preset       string
	outputFormat string
	media        string
	start        int
	limit        int
	teaser       bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "presseportal",
	Short: "Query press releases from the presseportal.de API",
	Long: `presseportal is a CLI for the presseportal.de news API.

It lists current stories, public service news by region, stories by topic,
keyword or investor relations category, and searches companies and offices.
Results can be narrowed further with filter expressions.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (console/json), overrides output.format")
}

// addQueryFlags registers the optional query parameters and filter flags on a story command
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&media, "media", "m", "", "only stories with this media type (image/document/audio/video)")
	cmd.Flags().IntVar(&start, "start", 0, "offset into the result list")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of stories, overrides query.limit")
	cmd.Flags().BoolVar(&teaser, "teaser", false, "request teasers instead of the full text")
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the results")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("output") {
		if outputFormat != "console" && outputFormat != "json" {
			return fmt.Errorf("invalid output format: %s (must be 'console' or 'json')", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}

	opts := []presseportal.Option{
		presseportal.WithBaseURL(cfg.API.BaseURL),
		presseportal.WithUserAgent(cfg.API.UserAgent),
		presseportal.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	}
	if cfg.API.Timeout > 0 {
		opts = append(opts, presseportal.WithTimeout(cfg.API.Timeout))
	}

	client, err = presseportal.NewClient(cfg.API.Key, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create presseportal client: %w", err)
	}

	presets, err = filter.NewPresets(filter.NewCompiler(cfg.Filter.CacheSize), cfg.Filter.Presets)
	if err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	terminal := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// queryOptions builds the per-call options from flags, falling back to config defaults
func queryOptions(cmd *cobra.Command) []presseportal.QueryOption {
	var opts []presseportal.QueryOption

	if media != "" {
		opts = append(opts, presseportal.WithMedia(media))
	}
	if cmd.Flags().Changed("start") {
		opts = append(opts, presseportal.Start(start))
	}

	switch {
	case cmd.Flags().Changed("limit"):
		opts = append(opts, presseportal.Limit(limit))
	case cfg.Query.Limit > 0:
		opts = append(opts, presseportal.Limit(cfg.Query.Limit))
	}

	switch {
	case cmd.Flags().Changed("teaser"):
		opts = append(opts, presseportal.Teaser(teaser))
	case cfg.Query.Teaser != nil:
		opts = append(opts, presseportal.Teaser(*cfg.Query.Teaser))
	}

	return opts
}

// applyFilter narrows stories with the filter flag, the preset flag or filter.default
func applyFilter(stories []presseportal.Story) ([]presseportal.Story, error) {
	f, err := presets.Resolve(filterExpr, preset, cfg.Filter.Default)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	if f == nil {
		return stories, nil
	}

	matches, err := f.Apply(stories)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("filter", f.String()).
		Int("fetched", len(stories)).
		Int("matched", len(matches)).
		Msg("Applied story filter")

	return matches, nil
}

func formatOptions() FormatOptions {
	return FormatOptions{ShowDetails: cfg.Output.ShowDetails}
}
