package main

import (
	"context"
	"fmt"
	"os"

	"wakasvg/internal/colors"
	"wakasvg/internal/config"
	"wakasvg/internal/generator"
	"wakasvg/internal/github"
	"wakasvg/internal/logging"
	"wakasvg/internal/pipeline"
	"wakasvg/internal/wakatime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:           "wakasvg",
		Short:         "Render WakaTime language stats into an SVG card committed to your profile repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(logging.Options{Verbose: verbose, Format: logFormat})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd.Context())
		},
	}

	configPath string
	verbose    bool
	logFormat  string
	dryRun     bool
	inputPath  string
	outputPath string

	logger *zap.Logger
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if logger != nil {
			logger.Error("wakasvg failed", zap.Error(err))
			_ = logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "wakasvg.yaml", "Optional YAML config file; INPUT_* environment variables override it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log encoding: json or console")

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Read everything and report the decision without writing to GitHub")
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	renderCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Existing SVG to update in place of a fresh card")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "Where to write the SVG (- for stdout)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch stats and commit the SVG to <username>/<username>",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPublish(cmd.Context())
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch stats and write the SVG locally without touching GitHub",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		stats, err := newSync(cfg, nil).RenderStats(ctx)
		if err != nil {
			return err
		}

		markers := pipeline.Markers(cfg)
		doc := generator.BuildFresh(stats, markers, cfg.SVG.Width)
		if inputPath != "" {
			existing, err := os.ReadFile(inputPath)
			if err != nil {
				return err
			}
			doc, err = generator.Splice(string(existing), stats, markers)
			if err != nil {
				return fmt.Errorf("failed to update %s: %w", inputPath, err)
			}
		}

		if outputPath == "-" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
			return err
		}
		if err := os.WriteFile(outputPath, []byte(doc), 0644); err != nil {
			return err
		}
		logger.Info("SVG written", zap.String("path", outputPath))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func runPublish(ctx context.Context) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateForPublish(); err != nil {
		return err
	}

	// the profile repository is named after the user
	store, err := github.NewStore(ctx, github.StoreOptions{
		Token:   cfg.GitHub.Token,
		BaseURL: cfg.GitHub.BaseURL,
		Owner:   cfg.Username,
		Repo:    cfg.Username,
		Branch:  cfg.GitHub.Branch,
	})
	if err != nil {
		return err
	}
	logger.Info("Publishing WakaTime stats",
		zap.String("repo", store.FullName()),
		zap.String("path", cfg.SVG.Path),
		zap.String("range", cfg.WakaTime.TimeRange))

	_, err = newSync(cfg, store).Run(ctx)
	return err
}

func newSync(cfg *config.Config, store pipeline.RemoteStore) *pipeline.WakaSync {
	return &pipeline.WakaSync{
		Config: cfg,
		Logger: logger,
		Stats:  wakatime.NewClient(nil, cfg.WakaTime.APIKey, cfg.WakaTime.BaseURL),
		Colors: func(ctx context.Context) (colors.Map, error) {
			return colors.Fetch(ctx, nil, cfg.ColorsURL)
		},
		Store:  store,
		DryRun: dryRun,
	}
}
