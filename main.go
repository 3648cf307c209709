package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose         bool
	configFile      string
	langFlag        string
	continueOnError bool
	skipPremium     bool
	jobsFlag        int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "leetcode-workspace",
	Short: "Generate a LeetCode solution workspace",
	Long: `Populates a workspace with one source stub per problem, test case files,
per-directory manifests and symlink views by category, difficulty, star and
acceptance rate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var populateCmd = &cobra.Command{
	Use:     "populate",
	Aliases: []string{"o"},
	Short:   "Write stubs for every problem in the catalog",
	Args:    cobra.NoArgs,
	RunE:    runPopulate,
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Refresh the cached problem catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, catalog, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()
		return catalog.DownloadProblems(cmd.Context())
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Recreate the view symlinks of existing stubs",
	Long: `Recreates the category, difficulty, star and percent links of every stub
on disk. Links from a previous category or percent range are left in place;
they still resolve, so "migrate remove-dangling-links" does not remove them
either. Delete the old view directories by hand when a catalog refresh moves
problems between views.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, catalog, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		problems, err := catalog.Problems(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading problems: %w", err)
		}
		linked, err := Reindex(problems, settings, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reindexed stubs: %s\n", countStyle.Render(fmt.Sprint(linked)))
		return nil
	},
}

func runPopulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	settings, catalog, closeFn, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeFn()

	problems, err := catalog.Problems(ctx)
	if err != nil {
		return fmt.Errorf("loading problems: %w", err)
	}
	if len(problems) == 0 {
		logger.Info("Downloading problems")
		if err := catalog.DownloadProblems(ctx); err != nil {
			return err
		}
		if problems, err = catalog.Problems(ctx); err != nil {
			return fmt.Errorf("loading problems: %w", err)
		}
	}

	if cmd.Flags().Changed("jobs") {
		settings.Catalog.Jobs = jobsFlag
	}
	runLogger := logger.With(zap.String("run", uuid.NewString()), zap.String("lang", settings.Code.Lang))
	populator := NewPopulator(catalog, settings, PopulateOptions{
		SkipPremium:     skipPremium,
		ContinueOnError: continueOnError,
	}, runLogger)

	summary, err := populator.Run(ctx, problems)
	PrintSummary(cmd.OutOrStdout(), summary)
	return err
}

// openCatalog loads settings and opens the cached catalog
func openCatalog() (*Settings, *Cache, func(), error) {
	overrides := &ConfigOverrides{}
	if configFile != "" {
		overrides.SettingsPath = &configFile
	}
	if langFlag != "" {
		overrides.Lang = &langFlag
	}
	settings, err := LoadConfig(overrides)
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := OpenStore(settings.Storage.Cache)
	if err != nil {
		return nil, nil, nil, err
	}
	client := NewCatalogClient(settings, LoadCredentials(), logger)
	cache := NewCache(store, client, settings.Catalog.Categories, logger)
	return settings, cache, func() { store.Close() }, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a settings file")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "Populate with specific language (saved to settings)")

	populateCmd.Flags().BoolVarP(&continueOnError, "continue_on_error", "c", false, "Print error message and continue to populate")
	populateCmd.Flags().BoolVarP(&skipPremium, "skip_premium", "s", false, "Skip populating premium questions")
	populateCmd.Flags().IntVarP(&jobsFlag, "jobs", "j", 1, "Questions fetched concurrently before writing")

	rootCmd.AddCommand(populateCmd, downloadCmd, reindexCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
