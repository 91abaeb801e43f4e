package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/literise/placement-sim/sim"
	"github.com/literise/placement-sim/sim/dataset"
)

var (
	// CLI flags for generation; applied over the config file only when set
	configPath      string  // YAML run configuration
	logLevel        string  // Log verbosity level
	seed            int64   // Seed for all random draws
	studentCount    int     // Number of simulated students
	thetaMean       float64 // Mean of the ability distribution
	thetaStd        float64 // Std dev of the ability distribution
	earlyStopCounts []int   // Truncated question counts
	itemMode        string  // per_student or fixed_form
	workers         int     // Parallel generation workers
	noiseScale      float64 // Early-stopping noise scale
	sourceTag       string  // Value of the source column for full rows
	collectionDate  string  // collection_date column (YYYY-MM-DD)
	schemaVersion   string  // version column
	outputPath      string  // Output file
	outputFormat    string  // csv, sqlite or parquet
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "placement-sim",
	Short: "IRT simulator that generates grade-placement training data",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// generateCmd simulates students and writes the training table
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Simulate placement test administrations and write the training dataset",
	Run: func(cmd *cobra.Command, args []string) {
		rc, err := LoadRunConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to load run config: %v", err)
		}
		applyFlagOverrides(cmd, &rc)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		startTime := time.Now()
		summary, err := RunGenerate(ctx, rc, startTime)
		if err != nil {
			logrus.Fatalf("generation failed: %v", err)
		}
		summary.Print(os.Stdout)
		logrus.Infof("Generation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// RunGenerate generates, validates and writes the dataset described by rc.
// now supplies the collection date when rc leaves it empty.
func RunGenerate(ctx context.Context, rc RunConfig, now time.Time) (*dataset.Summary, error) {
	if rc.CollectionDate == "" {
		rc.CollectionDate = now.UTC().Format(dateLayout)
		logrus.Warnf("collection_date not set; using %s (output is only reproducible with the same date)", rc.CollectionDate)
	}
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	sink, err := dataset.NewSink(dataset.Format(rc.Format))
	if err != nil {
		return nil, err
	}

	meta := rc.Metadata()
	runID, err := dataset.RunID(rc.Config, meta)
	if err != nil {
		return nil, err
	}
	meta.RunID = runID.String()

	logrus.Infof("Starting generation run=%s students=%d seed=%d theta~N(%g, %g) early_stop=%v item_mode=%s workers=%d",
		meta.RunID, rc.StudentCount, rc.Seed, rc.ThetaMean, rc.ThetaStd, rc.EarlyStopCounts, rc.ItemMode, rc.Workers)

	adms, err := sim.Generate(ctx, rc.Config)
	if err != nil {
		return nil, fmt.Errorf("simulating students: %w", err)
	}
	table, err := dataset.Build(adms, meta)
	if err != nil {
		return nil, err
	}
	opts := dataset.ValidateOptions{EarlyStopCounts: rc.EarlyStopCounts, MinResponseTime: rc.ResponseTime.Floor}
	if err := dataset.Validate(table, opts); err != nil {
		return nil, fmt.Errorf("generated table failed validation: %w", err)
	}

	if err := sink.Write(ctx, rc.Output, table); err != nil {
		return nil, fmt.Errorf("writing %s output: %w", rc.Format, err)
	}
	logrus.Infof("Wrote %d rows to %s (%s)", table.Len(), rc.Output, rc.Format)

	summary := dataset.Summarize(table)
	if missing := summary.MissingPlacements(); len(missing) > 0 {
		logrus.Warnf("placement labels with no rows: %v", missing)
	}
	return summary, nil
}

// applyFlagOverrides copies explicitly set flags into rc. Flags left at
// their defaults never overwrite values from the config file.
func applyFlagOverrides(cmd *cobra.Command, rc *RunConfig) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		rc.Seed = seed
	}
	if flags.Changed("students") {
		rc.StudentCount = studentCount
	}
	if flags.Changed("theta-mean") {
		rc.ThetaMean = thetaMean
	}
	if flags.Changed("theta-std") {
		rc.ThetaStd = thetaStd
	}
	if flags.Changed("early-stop") {
		rc.EarlyStopCounts = earlyStopCounts
	}
	if flags.Changed("item-mode") {
		rc.ItemMode = sim.ItemMode(itemMode)
	}
	if flags.Changed("workers") {
		rc.Workers = workers
	}
	if flags.Changed("noise-scale") {
		rc.NoiseScale = noiseScale
	}
	if flags.Changed("source-tag") {
		rc.SourceTag = sourceTag
	}
	if flags.Changed("collection-date") {
		rc.CollectionDate = collectionDate
	}
	if flags.Changed("schema-version") {
		rc.Version = schemaVersion
	}
	if flags.Changed("output") {
		rc.Output = outputPath
	}
	if flags.Changed("format") {
		rc.Format = outputFormat
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultRunConfig()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	generateCmd.Flags().StringVar(&configPath, "config", "", "YAML run configuration file")
	generateCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for all random draws")
	generateCmd.Flags().IntVar(&studentCount, "students", defaults.StudentCount, "Number of simulated students")
	generateCmd.Flags().Float64Var(&thetaMean, "theta-mean", defaults.ThetaMean, "Mean of the latent ability distribution")
	generateCmd.Flags().Float64Var(&thetaStd, "theta-std", defaults.ThetaStd, "Std dev of the latent ability distribution")
	generateCmd.Flags().IntSliceVar(&earlyStopCounts, "early-stop", defaults.EarlyStopCounts, "Comma-separated ascending question counts for early-stopping variants")
	generateCmd.Flags().StringVar(&itemMode, "item-mode", string(defaults.ItemMode), "Item parameters: per_student or fixed_form")
	generateCmd.Flags().IntVar(&workers, "workers", defaults.Workers, "Parallel generation workers (output is identical for any value)")
	generateCmd.Flags().Float64Var(&noiseScale, "noise-scale", defaults.NoiseScale, "Early-stopping noise scale")
	generateCmd.Flags().StringVar(&sourceTag, "source-tag", defaults.SourceTag, "Source column value for full-length rows")
	generateCmd.Flags().StringVar(&collectionDate, "collection-date", "", "collection_date column, YYYY-MM-DD (default today, UTC)")
	generateCmd.Flags().StringVar(&schemaVersion, "schema-version", defaults.Version, "version column")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", defaults.Output, "Output file path")
	generateCmd.Flags().StringVar(&outputFormat, "format", defaults.Format, "Output format (csv, parquet, sqlite)")

	rootCmd.AddCommand(generateCmd)
}
