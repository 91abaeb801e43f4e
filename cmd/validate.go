package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/literise/placement-sim/sim"
	"github.com/literise/placement-sim/sim/dataset"
)

var (
	inputPath       string  // CSV dataset to inspect
	allowedCounts   []int   // Allowed truncated question counts
	minResponseTime float64 // Response-time floor
)

// validateCmd checks an existing CSV dataset against the row invariants
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a generated CSV dataset for malformed or inconsistent rows",
	Run: func(cmd *cobra.Command, args []string) {
		table, err := dataset.ReadCSV(inputPath)
		if err != nil {
			logrus.Fatalf("unable to read dataset: %v", err)
		}
		opts := dataset.ValidateOptions{EarlyStopCounts: allowedCounts, MinResponseTime: minResponseTime}
		if err := dataset.Validate(table, opts); err != nil {
			logrus.Fatalf("%s is invalid:\n%v", inputPath, err)
		}
		logrus.Infof("%s: %d rows valid", inputPath, table.Len())
	},
}

// summaryCmd prints row counts and the placement distribution of a CSV dataset
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print row counts and label distribution of a generated CSV dataset",
	Run: func(cmd *cobra.Command, args []string) {
		table, err := dataset.ReadCSV(inputPath)
		if err != nil {
			logrus.Fatalf("unable to read dataset: %v", err)
		}
		s := dataset.Summarize(table)
		fmt.Printf("=== %s ===\n", inputPath)
		s.Print(os.Stdout)
		if missing := s.MissingPlacements(); len(missing) > 0 {
			logrus.Warnf("placement labels with no rows: %v", missing)
		}
	},
}

func init() {
	defaults := sim.DefaultConfig()

	validateCmd.Flags().StringVar(&inputPath, "input", "", "Path to a CSV dataset")
	validateCmd.Flags().IntSliceVar(&allowedCounts, "early-stop", defaults.EarlyStopCounts, "Allowed early-stopping question counts")
	validateCmd.Flags().Float64Var(&minResponseTime, "min-response-time", defaults.ResponseTime.Floor, "Response-time floor in seconds")
	_ = validateCmd.MarkFlagRequired("input")

	summaryCmd.Flags().StringVar(&inputPath, "input", "", "Path to a CSV dataset")
	_ = summaryCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summaryCmd)
}
