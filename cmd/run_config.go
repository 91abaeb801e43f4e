package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/literise/placement-sim/sim"
	"github.com/literise/placement-sim/sim/dataset"
)

// dateLayout is the collection_date format.
const dateLayout = "2006-01-02"

// RunConfig is the full configuration file for `generate`: the generation
// parameters plus output and metadata settings.
// All top-level keys must be listed here to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	sim.Config `yaml:",inline"`

	SourceTag      string `yaml:"source_tag"`
	CollectionDate string `yaml:"collection_date"` // empty = today (UTC)
	Version        string `yaml:"version"`
	Output         string `yaml:"output"`
	Format         string `yaml:"format"`
}

// DefaultRunConfig returns the configuration used without a config file.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Config:    sim.DefaultConfig(),
		SourceTag: "IRT",
		Version:   dataset.SchemaVersion,
		Output:    "data/training_data.csv",
		Format:    string(dataset.FormatCSV),
	}
}

// LoadRunConfig reads a YAML run configuration on top of DefaultRunConfig.
func LoadRunConfig(path string) (RunConfig, error) {
	rc := DefaultRunConfig()
	if path == "" {
		return rc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rc, fmt.Errorf("reading run config: %w", err)
	}

	// Parse YAML with strict field checking: typos must cause errors
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rc); err != nil && !errors.Is(err, io.EOF) {
		return rc, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return rc, nil
}

// Validate checks generation parameters and output settings.
func (rc *RunConfig) Validate() error {
	if err := rc.Config.Validate(); err != nil {
		return err
	}
	if rc.SourceTag == "" {
		return fmt.Errorf("source_tag must not be empty")
	}
	if rc.Version == "" {
		return fmt.Errorf("version must not be empty")
	}
	if rc.CollectionDate != "" {
		if _, err := time.Parse(dateLayout, rc.CollectionDate); err != nil {
			return fmt.Errorf("collection_date must be YYYY-MM-DD, got %q", rc.CollectionDate)
		}
	}
	if rc.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if _, err := dataset.NewSink(dataset.Format(rc.Format)); err != nil {
		return err
	}
	return nil
}

// Metadata returns the dataset metadata for this run (without run ID).
func (rc *RunConfig) Metadata() dataset.Metadata {
	return dataset.Metadata{
		CollectionDate: rc.CollectionDate,
		Version:        rc.Version,
		SourceTag:      rc.SourceTag,
	}
}
