package sim

import (
	"fmt"
	"math"
)

// Test layout constants. The diagnostic is always administered in full as
// 28 items split into four 7-item category blocks.
const (
	NumCategories    = 4
	ItemsPerCategory = 7
	NumItems         = NumCategories * ItemsPerCategory
)

// ItemMode selects whether item parameters are redrawn for every student or
// drawn once per run and shared as a single test form.
type ItemMode string

const (
	ItemModePerStudent ItemMode = "per_student"
	ItemModeFixedForm  ItemMode = "fixed_form"
)

var validItemModes = map[ItemMode]bool{
	ItemModePerStudent: true,
	ItemModeFixedForm:  true,
}

// ResponseTimeModel parameterizes simulated response times:
// Base + PerDifficulty*(difficulty+2) + N(0, NoiseStd), floored at Floor.
type ResponseTimeModel struct {
	Base          float64 `yaml:"base"`
	PerDifficulty float64 `yaml:"per_difficulty"`
	NoiseStd      float64 `yaml:"noise_std"`
	Floor         float64 `yaml:"floor"`
}

// Config groups every parameter that influences generated data.
// Two runs with equal Config values produce identical output.
type Config struct {
	StudentCount    int               `yaml:"student_count"`
	ThetaMean       float64           `yaml:"theta_mean"`
	ThetaStd        float64           `yaml:"theta_std"`
	Seed            int64             `yaml:"seed"`
	EarlyStopCounts []int             `yaml:"early_stop_counts"`
	ItemMode        ItemMode          `yaml:"item_mode"`
	Workers         int               `yaml:"workers"`
	NoiseScale      float64           `yaml:"noise_scale"`
	ResponseTime    ResponseTimeModel `yaml:"response_time"`
	StudentIDPrefix string            `yaml:"student_id_prefix"`
}

// DefaultConfig returns the configuration used when no file or flag
// overrides a field.
func DefaultConfig() Config {
	return Config{
		StudentCount:    500,
		ThetaMean:       0,
		ThetaStd:        1.5,
		Seed:            42,
		EarlyStopCounts: []int{12, 15, 18, 21, 24},
		ItemMode:        ItemModePerStudent,
		Workers:         1,
		NoiseScale:      0.2,
		ResponseTime: ResponseTimeModel{
			Base:          15,
			PerDifficulty: 8,
			NoiseStd:      5,
			Floor:         5,
		},
		StudentIDPrefix: "STU",
	}
}

// Validate checks that all fields are usable before any simulation begins.
func (c *Config) Validate() error {
	if c.StudentCount <= 0 {
		return fmt.Errorf("student_count must be positive, got %d", c.StudentCount)
	}
	if err := validateFinite("theta_mean", c.ThetaMean); err != nil {
		return err
	}
	if err := validateFinitePositive("theta_std", c.ThetaStd); err != nil {
		return err
	}
	if err := validateEarlyStopCounts(c.EarlyStopCounts); err != nil {
		return err
	}
	if !validItemModes[c.ItemMode] {
		return fmt.Errorf("unknown item_mode %q; valid: per_student, fixed_form", c.ItemMode)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if err := validateFinite("noise_scale", c.NoiseScale); err != nil {
		return err
	}
	if c.NoiseScale < 0 {
		return fmt.Errorf("noise_scale must be non-negative, got %f", c.NoiseScale)
	}
	if err := c.ResponseTime.validate(); err != nil {
		return err
	}
	if c.StudentIDPrefix == "" {
		return fmt.Errorf("student_id_prefix must not be empty")
	}
	return nil
}

func (m ResponseTimeModel) validate() error {
	if err := validateFinite("response_time.base", m.Base); err != nil {
		return err
	}
	if err := validateFinite("response_time.per_difficulty", m.PerDifficulty); err != nil {
		return err
	}
	if err := validateFinite("response_time.noise_std", m.NoiseStd); err != nil {
		return err
	}
	if m.NoiseStd < 0 {
		return fmt.Errorf("response_time.noise_std must be non-negative, got %f", m.NoiseStd)
	}
	return validateFinitePositive("response_time.floor", m.Floor)
}

// validateEarlyStopCounts requires a strictly ascending set within [1, NumItems-1].
func validateEarlyStopCounts(counts []int) error {
	for i, q := range counts {
		if q <= 0 || q >= NumItems {
			return fmt.Errorf("early_stop_counts[%d] must be in [1, %d], got %d", i, NumItems-1, q)
		}
		if i > 0 && q <= counts[i-1] {
			return fmt.Errorf("early_stop_counts must be strictly ascending, got %d after %d", q, counts[i-1])
		}
	}
	return nil
}

func validateFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if err := validateFinite(name, val); err != nil {
		return err
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
