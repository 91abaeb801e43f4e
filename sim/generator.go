package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Administration is everything generated for one student: the full-length
// features, the placement label, and one early-stopping variant per
// configured question count in ascending order.
type Administration struct {
	Student  StudentProfile
	Label    PlacementLabel
	Full     FeatureVector
	Variants []Variant
}

// Generator runs Sampler -> Simulator -> Aggregator -> Augmenter for each
// student. It holds no mutable state after construction, so Student may be
// called concurrently.
type Generator struct {
	cfg       Config
	key       SimulationKey
	abilities *AbilitySampler
	bank      *ItemBank
	responder *ResponseSimulator
	augmenter *Augmenter
	form      *TestForm // shared form in fixed_form mode, nil otherwise
}

// NewGenerator validates cfg and prepares the samplers. In fixed_form mode
// the shared test form is drawn here from its own RNG subsystem.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	abilities, err := NewAbilitySampler(cfg.ThetaMean, cfg.ThetaStd, cfg.StudentIDPrefix)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:       cfg,
		key:       NewSimulationKey(cfg.Seed),
		abilities: abilities,
		bank:      DefaultItemBank(),
		responder: NewResponseSimulator(cfg.ResponseTime),
		augmenter: NewAugmenter(cfg.NoiseScale),
	}
	if cfg.ItemMode == ItemModeFixedForm {
		rng := NewPartitionedRNG(g.key)
		form := g.bank.SampleItems(rng.ForSubsystem(SubsystemTestForm))
		g.form = &form
	}
	return g, nil
}

// Form returns the shared test form, or nil when items are drawn per student.
func (g *Generator) Form() *TestForm {
	return g.form
}

// Student generates the administration for the student at index using the
// student's own RNG stream.
func (g *Generator) Student(index int) (Administration, error) {
	rng := StreamFor(g.key, SubsystemStudent(index))

	student := g.abilities.SampleStudent(index, rng)
	form := g.form
	if form == nil {
		f := g.bank.SampleItems(rng)
		form = &f
	}
	responses := g.responder.SimulateForm(student.TrueTheta, form, rng)
	full, label := Aggregate(student.TrueTheta, responses)

	variants := make([]Variant, 0, len(g.cfg.EarlyStopCounts))
	for _, q := range g.cfg.EarlyStopCounts {
		v, err := g.augmenter.Truncate(full, q, rng)
		if err != nil {
			return Administration{}, err
		}
		variants = append(variants, v)
	}
	return Administration{Student: student, Label: label, Full: full, Variants: variants}, nil
}

// Run generates every student. Work is spread over cfg.Workers goroutines;
// each writes only its own slot so the result is ordered by student index
// and identical for any worker count.
func (g *Generator) Run(ctx context.Context) ([]Administration, error) {
	out := make([]Administration, g.cfg.StudentCount)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for i := range out {
		if egCtx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			adm, err := g.Student(i)
			if err != nil {
				return fmt.Errorf("student %d: %w", i, err)
			}
			out[i] = adm
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logrus.Debugf("generated %d students (%d variants each, item_mode=%s, workers=%d)",
		len(out), len(g.cfg.EarlyStopCounts), g.cfg.ItemMode, g.cfg.Workers)
	return out, nil
}

// Generate is shorthand for NewGenerator(cfg) followed by Run.
func Generate(ctx context.Context, cfg Config) ([]Administration, error) {
	g, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx)
}
