package dataset

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/literise/placement-sim/sim"
)

// runIDNamespace scopes run identifiers to this generator.
var runIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://literise.app/placement-sim/run"))

// RunID derives a stable identifier from everything that determines the
// output. Identical configurations always map to the same ID, so the ID
// can be used to match a table to the run that produced it.
func RunID(cfg sim.Config, meta Metadata) (uuid.UUID, error) {
	meta.RunID = ""
	cfg.Workers = 0 // output does not depend on parallelism
	fingerprint, err := yaml.Marshal(struct {
		Config sim.Config `yaml:"config"`
		Meta   Metadata   `yaml:"meta"`
	}{cfg, meta})
	if err != nil {
		return uuid.Nil, fmt.Errorf("fingerprinting run: %w", err)
	}
	return uuid.NewSHA1(runIDNamespace, fingerprint), nil
}
