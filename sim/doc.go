// Package sim provides the Item Response Theory simulation engine that
// synthesizes training data for the grade-placement classifier.
//
// # Reading Guide
//
// Data flows strictly downward through these files:
//   - student.go, item.go, distribution.go: latent ability and 2PL item parameter sampling
//   - response.go: correctness trial and response time per item
//   - features.go, placement.go: reduction of 28 responses to a FeatureVector and label
//   - truncate.go: early-stopping variants derived from a full-length vector
//   - generator.go: per-student pipeline and the bounded worker pool
//
// The dataset sub-package (sim/dataset) assembles Administrations into the
// output table and writes it as CSV, SQLite or Parquet.
//
// # Determinism
//
// No code in this package touches the global math/rand source. Every
// student draws from its own stream derived from the run seed (rng.go), so
// the generated data depends only on Config, never on worker count or
// scheduling order.
package sim
