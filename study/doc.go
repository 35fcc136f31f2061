// Package study provides the configuration and cache-key core for exposim
// dosimetry campaigns.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - resolver.go: hierarchical configuration loading ("extends" inheritance,
//     deep merge, cycle detection)
//   - snapshot.go: per-unit surgical narrowing of the resolved tree to the
//     fields that can affect one simulation's numerical outcome
//   - fingerprint.go: canonical serialization and the content hash used as
//     the result-cache key
//
// # Architecture
//
// A campaign configuration is a JSON document that may extend a base template.
// Resolution produces a single merged Tree which is held for the process
// lifetime and treated as read-only. For every simulation unit (one phantom at
// one frequency in one placement or incidence), the Extractor builds a
// Snapshot containing exactly the configuration subset that unit depends on;
// the Snapshot's fingerprint is the key an external result store uses to
// decide reuse versus recompute. Editing one frequency's gridding entry must
// therefore re-key only that frequency's units and leave every other cached
// result untouched.
//
// Separable concerns live in sub-packages:
//   - study/session: per-run profiling and progress artifacts with bounded
//     retention
//   - study/results: the runner-side store mapping fingerprints to cached
//     result directories
package study
