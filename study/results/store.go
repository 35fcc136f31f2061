// Package results maps unit fingerprints to cached result directories and
// plans which enumerated units still need computing.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/exposim/exposim/study"
)

// metaFileName marks a result directory as complete. A directory without it
// is treated as absent, so partially written results never satisfy a cache
// lookup.
const metaFileName = "result.json"

// Meta is the completion stub written alongside solver output.
type Meta struct {
	Unit        string    `json:"unit"`
	Fingerprint string    `json:"fingerprint"`
	ComputedAt  time.Time `json:"computed_at"`
}

// Store addresses cached results by fingerprint under one base directory.
// Whether a cached result is still trustworthy beyond its presence is the
// runner's policy, not the store's.
type Store struct {
	BaseDir string
}

// PathFor returns the directory a unit's results live in.
func (s Store) PathFor(fp study.Fingerprint) string {
	return filepath.Join(s.BaseDir, string(fp))
}

// Has reports whether a completed result exists for fp.
func (s Store) Has(fp study.Fingerprint) bool {
	_, err := os.Stat(filepath.Join(s.PathFor(fp), metaFileName))
	return err == nil
}

// MarkComputed stamps fp's directory as complete. The solver's own output
// files are the runner's business; the store only owns the completion meta.
// A zero Fingerprint or ComputedAt in meta is filled in.
func (s Store) MarkComputed(fp study.Fingerprint, meta Meta) error {
	dir := s.PathFor(fp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create result dir %s: %w", dir, err)
	}
	if meta.Fingerprint == "" {
		meta.Fingerprint = string(fp)
	}
	if meta.ComputedAt.IsZero() {
		meta.ComputedAt = time.Now().UTC()
	}
	blob, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result meta: %w", err)
	}
	path := filepath.Join(dir, metaFileName)
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("write result meta %s: %w", path, err)
	}
	return nil
}

// ReadMeta loads the completion stub for fp.
func (s Store) ReadMeta(fp study.Fingerprint) (Meta, error) {
	path := filepath.Join(s.PathFor(fp), metaFileName)
	blob, err := os.ReadFile(path)
	if err != nil {
		return Meta{}, fmt.Errorf("read result meta %s: %w", path, err)
	}
	var meta Meta
	if err := json.Unmarshal(blob, &meta); err != nil {
		return Meta{}, fmt.Errorf("parse result meta %s: %w", path, err)
	}
	return meta, nil
}

// PlanUnit pairs one enumerated identity with its fingerprint.
type PlanUnit struct {
	Identity    study.Identity
	Fingerprint study.Fingerprint
}

// Plan partitions a campaign into units whose results are already cached
// and units still to compute, preserving enumeration order.
type Plan struct {
	Cached  []PlanUnit
	Pending []PlanUnit
}

// BuildPlan fingerprints each identity with ex and consults the store.
// Extraction failures abort the plan: silently skipping units would report
// a smaller campaign than the configuration defines.
func BuildPlan(store Store, tree *study.Tree, ex study.Extractor, ids []study.Identity) (Plan, error) {
	var plan Plan
	for _, id := range ids {
		snap, err := ex.Extract(tree, id)
		if err != nil {
			return Plan{}, fmt.Errorf("%s: %w", id, err)
		}
		unit := PlanUnit{Identity: id, Fingerprint: snap.Fingerprint()}
		if store.Has(unit.Fingerprint) {
			plan.Cached = append(plan.Cached, unit)
		} else {
			plan.Pending = append(plan.Pending, unit)
		}
	}
	return plan, nil
}
