package study

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// shortLen is how many leading hex digits Short keeps, enough to be unique
// within any realistic campaign while staying readable in logs and paths.
const shortLen = 12

// Fingerprint is the cache key of one simulation unit: the SHA-256 digest,
// in lowercase hex, of the unit snapshot's canonical serialization. Equal
// fingerprints mean the cached result is reusable; unequal fingerprints mean
// something causally relevant changed.
type Fingerprint string

// Short returns a truncated form for logs and directory listings.
func (f Fingerprint) Short() string {
	if len(f) < shortLen {
		return string(f)
	}
	return string(f[:shortLen])
}

// Canonical serializes the snapshot deterministically: object keys sorted at
// every level, no indentation. Two snapshots with equal content canonicalize
// identically regardless of map iteration or source key order.
func (s *Snapshot) Canonical() string {
	opts := ojg.Options{Sort: true}
	return oj.JSON(s.Raw, &opts)
}

// Fingerprint digests the canonical serialization.
func (s *Snapshot) Fingerprint() Fingerprint {
	sum := sha256.Sum256([]byte(s.Canonical()))
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// UnitFingerprint extracts the strict snapshot for id and returns its
// fingerprint. Callers that also need the snapshot should extract once and
// fingerprint the result instead.
func UnitFingerprint(tree *Tree, id Identity) (Fingerprint, error) {
	snap, err := BuildSimulationConfig(tree, id)
	if err != nil {
		return "", err
	}
	return snap.Fingerprint(), nil
}
