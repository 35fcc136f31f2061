package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exposim/exposim/study"
)

const campaignJSON = `{
  "study_type": "near_field",
  "solver_settings": {"solver": "auto"},
  "placement_scenarios": {"s": {"positions": {"p1": {"x": 1}, "p2": {"x": 2}}, "orientations": {"o1": {}}}},
  "phantoms": {"duke": {}},
  "campaign": {"phantoms": ["duke"], "frequencies_mhz": [700]}
}`

func parseTree(t *testing.T, src string) *study.Tree {
	t.Helper()
	v, err := oj.Parse([]byte(src))
	require.NoError(t, err)
	root, ok := v.(map[string]any)
	require.True(t, ok)
	return study.NewTree(root)
}

func TestStore_HasAfterMarkComputed(t *testing.T) {
	store := Store{BaseDir: t.TempDir()}
	fp := study.Fingerprint("3f2a9c0d1e4b5a6f7081920a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e")
	assert.Equal(t, filepath.Join(store.BaseDir, string(fp)), store.PathFor(fp))
	assert.False(t, store.Has(fp))

	require.NoError(t, store.MarkComputed(fp, Meta{Unit: "near_field duke 700MHz s/p1/o1"}))
	assert.True(t, store.Has(fp))

	meta, err := store.ReadMeta(fp)
	require.NoError(t, err)
	assert.Equal(t, "near_field duke 700MHz s/p1/o1", meta.Unit)
	// zero fields were filled in on write
	assert.Equal(t, string(fp), meta.Fingerprint)
	assert.False(t, meta.ComputedAt.IsZero())
}

func TestStore_DirWithoutMetaIsNotCached(t *testing.T) {
	store := Store{BaseDir: t.TempDir()}
	fp := study.Fingerprint("aaaa")
	require.NoError(t, os.MkdirAll(store.PathFor(fp), 0o755))
	assert.False(t, store.Has(fp), "a result dir without completion meta must not satisfy the cache")
}

func TestStore_ReadMetaMissing(t *testing.T) {
	store := Store{BaseDir: t.TempDir()}
	_, err := store.ReadMeta(study.Fingerprint("bbbb"))
	assert.Error(t, err)
}

func TestBuildPlan_PartitionsCachedAndPending(t *testing.T) {
	tree := parseTree(t, campaignJSON)
	ids, err := study.EnumerateIdentities(tree)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	store := Store{BaseDir: t.TempDir()}
	fp0, err := study.UnitFingerprint(tree, ids[0])
	require.NoError(t, err)
	require.NoError(t, store.MarkComputed(fp0, Meta{Unit: ids[0].String()}))

	plan, err := BuildPlan(store, tree, study.Extractor{}, ids)
	require.NoError(t, err)
	require.Len(t, plan.Cached, 1)
	require.Len(t, plan.Pending, 1)
	assert.Equal(t, ids[0], plan.Cached[0].Identity)
	assert.Equal(t, fp0, plan.Cached[0].Fingerprint)
	assert.Equal(t, ids[1], plan.Pending[0].Identity)
}

func TestBuildPlan_ExtractionFailureAborts(t *testing.T) {
	tree := parseTree(t, campaignJSON)
	bad := study.Identity{Phantom: "duke", FrequencyMHz: 700,
		Study: study.NearFieldUnit{Scenario: "missing", Position: "p1", Orientation: "o1"}}
	_, err := BuildPlan(Store{BaseDir: t.TempDir()}, tree, study.Extractor{}, []study.Identity{bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, study.ErrMissingIdentityKey)
}
