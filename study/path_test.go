package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_WalksNestedObjects(t *testing.T) {
	tree := NewTree(map[string]any{
		"gridding": map[string]any{
			"700": map[string]any{"max_step_mm": 2.0},
		},
	})
	// numeric-looking legs are object keys, never array indices
	v, ok := tree.Lookup("gridding.700.max_step_mm")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestLookup_MissingKeyIsAbsentNotError(t *testing.T) {
	tree := NewTree(map[string]any{"a": map[string]any{"b": int64(1)}})
	_, ok := tree.Lookup("a.c")
	assert.False(t, ok)
	_, ok = tree.Lookup("z.b")
	assert.False(t, ok)
}

func TestLookup_ScalarIntermediateIsAbsent(t *testing.T) {
	tree := NewTree(map[string]any{"a": int64(5)})
	_, ok := tree.Lookup("a.b")
	assert.False(t, ok)
}

func TestLookup_EmptyPathPanics(t *testing.T) {
	tree := NewTree(nil)
	assert.PanicsWithValue(t, "Tree.Lookup: empty path", func() {
		tree.Lookup("")
	})
}

func TestTypedHelpers_ApplyDefaultsOnAbsence(t *testing.T) {
	tree := NewTree(map[string]any{
		"simulation_parameters": map[string]any{
			"excitation_type":  "Gaussian",
			"sim_time_periods": int64(45),
		},
		"export_material_properties": true,
	})
	assert.Equal(t, "Gaussian", tree.StringAt("simulation_parameters.excitation_type", "Harmonic"))
	assert.Equal(t, "Harmonic", tree.StringAt("simulation_parameters.missing", "Harmonic"))
	// int64 widens to float64
	assert.Equal(t, 45.0, tree.FloatAt("simulation_parameters.sim_time_periods", 30))
	assert.Equal(t, -50.0, tree.FloatAt("simulation_parameters.termination_level_db", -50))
	assert.Equal(t, 45, tree.IntAt("simulation_parameters.sim_time_periods", 0))
	assert.True(t, tree.BoolAt("export_material_properties", false))
	assert.False(t, tree.BoolAt("absent_flag", false))
}

func TestStringsAt_RejectsMixedElements(t *testing.T) {
	tree := NewTree(map[string]any{
		"names": []any{"a", "b"},
		"mixed": []any{"a", int64(1)},
	})
	names, ok := tree.StringsAt("names")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, names)
	_, ok = tree.StringsAt("mixed")
	assert.False(t, ok)
}
