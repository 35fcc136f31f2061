package study

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NoExtendsReturnsDocumentAsIs(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigJSON(t, dir, "solo.json", `{"study_type": "near_field"}`)
	tree, err := NewResolver(dir).Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "near_field", tree.StringAt("study_type", ""))
}

func TestResolve_ChildOverridesBaseDeepMerge(t *testing.T) {
	dir := t.TempDir()
	writeConfigJSON(t, dir, "base.json", `{
		"study_type": "near_field",
		"solver_settings": {"solver": "auto", "retries": 3},
		"simulation_parameters": {"sim_time_periods": 30}
	}`)
	child := writeConfigJSON(t, dir, "child.json", `{
		"extends": "base.json",
		"solver_settings": {"solver": "manual"}
	}`)
	tree, err := NewResolver(dir).Resolve(child)
	require.NoError(t, err)

	// child wins where both define a leaf
	assert.Equal(t, "manual", tree.StringAt("solver_settings.solver", ""))
	// sibling keys in the same object survive the merge
	assert.Equal(t, 3, tree.IntAt("solver_settings.retries", 0))
	// untouched base sections carry through
	assert.Equal(t, 30, tree.IntAt("simulation_parameters.sim_time_periods", 0))
	// the directive itself is consumed
	_, declared := tree.Raw["extends"]
	assert.False(t, declared)
}

func TestResolve_GrandparentChain(t *testing.T) {
	dir := t.TempDir()
	writeConfigJSON(t, dir, "org.json", `{"gridding": {"defaults": {"max_step_mm": 5}}, "export_material_properties": false}`)
	writeConfigJSON(t, dir, "team.json", `{"extends": "org.json", "export_material_properties": true}`)
	leaf := writeConfigJSON(t, dir, "campaign.json", `{"extends": "team.json", "study_type": "far_field"}`)
	tree, err := NewResolver(dir).Resolve(leaf)
	require.NoError(t, err)
	assert.Equal(t, "far_field", tree.StringAt("study_type", ""))
	assert.True(t, tree.BoolAt("export_material_properties", false))
	assert.Equal(t, 5, tree.IntAt("gridding.defaults.max_step_mm", 0))
}

func TestResolve_ArraysReplaceOutright(t *testing.T) {
	dir := t.TempDir()
	writeConfigJSON(t, dir, "base.json", `{"campaign": {"phantoms": ["duke", "ella"]}}`)
	child := writeConfigJSON(t, dir, "child.json", `{"extends": "base.json", "campaign": {"phantoms": ["billie"]}}`)
	tree, err := NewResolver(dir).Resolve(child)
	require.NoError(t, err)
	phantoms, ok := tree.StringsAt("campaign.phantoms")
	require.True(t, ok)
	assert.Equal(t, []string{"billie"}, phantoms)
}

func TestResolve_CycleDetected(t *testing.T) {
	dir := t.TempDir()
	writeConfigJSON(t, dir, "a.json", `{"extends": "b.json"}`)
	b := writeConfigJSON(t, dir, "b.json", `{"extends": "a.json"}`)
	_, err := NewResolver(dir).Resolve(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigCycle)
	assert.Contains(t, err.Error(), " -> ")
}

func TestResolve_SelfExtendsIsACycle(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigJSON(t, dir, "self.json", `{"extends": "self.json"}`)
	_, err := NewResolver(dir).Resolve(path)
	assert.ErrorIs(t, err, ErrConfigCycle)
}

func TestResolve_MissingBaseFailsFast(t *testing.T) {
	dir := t.TempDir()
	child := writeConfigJSON(t, dir, "child.json", `{"extends": "nowhere.json"}`)
	_, err := NewResolver(dir).Resolve(child)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestResolve_ExtendsMustBeString(t *testing.T) {
	dir := t.TempDir()
	child := writeConfigJSON(t, dir, "child.json", `{"extends": 42}`)
	_, err := NewResolver(dir).Resolve(child)
	assert.ErrorIs(t, err, ErrConfigMalformed)
}

func TestResolve_RelativeExtendsResolvesAgainstChildDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "teams")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeConfigJSON(t, sub, "base.json", `{"study_type": "near_field"}`)
	child := writeConfigJSON(t, sub, "child.json", `{"extends": "./base.json"}`)

	// ConfigsDir points elsewhere; the separator forces child-relative lookup
	tree, err := NewResolver(dir).Resolve(child)
	require.NoError(t, err)
	assert.Equal(t, "near_field", tree.StringAt("study_type", ""))
}
