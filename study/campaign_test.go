package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaign_ReadsAxes(t *testing.T) {
	tree := parseTree(t, nearFieldCampaignJSON)
	view, err := tree.Campaign()
	require.NoError(t, err)
	assert.Equal(t, []string{"duke", "ella"}, view.Phantoms)
	assert.Equal(t, []int{700, 3500}, view.FrequenciesMHz)
}

func TestCampaign_MissingAxesAreErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no campaign section", `{"study_type": "near_field"}`},
		{"no phantoms", `{"campaign": {"frequencies_mhz": [700]}}`},
		{"empty phantoms", `{"campaign": {"phantoms": [], "frequencies_mhz": [700]}}`},
		{"no frequencies", `{"campaign": {"phantoms": ["duke"]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTree(t, tt.src).Campaign()
			assert.Error(t, err)
		})
	}
}

func TestCampaign_AcceptsIntegralFloatFrequency(t *testing.T) {
	tree := parseTree(t, `{"campaign": {"phantoms": ["duke"], "frequencies_mhz": [700.0, 3500]}}`)
	view, err := tree.Campaign()
	require.NoError(t, err)
	assert.Equal(t, []int{700, 3500}, view.FrequenciesMHz)
}

func TestCampaign_RejectsFractionalFrequency(t *testing.T) {
	tree := parseTree(t, `{"campaign": {"phantoms": ["duke"], "frequencies_mhz": [700.5]}}`)
	_, err := tree.Campaign()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "700.5")
}

func TestEnumerateIdentities_NearFieldOrderAndCount(t *testing.T) {
	tree := parseTree(t, nearFieldCampaignJSON)
	ids, err := EnumerateIdentities(tree)
	require.NoError(t, err)
	// front_of_eyes: 2 phantoms x 2 freqs x 2 positions x 2 orientations,
	// next_to_ear: 2 x 2 x 1 x 1
	assert.Len(t, ids, 16+4)

	// scenario names sort, campaign lists keep configured order
	first := ids[0]
	assert.Equal(t, "duke", first.Phantom)
	assert.Equal(t, 700, first.FrequencyMHz)
	assert.Equal(t, NearFieldUnit{Scenario: "front_of_eyes", Position: "p1", Orientation: "o1"}, first.Study)

	again, err := EnumerateIdentities(tree)
	require.NoError(t, err)
	assert.Equal(t, ids, again, "enumeration must be deterministic")
}

func TestEnumerateIdentities_FarFieldOrder(t *testing.T) {
	tree := parseTree(t, farFieldCampaignJSON)
	ids, err := EnumerateIdentities(tree)
	require.NoError(t, err)
	// 1 phantom x 1 frequency x 3 directions x 2 polarizations
	require.Len(t, ids, 6)
	assert.Equal(t, FarFieldUnit{Direction: "x+", Polarization: "theta"}, ids[0].Study)
	assert.Equal(t, FarFieldUnit{Direction: "x+", Polarization: "phi"}, ids[1].Study)
	assert.Equal(t, FarFieldUnit{Direction: "x-", Polarization: "theta"}, ids[2].Study)
}

func TestEnumerateIdentities_EveryUnitExtractsStrictly(t *testing.T) {
	// the enumeration and the strict extractor must agree on what exists
	for _, src := range []string{nearFieldCampaignJSON, farFieldCampaignJSON} {
		tree := parseTree(t, src)
		ids, err := EnumerateIdentities(tree)
		require.NoError(t, err)
		for _, id := range ids {
			_, err := BuildSimulationConfig(tree, id)
			assert.NoError(t, err, "unit %s", id)
		}
	}
}

func TestEnumerateIdentities_UnknownStudyType(t *testing.T) {
	tree := parseTree(t, `{"study_type": "mid_field", "campaign": {"phantoms": ["duke"], "frequencies_mhz": [700]}}`)
	_, err := EnumerateIdentities(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mid_field")
}

func TestEnumerateIdentities_NearFieldRequiresScenarios(t *testing.T) {
	tree := parseTree(t, `{"study_type": "near_field", "campaign": {"phantoms": ["duke"], "frequencies_mhz": [700]}}`)
	_, err := EnumerateIdentities(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placement_scenarios")
}
