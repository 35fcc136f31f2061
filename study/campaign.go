package study

import (
	"fmt"
	"math"
	"sort"
)

// Campaign axis paths.
const (
	pathCampaignPhantoms = keyCampaign + ".phantoms"
	pathCampaignFreqs    = keyCampaign + ".frequencies_mhz"
)

// CampaignView lists the phantom and frequency axes every study type
// shares. Both lists keep their configured order.
type CampaignView struct {
	Phantoms       []string
	FrequenciesMHz []int
}

// Campaign reads the campaign section. Missing or malformed axis lists are
// errors: a campaign with no phantoms or no frequencies enumerates nothing
// and almost certainly indicates a truncated configuration.
func (t *Tree) Campaign() (CampaignView, error) {
	phantoms, ok := t.StringsAt(pathCampaignPhantoms)
	if !ok || len(phantoms) == 0 {
		return CampaignView{}, fmt.Errorf("%s: missing or not a non-empty string list", pathCampaignPhantoms)
	}
	raw, ok := t.SliceAt(pathCampaignFreqs)
	if !ok || len(raw) == 0 {
		return CampaignView{}, fmt.Errorf("%s: missing or not a non-empty list", pathCampaignFreqs)
	}
	freqs := make([]int, 0, len(raw))
	for i, v := range raw {
		switch f := v.(type) {
		case int64:
			freqs = append(freqs, int(f))
		case float64:
			if f != math.Trunc(f) {
				return CampaignView{}, fmt.Errorf("%s[%d]: %v is not a whole MHz value", pathCampaignFreqs, i, f)
			}
			freqs = append(freqs, int(f))
		default:
			return CampaignView{}, fmt.Errorf("%s[%d]: %T is not a frequency", pathCampaignFreqs, i, v)
		}
	}
	return CampaignView{Phantoms: phantoms, FrequenciesMHz: freqs}, nil
}

// EnumerateIdentities expands the campaign cross product into the concrete
// units the runner iterates: phantoms x frequencies x (every scenario x its
// positions x its orientations) for near field, or phantoms x frequencies x
// incident directions x polarizations for far field.
//
// The order is deterministic: campaign lists and far-field lists as
// configured, scenario and position and orientation names sorted. Callers
// may therefore diff enumerations across runs.
func EnumerateIdentities(tree *Tree) ([]Identity, error) {
	if tree == nil {
		panic("EnumerateIdentities: nil tree")
	}
	campaign, err := tree.Campaign()
	if err != nil {
		return nil, err
	}
	kind, err := ParseStudyKind(tree.StringAt(keyStudyType, ""))
	if err != nil {
		return nil, err
	}
	if kind == NearField {
		return enumerateNearField(tree, campaign)
	}
	return enumerateFarField(tree, campaign)
}

func enumerateNearField(tree *Tree, campaign CampaignView) ([]Identity, error) {
	scenarios, ok := tree.MapAt(keyPlacementScenarios)
	if !ok {
		return nil, fmt.Errorf("%s: missing for a near_field campaign", keyPlacementScenarios)
	}

	var ids []Identity
	for _, scenario := range sortedKeys(scenarios) {
		body, _ := scenarios[scenario].(map[string]any)
		positions, _ := body[keyPositions].(map[string]any)
		orientations, _ := body[keyOrientations].(map[string]any)
		for _, phantom := range campaign.Phantoms {
			for _, mhz := range campaign.FrequenciesMHz {
				for _, pos := range sortedKeys(positions) {
					for _, orient := range sortedKeys(orientations) {
						ids = append(ids, Identity{
							Phantom:      phantom,
							FrequencyMHz: mhz,
							Study: NearFieldUnit{
								Scenario:    scenario,
								Position:    pos,
								Orientation: orient,
							},
						})
					}
				}
			}
		}
	}
	return ids, nil
}

func enumerateFarField(tree *Tree, campaign CampaignView) ([]Identity, error) {
	dirs, ok := tree.StringsAt(keyFarFieldSetup + "." + keyEnvironmental + "." + keyIncidentDirections)
	if !ok || len(dirs) == 0 {
		return nil, fmt.Errorf("%s: missing %s list for a far_field campaign", keyFarFieldSetup, keyIncidentDirections)
	}
	pols, ok := tree.StringsAt(keyFarFieldSetup + "." + keyEnvironmental + "." + keyPolarizations)
	if !ok || len(pols) == 0 {
		return nil, fmt.Errorf("%s: missing %s list for a far_field campaign", keyFarFieldSetup, keyPolarizations)
	}

	var ids []Identity
	for _, phantom := range campaign.Phantoms {
		for _, mhz := range campaign.FrequenciesMHz {
			for _, dir := range dirs {
				for _, pol := range pols {
					ids = append(ids, Identity{
						Phantom:      phantom,
						FrequencyMHz: mhz,
						Study:        FarFieldUnit{Direction: dir, Polarization: pol},
					})
				}
			}
		}
	}
	return ids, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
