package study

// Resolved-tree section names shared by the extractor, the views, and
// campaign enumeration.
const (
	keyStudyType          = "study_type"
	keySimulationParams   = "simulation_parameters"
	keySolverSettings     = "solver_settings"
	keyManualIsolve       = "manual_isolve"
	keyExportMaterials    = "export_material_properties"
	keyGridding           = "gridding"
	keyAntennaConfig      = "antenna_config"
	keyPlacementScenarios = "placement_scenarios"
	keyPositions          = "positions"
	keyOrientations       = "orientations"
	keyBoundingBox        = "bounding_box"
	keyPhantoms           = "phantoms"
	keyFarFieldSetup      = "far_field_setup"
	keyType               = "type"
	keyEnvironmental      = "environmental"
	keyIncidentDirections = "incident_directions"
	keyPolarizations      = "polarizations"
	keyCampaign           = "campaign"
	keyPhantomName        = "phantom_name"
	keyFrequencyMHz       = "frequency_mhz"
)

// Tree is a parsed JSON configuration document.
//
// Raw holds plain parsed values: map[string]any for objects, []any for
// arrays, int64 for integral numbers, float64 otherwise, plus string, bool
// and nil. Once inheritance resolution completes the tree is treated as
// read-only; callers that need to mutate must Clone first.
type Tree struct {
	// Raw is the document root.
	Raw map[string]any
}

// NewTree wraps an already-parsed document root.
func NewTree(root map[string]any) *Tree {
	if root == nil {
		root = map[string]any{}
	}
	return &Tree{Raw: root}
}

// Clone returns a deep copy whose mutation cannot affect the receiver.
func (t *Tree) Clone() *Tree {
	return &Tree{Raw: cloneMap(t.Raw)}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		// Scalars (string, int64, float64, bool, nil) are immutable.
		return x
	}
}
