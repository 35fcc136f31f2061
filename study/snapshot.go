package study

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingIdentityKey reports an identity that references a scenario,
// position, orientation, direction or polarization absent from the resolved
// configuration. Raised only in MissingKeyError mode.
var ErrMissingIdentityKey = errors.New("identity key not present in configuration")

// MissingKeyMode controls what Extract does when an identity references a
// key the configuration does not define.
type MissingKeyMode int

const (
	// MissingKeyError fails extraction, naming the absent key. Two
	// different identities that are both missing from the configuration
	// would otherwise collide on an under-specified snapshot, so this is
	// the default.
	MissingKeyError MissingKeyMode = iota
	// MissingKeyOmit silently drops the absent portion from the snapshot,
	// the historical behavior for partially specified campaigns.
	MissingKeyOmit
)

// globalKeys are copied into every snapshot verbatim. They affect every unit
// identically, so a change to any of them must re-key the whole campaign.
var globalKeys = []string{
	keyStudyType,
	keySimulationParams,
	keySolverSettings,
	keyManualIsolve,
	keyExportMaterials,
}

// Snapshot is the minimal configuration subset that is causally sufficient
// for one simulation unit: it changes if and only if the unit's numerical
// outcome would. Where sufficiency and minimality conflict, sufficiency wins.
//
// Snapshots share subtrees with the resolved tree they were extracted from;
// both are read-only.
type Snapshot struct {
	// Raw is the snapshot root, shaped like a reduced configuration tree.
	Raw map[string]any
}

// Extractor narrows a resolved configuration tree to per-unit snapshots.
// The zero value is a strict extractor.
type Extractor struct {
	MissingKeys MissingKeyMode
}

// BuildSimulationConfig extracts the minimal simulation config for one unit
// using the default strict extractor. This is the entry point the campaign
// runner calls before consulting the result store.
func BuildSimulationConfig(tree *Tree, id Identity) (*Snapshot, error) {
	return Extractor{}.Extract(tree, id)
}

// Extract builds the surgical snapshot for id.
//
// Policy by section of the resolved tree:
//   - globals (study_type, simulation_parameters, solver_settings,
//     manual_isolve, export_material_properties): copied verbatim when
//     present
//   - gridding: frequency-keyed entries narrowed to the identity's
//     frequency, non-numeric siblings copied verbatim
//   - near field: antenna_config narrowed to the one frequency entry; one
//     scenario with one position, one orientation and the scenario bounding
//     box; the phantom definition (empty object when none is configured)
//   - far field: far_field_setup reduced to type plus an environmental block
//     whose direction and polarization lists hold only the requested values;
//     the phantom definition only when non-empty
//
// The phantom name and frequency are embedded directly so they key the
// fingerprint even where no map happens to be indexed by them. A frequency
// with no matching entry drops that entry, never an error in either mode.
func (e Extractor) Extract(tree *Tree, id Identity) (*Snapshot, error) {
	if tree == nil {
		panic("Extractor.Extract: nil tree")
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if declared := tree.StringAt(keyStudyType, string(id.Kind())); declared != string(id.Kind()) {
		return nil, fmt.Errorf("identity is %s but configuration declares study_type %q", id.Kind(), declared)
	}

	snap := map[string]any{
		keyPhantomName:  id.Phantom,
		keyFrequencyMHz: int64(id.FrequencyMHz),
	}
	for _, key := range globalKeys {
		if v, ok := tree.Raw[key]; ok {
			snap[key] = v
		}
	}
	if block, ok := tree.MapAt(keyGridding); ok {
		snap[keyGridding] = narrowFrequencyEntries(block, id.FrequencyMHz)
	}

	var err error
	switch u := id.Study.(type) {
	case NearFieldUnit:
		err = e.extractNearField(tree, id, u, snap)
	case FarFieldUnit:
		err = e.extractFarField(tree, id, u, snap)
	default:
		panic(fmt.Sprintf("Extractor.Extract: unhandled study identity %T", id.Study))
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{Raw: snap}, nil
}

func (e Extractor) extractNearField(tree *Tree, id Identity, u NearFieldUnit, snap map[string]any) error {
	strict := e.MissingKeys == MissingKeyError

	if block, ok := tree.MapAt(keyAntennaConfig); ok {
		snap[keyAntennaConfig] = narrowFrequencyEntries(block, id.FrequencyMHz)
	}

	scenarios, _ := tree.MapAt(keyPlacementScenarios)
	scenario, ok := scenarios[u.Scenario].(map[string]any)
	switch {
	case ok:
		reduced := make(map[string]any, 3)

		positions, _ := scenario[keyPositions].(map[string]any)
		if pos, found := positions[u.Position]; found {
			reduced[keyPositions] = map[string]any{u.Position: pos}
		} else if strict {
			return fmt.Errorf("%w: position %q in scenario %q", ErrMissingIdentityKey, u.Position, u.Scenario)
		}

		orientations, _ := scenario[keyOrientations].(map[string]any)
		if orient, found := orientations[u.Orientation]; found {
			reduced[keyOrientations] = map[string]any{u.Orientation: orient}
		} else if strict {
			return fmt.Errorf("%w: orientation %q in scenario %q", ErrMissingIdentityKey, u.Orientation, u.Scenario)
		}

		bb, found := scenario[keyBoundingBox]
		if !found {
			bb = "default"
		}
		reduced[keyBoundingBox] = bb

		snap[keyPlacementScenarios] = map[string]any{u.Scenario: reduced}
	case strict:
		return fmt.Errorf("%w: placement scenario %q", ErrMissingIdentityKey, u.Scenario)
	}

	// A phantom with no explicit definition embeds as an empty object; that
	// is policy in both modes, not a missing key.
	defs, _ := tree.MapAt(keyPhantoms)
	def, found := defs[id.Phantom]
	if !found {
		def = map[string]any{}
	}
	snap[keyPhantoms] = map[string]any{id.Phantom: def}
	return nil
}

func (e Extractor) extractFarField(tree *Tree, id Identity, u FarFieldUnit, snap map[string]any) error {
	strict := e.MissingKeys == MissingKeyError

	setup, ok := tree.MapAt(keyFarFieldSetup)
	if !ok {
		if strict {
			return fmt.Errorf("%w: far_field_setup for %s", ErrMissingIdentityKey, u.label())
		}
		embedFarFieldPhantom(tree, id, snap)
		return nil
	}

	reduced := map[string]any{}
	if typ, found := setup[keyType]; found {
		reduced[keyType] = typ
	}

	if env, found := setup[keyEnvironmental].(map[string]any); found {
		envReduced := make(map[string]any, len(env))
		for k, v := range env {
			envReduced[k] = v
		}
		dirs, present, err := narrowNameList(env, keyIncidentDirections, u.Direction, strict)
		if err != nil {
			return err
		}
		if present {
			envReduced[keyIncidentDirections] = dirs
		}
		pols, present, err := narrowNameList(env, keyPolarizations, u.Polarization, strict)
		if err != nil {
			return err
		}
		if present {
			envReduced[keyPolarizations] = pols
		}
		reduced[keyEnvironmental] = envReduced
	} else if strict {
		return fmt.Errorf("%w: environmental block for %s", ErrMissingIdentityKey, u.label())
	}

	snap[keyFarFieldSetup] = reduced
	embedFarFieldPhantom(tree, id, snap)
	return nil
}

// embedFarFieldPhantom carries the phantom definition into a far-field
// snapshot only when one is explicitly configured and non-empty.
func embedFarFieldPhantom(tree *Tree, id Identity, snap map[string]any) {
	defs, _ := tree.MapAt(keyPhantoms)
	def, ok := defs[id.Phantom]
	if !ok {
		return
	}
	if m, isMap := def.(map[string]any); isMap && len(m) == 0 {
		return
	}
	snap[keyPhantoms] = map[string]any{id.Phantom: def}
}

// narrowNameList reduces the named string list to the single requested
// value. When the list exists but the value does not, the narrowed list is
// empty (strict mode errors instead); when the list itself is absent,
// present is false.
func narrowNameList(env map[string]any, key, want string, strict bool) (narrowed []any, present bool, err error) {
	raw, ok := env[key].([]any)
	if !ok {
		if strict {
			return nil, false, fmt.Errorf("%w: %s list", ErrMissingIdentityKey, key)
		}
		return nil, false, nil
	}
	for _, v := range raw {
		if s, ok := v.(string); ok && s == want {
			return []any{want}, true, nil
		}
	}
	if strict {
		return nil, false, fmt.Errorf("%w: %q in %s", ErrMissingIdentityKey, want, key)
	}
	return []any{}, true, nil
}

// narrowFrequencyEntries keeps the one frequency-keyed entry matching mhz
// plus every non-numeric sibling. Non-matching frequency keys are dropped,
// never defaulted.
func narrowFrequencyEntries(block map[string]any, mhz int) map[string]any {
	out := make(map[string]any, len(block))
	for k, v := range block {
		f, numeric := numericKey(k)
		if !numeric {
			out[k] = v
			continue
		}
		if f == float64(mhz) {
			out[k] = v
		}
	}
	return out
}

// numericKey parses frequency map keys, accepting both "700" and "700.0".
func numericKey(k string) (float64, bool) {
	f, err := strconv.ParseFloat(k, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
