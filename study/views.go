package study

// Leaf paths read by the typed views.
const (
	pathExcitationType     = keySimulationParams + ".excitation_type"
	pathSimTimePeriods     = keySimulationParams + ".sim_time_periods"
	pathTerminationLevelDB = keySimulationParams + ".termination_level_db"
	pathSolverKind         = keySolverSettings + ".solver"
	pathIsolveArgs         = keyManualIsolve + ".args"
)

// View defaults. A resolved tree that says nothing gets a harmonic
// excitation run for 30 periods, terminated at -50 dB, on the automatic
// solver.
const (
	DefaultExcitationType     = "Harmonic"
	DefaultSimTimePeriods     = 30.0
	DefaultTerminationLevelDB = -50.0
	DefaultSolverKind         = "auto"
)

// SimulationParametersView is the typed projection of the
// simulation_parameters section. Absent fields carry the documented
// defaults; consumers never touch the raw tree.
type SimulationParametersView struct {
	ExcitationType     string
	SimTimePeriods     float64
	TerminationLevelDB float64
}

// SolverSettingsView projects the solver_settings, manual_isolve and
// export_material_properties sections.
type SolverSettingsView struct {
	// Kind selects the solver, "auto" unless overridden.
	Kind string
	// ManualIsolve reports whether a manual_isolve override section is
	// present at all; IsolveArgs holds its argument list when given.
	ManualIsolve bool
	IsolveArgs   []string
	// ExportMaterials mirrors the export_material_properties flag.
	ExportMaterials bool
}

// SimulationParameters builds the typed view once after resolution.
func (t *Tree) SimulationParameters() SimulationParametersView {
	return SimulationParametersView{
		ExcitationType:     t.StringAt(pathExcitationType, DefaultExcitationType),
		SimTimePeriods:     t.FloatAt(pathSimTimePeriods, DefaultSimTimePeriods),
		TerminationLevelDB: t.FloatAt(pathTerminationLevelDB, DefaultTerminationLevelDB),
	}
}

// SolverSettings builds the typed view once after resolution.
func (t *Tree) SolverSettings() SolverSettingsView {
	_, manual := t.MapAt(keyManualIsolve)
	args, _ := t.StringsAt(pathIsolveArgs)
	return SolverSettingsView{
		Kind:            t.StringAt(pathSolverKind, DefaultSolverKind),
		ManualIsolve:    manual,
		IsolveArgs:      args,
		ExportMaterials: t.BoolAt(keyExportMaterials, false),
	}
}
