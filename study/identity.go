package study

import (
	"errors"
	"fmt"
)

// StudyKind selects between the two campaign types, which differ in how a
// single simulation unit is identified.
type StudyKind string

const (
	// NearField campaigns place a device antenna near the phantom; units are
	// identified by placement scenario, position and orientation.
	NearField StudyKind = "near_field"
	// FarField campaigns expose the phantom to incident plane waves; units
	// are identified by direction and polarization.
	FarField StudyKind = "far_field"
)

// ParseStudyKind validates a study_type string from configuration.
func ParseStudyKind(s string) (StudyKind, error) {
	switch StudyKind(s) {
	case NearField, FarField:
		return StudyKind(s), nil
	}
	return "", fmt.Errorf("unknown study type %q (want %q or %q)", s, NearField, FarField)
}

// StudyIdentity is the study-specific part of a simulation unit's identity.
// Exactly two implementations exist: NearFieldUnit and FarFieldUnit. The
// extractor dispatches on the concrete type.
type StudyIdentity interface {
	kind() StudyKind
	label() string
	validate() error
}

// NearFieldUnit names one device placement within a near-field campaign.
type NearFieldUnit struct {
	Scenario    string // placement scenario name, e.g. "front_of_eyes"
	Position    string // named position within the scenario
	Orientation string // named orientation within the scenario
}

func (u NearFieldUnit) kind() StudyKind { return NearField }

func (u NearFieldUnit) label() string {
	return u.Scenario + "/" + u.Position + "/" + u.Orientation
}

func (u NearFieldUnit) validate() error {
	if u.Scenario == "" || u.Position == "" || u.Orientation == "" {
		return errors.New("near-field identity requires scenario, position and orientation")
	}
	return nil
}

// FarFieldUnit names one plane-wave excitation within a far-field campaign.
type FarFieldUnit struct {
	Direction    string // incident direction name, e.g. "x+"
	Polarization string // polarization name, e.g. "theta"
}

func (u FarFieldUnit) kind() StudyKind { return FarField }

func (u FarFieldUnit) label() string {
	return u.Direction + "/" + u.Polarization
}

func (u FarFieldUnit) validate() error {
	if u.Direction == "" || u.Polarization == "" {
		return errors.New("far-field identity requires direction and polarization")
	}
	return nil
}

// Identity names one concrete unit of simulation work. Two identities with
// different field values are independently cacheable; the identity fully
// determines which subset of the campaign configuration matters to the unit.
type Identity struct {
	Phantom      string        // anatomical model name, e.g. "duke"
	FrequencyMHz int           // excitation frequency in MHz
	Study        StudyIdentity // NearFieldUnit or FarFieldUnit
}

// Kind reports which campaign type the identity belongs to.
func (id Identity) Kind() StudyKind {
	if id.Study == nil {
		return ""
	}
	return id.Study.kind()
}

// Validate checks that every identity field is populated.
func (id Identity) Validate() error {
	if id.Phantom == "" {
		return errors.New("identity requires a phantom name")
	}
	if id.FrequencyMHz <= 0 {
		return fmt.Errorf("identity requires a positive frequency, got %d", id.FrequencyMHz)
	}
	if id.Study == nil {
		return errors.New("identity requires a study-specific part")
	}
	return id.Study.validate()
}

// String renders the identity in log/progress form, e.g.
// "near_field duke 700MHz front_of_eyes/p1/o1".
func (id Identity) String() string {
	if id.Study == nil {
		return fmt.Sprintf("%s %dMHz", id.Phantom, id.FrequencyMHz)
	}
	return fmt.Sprintf("%s %s %dMHz %s", id.Kind(), id.Phantom, id.FrequencyMHz, id.Study.label())
}
