// Package session persists per-process campaign telemetry: a profiling
// state file of per-phase wall-clock samples, a progress file of completed
// units, and the retention policy that bounds how many of each accumulate
// in a data directory. Begin ties the three together for a campaign runner:
// retention first, then the new session's artifacts.
//
// Telemetry must never block a campaign. Every failure in this package is a
// logged warning, and a corrupted artifact on disk is replaced with a fresh
// one rather than reported upward.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/exposim/exposim/study"
)

// Artifact naming. The session identifier embeds the creation second so
// filenames sort by age.
const (
	profilePrefix  = "profile_"
	progressPrefix = "progress_"
	artifactExt    = ".json"

	idTimeLayout = "20060102T150405"
)

// DefaultRetainCount bounds how many artifacts of one class a data
// directory holds before the oldest are pruned.
const DefaultRetainCount = 50

// NewID derives the session identifier embedded in every artifact filename,
// e.g. "20260825T143012_p4821". Wall-clock second plus pid keeps concurrent
// processes on the same host from colliding.
func NewID(now time.Time, pid int) string {
	return now.Format(idTimeLayout) + "_p" + strconv.Itoa(pid)
}

// Begin starts one campaign session: each artifact class is pruned down to
// the retention cap, then the session's profiling state and progress
// artifacts are created. retain <= 0 means DefaultRetainCount.
func Begin(dataDir, id string, retain int) (*State, *Progress) {
	PruneArtifacts(dataDir, retain)
	return OpenOrCreate(dataDir, id), NewProgress(dataDir, id)
}

// stateFile is the on-disk shape of profile_<id>.json. Studies maps study
// kind to phase name to duration samples in seconds.
type stateFile struct {
	SessionID string                          `json:"session_id"`
	CreatedAt time.Time                       `json:"created_at"`
	Studies   map[string]map[string][]float64 `json:"studies"`
}

// State accumulates per-phase wall-clock samples for one process session.
// Not safe for concurrent use; the campaign runner owns it.
type State struct {
	path string
	data stateFile
}

// OpenOrCreate opens the profiling state for session id under dataDir,
// creating the directory and the artifact as needed. A prior file for the
// same id is reloaded when it parses; when it does not, a warning is logged
// and a fresh structure takes its place. The initialized artifact is
// flushed immediately so the session is discoverable on disk from the
// start.
func OpenOrCreate(dataDir, id string) *State {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.Warnf("session: create data dir %s: %v", dataDir, err)
	}
	st := &State{path: filepath.Join(dataDir, profilePrefix+id+artifactExt)}

	if blob, err := os.ReadFile(st.path); err == nil {
		var prior stateFile
		jsonErr := json.Unmarshal(blob, &prior)
		if jsonErr == nil && prior.Studies != nil {
			st.data = prior
			return st
		}
		if jsonErr == nil {
			jsonErr = fmt.Errorf("no studies section")
		}
		logrus.Warnf("session: state %s unreadable, starting fresh: %v", st.path, jsonErr)
	}

	st.data = stateFile{
		SessionID: id,
		CreatedAt: time.Now().UTC(),
		Studies: map[string]map[string][]float64{
			string(study.NearField): {},
			string(study.FarField):  {},
		},
	}
	if err := st.Flush(); err != nil {
		logrus.Warnf("session: %v", err)
	}
	return st
}

// RecordPhase appends one duration sample for the named phase. A kind that
// is missing from the state, or that a prior artifact carried as null, gets
// a fresh record. The caller decides when to Flush.
func (st *State) RecordPhase(kind study.StudyKind, phase string, d time.Duration) {
	byPhase := st.data.Studies[string(kind)]
	if byPhase == nil {
		byPhase = map[string][]float64{}
		st.data.Studies[string(kind)] = byPhase
	}
	byPhase[phase] = append(byPhase[phase], d.Seconds())
}

// Flush writes the state atomically: a temp file in the same directory is
// renamed over the artifact, so a crash mid-write never leaves a truncated
// file where the next session expects JSON.
func (st *State) Flush() error {
	blob, err := json.MarshalIndent(&st.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write session state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("replace session state %s: %w", st.path, err)
	}
	return nil
}

// ID returns the session identifier this state belongs to.
func (st *State) ID() string { return st.data.SessionID }

// Path returns the artifact location on disk.
func (st *State) Path() string { return st.path }
