package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// UnitRecord is one completed simulation unit in the progress artifact.
type UnitRecord struct {
	Unit        string    `json:"unit"`
	Fingerprint string    `json:"fingerprint"`
	Cached      bool      `json:"cached"`
	CompletedAt time.Time `json:"completed_at"`
}

// progressFile is the on-disk shape of progress_<id>.json.
type progressFile struct {
	SessionID string       `json:"session_id"`
	Units     []UnitRecord `json:"units"`
}

// Progress records per-unit completion for one session. Every Record
// rewrites the artifact so an interrupted campaign still leaves a usable
// file; like all session telemetry, write failures are warnings.
type Progress struct {
	path string
	data progressFile
}

// NewProgress creates the progress artifact for session id under dataDir
// and writes it immediately.
func NewProgress(dataDir, id string) *Progress {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.Warnf("session: create data dir %s: %v", dataDir, err)
	}
	p := &Progress{
		path: filepath.Join(dataDir, progressPrefix+id+artifactExt),
		data: progressFile{SessionID: id, Units: []UnitRecord{}},
	}
	p.flush()
	return p
}

// Record appends one completion and flushes. A zero CompletedAt is stamped
// with the current time.
func (p *Progress) Record(rec UnitRecord) {
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now().UTC()
	}
	p.data.Units = append(p.data.Units, rec)
	p.flush()
}

func (p *Progress) flush() {
	blob, err := json.MarshalIndent(&p.data, "", "  ")
	if err != nil {
		logrus.Warnf("session: marshal progress: %v", err)
		return
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		logrus.Warnf("session: write progress %s: %v", tmp, err)
		return
	}
	if err := os.Rename(tmp, p.path); err != nil {
		logrus.Warnf("session: replace progress %s: %v", p.path, err)
	}
}

// Len reports how many units have been recorded.
func (p *Progress) Len() int { return len(p.data.Units) }

// Path returns the artifact location on disk.
func (p *Progress) Path() string { return p.path }
