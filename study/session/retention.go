package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Artifact classes, in pruning order.
const (
	ClassProfile  = "profile"
	ClassProgress = "progress"
)

var classPrefixes = map[string]string{
	ClassProfile:  profilePrefix,
	ClassProgress: progressPrefix,
}

// ArtifactInfo identifies one session artifact on disk.
type ArtifactInfo struct {
	Path      string
	Class     string
	SessionID string
}

// ListArtifacts returns every session artifact under dataDir, profile class
// first, oldest first within a class. Age ordering uses the creation
// timestamp embedded in the session id, not mtime: artifacts are appended
// to for the whole run, so mtime tracks the last flush rather than
// creation. A missing directory lists as empty; other read failures are
// warnings.
func ListArtifacts(dataDir string) []ArtifactInfo {
	var all []ArtifactInfo
	for _, class := range []string{ClassProfile, ClassProgress} {
		all = append(all, listClass(dataDir, class)...)
	}
	return all
}

func listClass(dataDir, class string) []ArtifactInfo {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logrus.Warnf("session: list artifacts in %s: %v", dataDir, err)
		}
		return nil
	}
	prefix := classPrefixes[class]
	var infos []ArtifactInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, artifactExt) {
			continue
		}
		infos = append(infos, ArtifactInfo{
			Path:      filepath.Join(dataDir, name),
			Class:     class,
			SessionID: strings.TrimSuffix(strings.TrimPrefix(name, prefix), artifactExt),
		})
	}
	// Session ids start with the creation second in a lexically sortable
	// layout.
	sort.Slice(infos, func(i, j int) bool { return infos[i].SessionID < infos[j].SessionID })
	return infos
}

// PruneArtifacts deletes the oldest artifacts of each class until at most
// keep remain per class, returning how many were removed. keep <= 0 means
// DefaultRetainCount. Begin runs this before creating a new session's
// artifacts; the sessions CLI also exposes it directly. Deletion failures
// are warnings; a file already gone still counts as removed.
func PruneArtifacts(dataDir string, keep int) int {
	if keep <= 0 {
		keep = DefaultRetainCount
	}
	removed := 0
	for _, class := range []string{ClassProfile, ClassProgress} {
		infos := listClass(dataDir, class)
		excess := len(infos) - keep
		for i := 0; i < excess; i++ {
			if err := os.Remove(infos[i].Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logrus.Warnf("session: prune %s: %v", infos[i].Path, err)
				continue
			}
			logrus.Debugf("session: pruned %s", infos[i].Path)
			removed++
		}
	}
	return removed
}
