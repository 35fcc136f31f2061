package study

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrConfigCycle reports an extends chain that revisits a file already being
// resolved. Fatal to the caller.
var ErrConfigCycle = errors.New("configuration inheritance cycle")

// extendsKey names the inheritance directive. It is consumed during
// resolution and never appears in a resolved tree.
const extendsKey = "extends"

// Resolver loads a configuration document and applies its inheritance chain,
// producing one fully merged tree.
//
// An extends value that is a bare name (no path separator) resolves against
// ConfigsDir; a relative value containing a separator resolves against the
// extending file's own directory; an absolute value is used as-is.
type Resolver struct {
	// ConfigsDir anchors bare extends targets. Empty means the directory of
	// the file being resolved.
	ConfigsDir string
}

// NewResolver returns a Resolver anchored at configsDir.
func NewResolver(configsDir string) *Resolver {
	return &Resolver{ConfigsDir: configsDir}
}

// Resolve loads path and recursively applies extends, deep-merging each base
// into its child (child wins). Resolution fails fast with ErrConfigNotFound
// when any file in the chain is missing and ErrConfigCycle when the chain
// revisits a file. There is no partial result on failure.
func (r *Resolver) Resolve(path string) (*Tree, error) {
	return r.resolve(path, nil)
}

func (r *Resolver) resolve(path string, stack []string) (*Tree, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %q: %w", path, err)
	}
	for _, seen := range stack {
		if seen == abs {
			chain := append(append([]string{}, stack...), abs)
			return nil, fmt.Errorf("%w: %s (chain: %s)", ErrConfigCycle, path, strings.Join(chain, " -> "))
		}
	}

	child, err := LoadDocument(abs)
	if err != nil {
		return nil, err
	}

	raw, declared := child.Raw[extendsKey]
	if !declared {
		return child, nil
	}
	target, ok := raw.(string)
	if !ok || target == "" {
		return nil, fmt.Errorf("%w: %s: extends must name a file, got %v", ErrConfigMalformed, path, raw)
	}

	basePath := r.targetPath(target, filepath.Dir(abs))
	logrus.Debugf("config %s extends %s", path, basePath)

	base, err := r.resolve(basePath, append(stack, abs))
	if err != nil {
		return nil, err
	}

	// The directive is resolution metadata, not configuration data.
	delete(child.Raw, extendsKey)

	return &Tree{Raw: mergeTrees(base.Raw, child.Raw)}, nil
}

// targetPath locates an extends target relative to the configs directory,
// the extending file, or the filesystem root depending on its shape.
func (r *Resolver) targetPath(name, childDir string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return filepath.Join(childDir, name)
	}
	if r.ConfigsDir != "" {
		return filepath.Join(r.ConfigsDir, name)
	}
	return filepath.Join(childDir, name)
}

// mergeTrees merges base into child semantics-wise: every child key wins, and
// when both sides hold objects at the same key the merge recurses. Scalars
// and arrays are replaced outright, never merged element-wise.
func mergeTrees(base, child map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(child))
	for k, v := range base {
		out[k] = v
	}
	for k, cv := range child {
		if bv, ok := out[k]; ok {
			bm, baseIsTree := bv.(map[string]any)
			cm, childIsTree := cv.(map[string]any)
			if baseIsTree && childIsTree {
				out[k] = mergeTrees(bm, cm)
				continue
			}
		}
		out[k] = cv
	}
	return out
}
