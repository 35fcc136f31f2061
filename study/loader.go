package study

import (
	"errors"
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"
)

var (
	// ErrConfigNotFound reports a named configuration file (top-level or an
	// extends target) that does not exist. Fatal to the caller; no retry.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigMalformed reports a configuration file that exists but does
	// not parse as a JSON object.
	ErrConfigMalformed = errors.New("configuration file malformed")
)

// LoadDocument reads a JSON document from disk into a Tree.
//
// The document top level must be a JSON object. Inheritance ("extends") is
// NOT applied here; use Resolver.Resolve for that. Collaborator documents
// such as material mappings and phantom catalogs are loaded through this
// same path.
func LoadDocument(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigMalformed, path, err)
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: top level is %T, want object", ErrConfigMalformed, path, v)
	}
	return &Tree{Raw: root}, nil
}
