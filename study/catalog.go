package study

import (
	"fmt"
)

// LoadMaterialMapping reads the flat material-name translation document: a
// single JSON object mapping source material names to solver material names.
// No inheritance resolution applies to collaborator documents.
func LoadMaterialMapping(path string) (map[string]string, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string]string, len(doc.Raw))
	for name, v := range doc.Raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: material mapping %s: %q maps to %T, want string", ErrConfigMalformed, path, name, v)
		}
		mapping[name] = s
	}
	return mapping, nil
}

// PhantomCatalogEntry describes one anatomical model known to the
// installation. Raw keeps the full entry for fields the harness does not
// interpret (tissue-group overrides, posture variants).
type PhantomCatalogEntry struct {
	Name   string
	MassKg float64
	Raw    map[string]any
}

// LoadPhantomCatalog reads the installed-phantom catalog: a JSON object
// mapping phantom names to entry objects.
func LoadPhantomCatalog(path string) (map[string]PhantomCatalogEntry, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]PhantomCatalogEntry, len(doc.Raw))
	for name, v := range doc.Raw {
		body, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: phantom catalog %s: entry %q is %T, want object", ErrConfigMalformed, path, name, v)
		}
		entry := PhantomCatalogEntry{Name: name, Raw: body}
		switch m := body["mass_kg"].(type) {
		case int64:
			entry.MassKg = float64(m)
		case float64:
			entry.MassKg = m
		}
		catalog[name] = entry
	}
	return catalog, nil
}

// MissingPhantoms reports which campaign phantoms have no catalog entry,
// preserving campaign order. Used as a preflight check before enumeration.
func MissingPhantoms(catalog map[string]PhantomCatalogEntry, phantoms []string) []string {
	var missing []string
	for _, name := range phantoms {
		if _, ok := catalog[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
