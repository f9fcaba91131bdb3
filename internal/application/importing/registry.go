package importing

import (
	"fmt"
	"sort"
)

// Registry maps entity names used in URLs and CLI flags to importers.
type Registry struct {
	importers map[string]Importer
}

func NewRegistry(importers ...Importer) *Registry {
	r := &Registry{importers: make(map[string]Importer, len(importers))}
	for _, imp := range importers {
		r.importers[imp.Entity()] = imp
	}
	return r
}

func (r *Registry) Get(entity string) (Importer, error) {
	imp, ok := r.importers[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	return imp, nil
}

func (r *Registry) Entities() []string {
	out := make([]string, 0, len(r.importers))
	for name := range r.importers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
