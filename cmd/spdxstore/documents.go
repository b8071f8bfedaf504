package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/spdxstore/ontology"
	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/rdf/codec"
	"github.com/c360studio/spdxstore/store"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
	"github.com/c360studio/spdxstore/vocabulary/std"
)

// storeOptions builds the manager options shared by the subcommands,
// honoring the configured ontology override.
func (a *app) storeOptions() ([]store.Option, error) {
	opts := []store.Option{store.WithLogger(a.logger)}
	if a.cfg.Ontology.Path != "" {
		f, err := os.Open(a.cfg.Ontology.Path)
		if err != nil {
			return nil, fmt.Errorf("open ontology: %w", err)
		}
		defer f.Close()
		schema, err := ontology.LoadFrom(f, a.logger)
		if err != nil {
			return nil, fmt.Errorf("load ontology %s: %w", a.cfg.Ontology.Path, err)
		}
		opts = append(opts, store.WithSchema(schema))
	}
	return opts, nil
}

// expandGlobs resolves doublestar patterns and literal paths into a
// sorted, deduplicated file list.
func expandGlobs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		var matches []string
		if strings.ContainsAny(pattern, "*?[{") {
			var err error
			matches, err = doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", pattern)
			}
		} else {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("input %q: %w", pattern, err)
			}
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// loadGraph decodes one document file. The extension selects the
// decoder: .nt is N-Triples, everything else is treated as Turtle.
func loadGraph(path string) (*rdf.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g := rdf.NewGraph()
	var decodeErr error
	if filepath.Ext(path) == ".nt" {
		decodeErr = codec.DecodeNTriples(f, g)
	} else {
		decodeErr = codec.DecodeTurtle(f, g)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode %s: %w", path, decodeErr)
	}
	return g, nil
}

// documentNamespace finds the namespace of the SpdxDocument subject in
// g, falling back to the configured default when the graph declares no
// document.
func documentNamespace(g *rdf.Graph, fallback string) string {
	g.RLock()
	defer g.RUnlock()

	docType := rdf.IRI(spdx.TypeIRI(spdx.CategoryDocument))
	for _, s := range g.Subjects() {
		iri, ok := s.(rdf.IRI)
		if !ok {
			continue
		}
		obj, _ := g.FirstObject(s, rdf.IRI(std.RdfType))
		if obj != docType {
			continue
		}
		if ns, _, found := strings.Cut(string(iri), "#"); found {
			return ns
		}
	}
	return fallback
}
