// Package codec provides Turtle and N-Triples serialization for the rdf
// graph substrate. It is boundary glue: any triples present at store
// construction are folded into counters and indexes regardless of which
// format produced them.
package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
	"github.com/c360studio/spdxstore/vocabulary/std"
)

// defaultPrefixes returns the standard namespace prefixes for Turtle
// output.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  std.RdfNamespace,
		"rdfs": std.RdfsNamespace,
		"owl":  std.OwlNamespace,
		"xsd":  std.XsdNamespace,
		"spdx": spdx.TermsNamespace,
	}
}

// EncodeNTriples writes every triple of g in N-Triples format. Acquires
// the graph's read lock.
func EncodeNTriples(g *rdf.Graph, w io.Writer) error {
	g.RLock()
	defer g.RUnlock()
	for _, t := range g.Triples() {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return fmt.Errorf("write triple: %w", err)
		}
	}
	return nil
}

// EncodeTurtle writes g in Turtle format, grouped by subject with a
// prefix header. The graph's default prefix, if set, is emitted as the
// empty prefix. Acquires the graph's read lock.
func EncodeTurtle(g *rdf.Graph, w io.Writer) error {
	g.RLock()
	defer g.RUnlock()

	var sb strings.Builder
	prefixes := defaultPrefixes()
	if ns := g.DefaultPrefix(); ns != "" {
		prefixes[""] = ns + "#"
	}

	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, prefixes[prefix]))
	}
	sb.WriteString("\n")

	for _, subject := range g.Subjects() {
		writeSubjectTurtle(&sb, g, subject)
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write turtle: %w", err)
	}
	return nil
}

// writeSubjectTurtle writes one subject block. Type assertions come
// first, abbreviated to "a".
func writeSubjectTurtle(sb *strings.Builder, g *rdf.Graph, subject rdf.Term) {
	triples := g.ForSubject(subject)

	// Split out type assertions so they lead the block.
	var types, rest []rdf.Triple
	for _, t := range triples {
		if t.Predicate == rdf.IRI(std.RdfType) {
			types = append(types, t)
		} else {
			rest = append(rest, t)
		}
	}

	sb.WriteString(subject.String())
	sb.WriteString("\n")

	total := len(types) + len(rest)
	n := 0
	for _, t := range types {
		n++
		sb.WriteString(fmt.Sprintf("    a %s%s\n", t.Object.String(), terminator(n == total)))
	}
	for _, t := range rest {
		n++
		sb.WriteString(fmt.Sprintf("    <%s> %s%s\n", string(t.Predicate), t.Object.String(), terminator(n == total)))
	}
}

func terminator(last bool) string {
	if last {
		return " ."
	}
	return " ;"
}
