package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/std"
)

const sampleDocument = `@prefix spdx: <http://spdx.org/rdf/terms#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix : <https://example.com/spdxdocs/sample#> .

:SPDXRef-DOCUMENT a spdx:SpdxDocument ;
    spdx:specVersion "SPDX-2.3" ;
    spdx:name "sample"@en .

:SPDXRef-Package a spdx:SpdxPackage ;
    spdx:name "widget" ;
    spdx:filesAnalyzed "true"^^xsd:boolean ;
    spdx:hasFile :SPDXRef-file1 , :SPDXRef-file2 ;
    spdx:checksum [ a spdx:Checksum ;
        spdx:checksumValue "d6a770ba38583ed4bb4525bd96e50461655d2758" ] .
`

func decode(t *testing.T, src string) *rdf.Graph {
	t.Helper()
	g := rdf.NewGraph()
	require.NoError(t, DecodeTurtle(strings.NewReader(src), g))
	return g
}

func TestDecodeTurtleDocument(t *testing.T) {
	g := decode(t, sampleDocument)
	g.RLock()
	defer g.RUnlock()

	doc := rdf.IRI("https://example.com/spdxdocs/sample#SPDXRef-DOCUMENT")
	pkg := rdf.IRI("https://example.com/spdxdocs/sample#SPDXRef-Package")

	require.True(t, g.Has(rdf.Triple{
		Subject:   doc,
		Predicate: rdf.IRI(std.RdfType),
		Object:    rdf.IRI("http://spdx.org/rdf/terms#SpdxDocument"),
	}))
	require.True(t, g.Has(rdf.Triple{
		Subject:   doc,
		Predicate: rdf.IRI("http://spdx.org/rdf/terms#specVersion"),
		Object:    rdf.StringLiteral("SPDX-2.3"),
	}))

	// Language tag is dropped, value survives as a plain string.
	require.True(t, g.Has(rdf.Triple{
		Subject:   doc,
		Predicate: rdf.IRI("http://spdx.org/rdf/terms#name"),
		Object:    rdf.StringLiteral("sample"),
	}))

	// Comma-separated objects produce one triple each.
	files := g.ForSubjectPredicate(pkg, rdf.IRI("http://spdx.org/rdf/terms#hasFile"))
	require.Len(t, files, 2)

	require.True(t, g.Has(rdf.Triple{
		Subject:   pkg,
		Predicate: rdf.IRI("http://spdx.org/rdf/terms#filesAnalyzed"),
		Object:    rdf.BooleanLiteral(true),
	}))

	// The blank node property list yields an anonymous checksum node.
	checksum, n := g.FirstObject(pkg, rdf.IRI("http://spdx.org/rdf/terms#checksum"))
	require.Equal(t, 1, n)
	_, isBlank := checksum.(rdf.BlankNode)
	require.True(t, isBlank)
	value, _ := g.FirstObject(checksum, rdf.IRI("http://spdx.org/rdf/terms#checksumValue"))
	require.Equal(t, rdf.StringLiteral("d6a770ba38583ed4bb4525bd96e50461655d2758"), value)
}

func TestDecodeCollection(t *testing.T) {
	g := decode(t, `@prefix ex: <http://example.com/> .
ex:list ex:members ( ex:a ex:b ex:c ) .
ex:empty ex:members ( ) .
`)
	g.RLock()
	defer g.RUnlock()

	head, n := g.FirstObject(rdf.IRI("http://example.com/list"), rdf.IRI("http://example.com/members"))
	require.Equal(t, 1, n)

	var members []string
	cell := head
	for {
		if iri, ok := cell.(rdf.IRI); ok && string(iri) == std.RdfNil {
			break
		}
		first, _ := g.FirstObject(cell, rdf.IRI(std.RdfFirst))
		members = append(members, first.Key())
		cell, _ = g.FirstObject(cell, rdf.IRI(std.RdfRest))
	}
	require.Equal(t, []string{"<http://example.com/a", "<http://example.com/b", "<http://example.com/c"}, members)

	// The empty collection is rdf:nil directly.
	empty, _ := g.FirstObject(rdf.IRI("http://example.com/empty"), rdf.IRI("http://example.com/members"))
	require.Equal(t, rdf.IRI(std.RdfNil), empty)
}

func TestDecodeSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"undefined prefix", `ex:s ex:p ex:o .`},
		{"missing dot", `<urn:s> <urn:p> <urn:o>`},
		{"bare predicate", `<urn:s> .`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rdf.NewGraph()
			err := DecodeTurtle(strings.NewReader(tt.src), g)
			require.Error(t, err)
		})
	}
}

func TestNTriplesRoundTrip(t *testing.T) {
	g := decode(t, sampleDocument)

	var buf bytes.Buffer
	require.NoError(t, EncodeNTriples(g, &buf))

	reloaded := rdf.NewGraph()
	require.NoError(t, DecodeNTriples(&buf, reloaded))

	g.RLock()
	reloaded.RLock()
	defer g.RUnlock()
	defer reloaded.RUnlock()
	require.Equal(t, g.Len(), reloaded.Len())
	for _, tr := range g.Triples() {
		require.True(t, reloaded.Has(tr), "missing after round trip: %s", tr)
	}
}

func TestTurtleRoundTrip(t *testing.T) {
	g := decode(t, sampleDocument)
	g.SetDefaultPrefix("https://example.com/spdxdocs/sample")

	var buf bytes.Buffer
	require.NoError(t, EncodeTurtle(g, &buf))

	out := buf.String()
	require.Contains(t, out, "@prefix : <https://example.com/spdxdocs/sample#> .")
	require.Contains(t, out, "@prefix spdx: <http://spdx.org/rdf/terms#> .")

	reloaded := rdf.NewGraph()
	require.NoError(t, DecodeTurtle(strings.NewReader(out), reloaded))

	g.RLock()
	reloaded.RLock()
	defer g.RUnlock()
	defer reloaded.RUnlock()
	require.Equal(t, g.Len(), reloaded.Len())
	for _, tr := range g.Triples() {
		require.True(t, reloaded.Has(tr), "missing after round trip: %s", tr)
	}
}
