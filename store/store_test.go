package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

func TestStoreRouting(t *testing.T) {
	s := New()
	defer s.Close()

	const doc1 = "https://example.com/spdx/a"
	const doc2 = "https://example.com/spdx/b"

	// Reads never construct managers.
	_, err := s.Manager(doc1, false)
	require.ErrorIs(t, err, ErrUnknownDocument)
	require.False(t, s.Exists(doc1, "SPDXRef-x"))

	// Writes construct lazily and route per namespace.
	require.NoError(t, s.Create(doc1, "SPDXRef-x", spdx.CategoryPackage))
	require.NoError(t, s.Create(doc2, "SPDXRef-x", spdx.CategoryFile))

	require.True(t, s.Exists(doc1, "SPDXRef-x"))
	require.True(t, s.Exists(doc2, "SPDXRef-x"))
	require.Equal(t, []string{doc1, doc2}, s.Namespaces())

	m1, err := s.Manager(doc1, false)
	require.NoError(t, err)
	tv, ok := m1.TypedValue("SPDXRef-x")
	require.True(t, ok)
	require.Equal(t, spdx.CategoryPackage, tv.Category)

	// Same URI twice yields the same manager.
	again, err := s.Manager(doc1, true)
	require.NoError(t, err)
	require.Same(t, m1, again)
}

func TestStoreDelegation(t *testing.T) {
	s := New()
	defer s.Close()

	const doc = "https://example.com/spdx/c"
	require.NoError(t, s.Create(doc, "SPDXRef-p", spdx.CategoryPackage))
	require.NoError(t, s.SetValue(doc, "SPDXRef-p", "name", String("pkg")))

	v, ok, err := s.GetPropertyValue(doc, "SPDXRef-p", "name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, String("pkg"), v)

	id, err := s.NextID(doc, IDSPDXRef)
	require.NoError(t, err)
	require.Equal(t, "SPDXRef-gnrtd0", id)

	require.NoError(t, s.Delete(doc, "SPDXRef-p"))
	require.False(t, s.Exists(doc, "SPDXRef-p"))
}

func TestStoreAttachGraph(t *testing.T) {
	s := New()
	defer s.Close()

	const doc = "https://example.com/spdx/loaded"
	g := rdf.NewGraph()
	node := rdf.IRI(spdx.ElementURI(doc, "SPDXRef-gnrtd5"))
	g.Lock()
	g.Add(rdf.Triple{
		Subject:   node,
		Predicate: rdf.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"),
		Object:    rdf.IRI(spdx.TypeIRI(spdx.CategoryPackage)),
	})
	g.Unlock()

	m, err := s.AttachGraph(doc, g)
	require.NoError(t, err)

	// Bootstrap folded the loaded content into the counter.
	id, err := m.NextID(IDSPDXRef)
	require.NoError(t, err)
	require.Equal(t, "SPDXRef-gnrtd6", id)

	_, err = s.AttachGraph(doc, rdf.NewGraph())
	require.Error(t, err, "second attach for the same document must fail")

	got, ok := s.Graph(doc)
	require.True(t, ok)
	require.Same(t, g, got)
}
