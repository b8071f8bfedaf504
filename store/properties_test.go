package store

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/spdxstore/ontology"
	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

func createPackage(t *testing.T, m *Manager) string {
	t.Helper()
	const id = "SPDXRef-pkg"
	_, err := m.Create(id, spdx.CategoryPackage)
	require.NoError(t, err)
	return id
}

func TestSetValueSingleValueContract(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	require.NoError(t, m.SetValue(id, "name", String("first")))
	require.NoError(t, m.SetValue(id, "name", String("second")))

	v, ok, err := m.GetPropertyValue(id, "name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, String("second"), v)

	n, err := m.CollectionSize(id, "name")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestScalarRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	tests := []struct {
		prop string
		v    Value
	}{
		{"name", String("a package")},
		{"filesAnalyzed", Boolean(true)},
		{"downloadLocation", String("https://example.com/pkg.tar.gz")},
	}
	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			require.NoError(t, m.SetValue(id, tt.prop, tt.v))
			got, ok, err := m.GetPropertyValue(id, tt.prop)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, tt.v, got)
		})
	}
}

func TestBooleanDisambiguation(t *testing.T) {
	m, g := newTestManager(t)
	id := createPackage(t, m)

	// A plain string literal for a boolean-ranged property decodes as
	// a boolean because the schema declares the range.
	node := rdf.IRI(spdx.ElementURI(testNS, id))
	g.Lock()
	g.Add(rdf.Triple{
		Subject:   node,
		Predicate: rdf.IRI(spdx.PropertyIRI(spdx.PropFilesAnalyzed)),
		Object:    rdf.StringLiteral("true"),
	})
	g.Unlock()

	v, ok, err := m.GetPropertyValue(id, "filesAnalyzed")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Boolean(true), v)
}

func TestTypedRefRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	fileURI := spdx.ElementURI(testNS, "SPDXRef-file1")
	ref := TypedRef{URI: fileURI, Category: spdx.CategoryFile}
	require.NoError(t, m.SetValue(id, "hasFile", ref))

	v, ok, err := m.GetPropertyValue(id, "hasFile")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ref, v)

	// Setting the reference created its target.
	if !m.Exists("SPDXRef-file1") {
		t.Error("typed reference target should have been created")
	}
}

func TestExternalRefRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	ext := ExternalRef{DocumentURI: "https://other.example.com/doc2", ID: "SPDXRef-remote"}
	require.NoError(t, m.SetValue(id, "relatedSpdxElement", ext))

	v, ok, err := m.GetPropertyValue(id, "relatedSpdxElement")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ext, v)
}

func TestSentinelDecodesAsIndividual(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	// License sentinels appear in both schemes in authored data.
	for _, uri := range []string{
		spdx.NoAssertionLicenseIRI,
		spdx.NoAssertionLicenseIRIAlt,
		spdx.NoneLicenseIRI,
		spdx.NoneLicenseIRIAlt,
	} {
		sentinel := Individual{URI: uri}
		require.NoError(t, m.SetValue(id, "licenseConcluded", sentinel))

		v, ok, err := m.GetPropertyValue(id, "licenseConcluded")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, sentinel, v, uri)
	}
}

func TestBareListedLicenseURIInferred(t *testing.T) {
	m, g := newTestManager(t)
	id := createPackage(t, m)

	// Authored data may reference a listed license without a local
	// type assertion.
	node := rdf.IRI(spdx.ElementURI(testNS, id))
	g.Lock()
	g.Add(rdf.Triple{
		Subject:   node,
		Predicate: rdf.IRI(spdx.PropertyIRI(spdx.PropLicenseDeclared)),
		Object:    rdf.IRI(spdx.ListedLicenseURI("MIT")),
	})
	g.Unlock()

	v, ok, err := m.GetPropertyValue(id, "licenseDeclared")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, TypedRef{URI: spdx.ListedLicenseURI("MIT"), Category: spdx.CategoryListedLicense}, v)
}

func TestMultipleValuesIsHardError(t *testing.T) {
	m, g := newTestManager(t)
	id := createPackage(t, m)

	node := rdf.IRI(spdx.ElementURI(testNS, id))
	pred := rdf.IRI(spdx.PropertyIRI(spdx.PropName))
	g.Lock()
	g.Add(rdf.Triple{Subject: node, Predicate: pred, Object: rdf.StringLiteral("one")})
	g.Add(rdf.Triple{Subject: node, Predicate: pred, Object: rdf.StringLiteral("two")})
	g.Unlock()

	_, _, err := m.GetPropertyValue(id, "name")
	require.ErrorIs(t, err, ErrMultipleValues)
}

func TestUnsupportedValue(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	err := m.SetValue(id, "name", nil)
	require.ErrorIs(t, err, ErrUnsupportedValueType)

	err = m.SetValue(id, "hasFile", TypedRef{})
	require.ErrorIs(t, err, ErrUnsupportedValueType)
}

func TestDocumentNamespaceIsReserved(t *testing.T) {
	m, g := newTestManager(t)

	// No resource needs to exist; the value lands on the graph's
	// default prefix, not in a triple.
	require.NoError(t, m.SetValue("SPDXRef-DOCUMENT", spdx.PropDocumentNamespace, String(testNS)))
	require.Equal(t, testNS, g.DefaultPrefix())
	require.Equal(t, 0, func() int { g.RLock(); defer g.RUnlock(); return g.Len() }())

	err := m.SetValue("SPDXRef-DOCUMENT", spdx.PropDocumentNamespace, Integer(7))
	require.ErrorIs(t, err, ErrUnsupportedValueType)
}

func TestPropertyValueNames(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	require.NoError(t, m.SetValue(id, "name", String("pkg")))
	require.NoError(t, m.SetValue(id, "filesAnalyzed", Boolean(false)))
	_, err := m.AddValueToCollection(id, "licenseInfoFromFiles",
		TypedRef{URI: spdx.ListedLicenseURI("MIT"), Category: spdx.CategoryListedLicense})
	require.NoError(t, err)

	names, err := m.PropertyValueNames(id)
	require.NoError(t, err)
	// Type assertions are excluded; drifted names come back public.
	require.Equal(t, []string{"filesAnalyzed", "licenseInfoFromFiles", "name"}, names)
}

func TestRemoveProperty(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	require.NoError(t, m.SetValue(id, "name", String("pkg")))
	require.NoError(t, m.RemoveProperty(id, "name"))

	_, ok, err := m.GetPropertyValue(id, "name")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCollectionSetSemantics(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	mit := TypedRef{URI: spdx.ListedLicenseURI("MIT"), Category: spdx.CategoryListedLicense}

	added, err := m.AddValueToCollection(id, "licenseInfoFromFiles", mit)
	require.NoError(t, err)
	require.True(t, added)

	added, err = m.AddValueToCollection(id, "licenseInfoFromFiles", mit)
	require.NoError(t, err)
	require.False(t, added, "duplicate add must report false")

	n, err := m.CollectionSize(id, "licenseInfoFromFiles")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	ok, err := m.CollectionContains(id, "licenseInfoFromFiles", mit)
	require.NoError(t, err)
	require.True(t, ok)

	removed, err := m.RemoveValueFromCollection(id, "licenseInfoFromFiles",
		TypedRef{URI: spdx.ListedLicenseURI("Apache-2.0"), Category: spdx.CategoryListedLicense})
	require.NoError(t, err)
	require.False(t, removed, "removing an absent value must report false")

	removed, err = m.RemoveValueFromCollection(id, "licenseInfoFromFiles", mit)
	require.NoError(t, err)
	require.True(t, removed)

	n, err = m.CollectionSize(id, "licenseInfoFromFiles")
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestValueListAndClear(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	for _, lic := range []string{"MIT", "Apache-2.0"} {
		_, err := m.AddValueToCollection(id, "licenseInfoFromFiles",
			TypedRef{URI: spdx.ListedLicenseURI(lic), Category: spdx.CategoryListedLicense})
		require.NoError(t, err)
	}

	vals, err := m.ValueList(id, "licenseInfoFromFiles")
	require.NoError(t, err)
	require.Len(t, vals, 2)
	for _, v := range vals {
		ref, ok := v.(TypedRef)
		require.True(t, ok)
		require.Equal(t, spdx.CategoryListedLicense, ref.Category)
	}

	require.NoError(t, m.ClearValueCollection(id, "licenseInfoFromFiles"))
	n, err := m.CollectionSize(id, "licenseInfoFromFiles")
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestIsCollectionProperty(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	isList, err := m.IsCollectionProperty(id, "hasFile")
	require.NoError(t, err)
	require.True(t, isList)

	isList, err = m.IsCollectionProperty(id, "name")
	require.NoError(t, err)
	require.False(t, isList)

	// An undefined property must not silently fall back to the
	// stored value count.
	_, err = m.IsCollectionProperty(id, "notAnSpdxProperty")
	require.ErrorIs(t, err, ontology.ErrUnknownProperty)

	_, err = m.IsPropertyValueAssignableTo(id, "notAnSpdxProperty", spdx.CategoryChecksum)
	require.ErrorIs(t, err, ontology.ErrUnknownProperty)
}

func TestAssignabilityFromOntology(t *testing.T) {
	m, _ := newTestManager(t)
	id := createPackage(t, m)

	ok, err := m.IsCollectionMembersAssignableTo(id, "licenseInfoFromFiles", spdx.CategoryAnyLicenseInfo)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.IsCollectionMembersAssignableTo(id, "licenseInfoFromFiles", spdx.CategoryChecksum)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = m.IsPropertyValueAssignableTo(id, "licenseConcluded", spdx.CategoryAnyLicenseInfo)
	require.NoError(t, err)
	require.True(t, ok)

	// A literal-ranged property holds no class instances.
	ok, err = m.IsPropertyValueAssignableTo(id, "filesAnalyzed", spdx.CategoryAnyLicenseInfo)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAssignabilityGapFallback(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	g := rdf.NewGraph()
	m, err := NewManager(testNS, g, WithLogger(logger))
	require.NoError(t, err)
	defer m.Close()

	const id = "LicenseRef-custom"
	_, err = m.Create(id, spdx.CategoryExtractedLicensingInfo)
	require.NoError(t, err)

	// isFsfLibre has no restriction for this class: the check falls
	// back to inspecting stored values and still answers.
	ok, err := m.IsPropertyValueAssignableTo(id, "isFsfLibre", spdx.CategoryAnyLicenseInfo)
	require.NoError(t, err)
	require.True(t, ok, "absent value is vacuously assignable")

	if !strings.Contains(logBuf.String(), "no restriction") {
		t.Error("expected the fallback to be logged")
	}

	require.NoError(t, m.SetValue(id, "isFsfLibre", Boolean(true)))
	ok, err = m.IsPropertyValueAssignableTo(id, "isFsfLibre", spdx.CategoryAnyLicenseInfo)
	require.NoError(t, err)
	require.False(t, ok, "a stored boolean is not a license instance")
}

func TestAnonymousResourceLifecycle(t *testing.T) {
	m, _ := newTestManager(t)

	anon, err := m.NextID(IDAnonymous)
	require.NoError(t, err)

	_, err = m.Create(anon, spdx.CategoryChecksum)
	require.NoError(t, err)
	require.True(t, m.Exists(anon))

	require.NoError(t, m.SetValue(anon, "checksumValue", String("d6a770ba38583ed4bb")))
	v, ok, err := m.GetPropertyValue(anon, "checksumValue")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, String("d6a770ba38583ed4bb"), v)

	// Link it from a package and read the link back.
	pkg := createPackage(t, m)
	_, err = m.AddValueToCollection(pkg, "checksum", TypedRef{URI: anon, Category: spdx.CategoryChecksum})
	require.NoError(t, err)

	vals, err := m.ValueList(pkg, "checksum")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	require.Equal(t, TypedRef{URI: anon, Category: spdx.CategoryChecksum}, vals[0])

	require.NoError(t, m.Delete(anon))
	require.False(t, m.Exists(anon))
}

func TestDeleteLeavesObjectReferences(t *testing.T) {
	m, _ := newTestManager(t)
	pkg := createPackage(t, m)

	fileURI := spdx.ElementURI(testNS, "SPDXRef-file1")
	require.NoError(t, m.SetValue(pkg, "hasFile", TypedRef{URI: fileURI, Category: spdx.CategoryFile}))

	require.NoError(t, m.Delete("SPDXRef-file1"))
	require.False(t, m.Exists("SPDXRef-file1"))

	// The dangling link from the package remains the caller's concern.
	n, err := m.CollectionSize(pkg, "hasFile")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
