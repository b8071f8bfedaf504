package ontology

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

func loadSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := Load(nil)
	require.NoError(t, err, "embedded ontology must parse")
	return s
}

func TestLoadFromOverride(t *testing.T) {
	src := `@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix spdx: <http://spdx.org/rdf/terms#> .
spdx:Widget a owl:Class .
`
	s, err := LoadFrom(strings.NewReader(src), nil)
	require.NoError(t, err)
	require.True(t, s.HasClass("Widget"))
	require.False(t, s.HasClass("SpdxDocument"))

	_, err = LoadFrom(strings.NewReader("not turtle at all ."), nil)
	require.Error(t, err)
}

func TestDefaultIsSingleton(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	if a != b {
		t.Error("Default returned distinct schemas")
	}
}

func TestPropertyRange(t *testing.T) {
	s := loadSchema(t)

	tests := []struct {
		property string
		want     PrimitiveType
		ok       bool
	}{
		{"name", PrimitiveString, true},
		{"filesAnalyzed", PrimitiveBoolean, true},
		{"offset", PrimitiveInteger, true},
		{"seeAlso", PrimitiveString, true},
		// dateTime has no primitive mapping
		{"annotationDate", "", false},
		// object property ranges are not primitives
		{"licenseConcluded", "", false},
		{"noSuchProperty", "", false},
		// drift rename applies before lookup
		{"licenseInfoFromFiles", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			got, ok := s.PropertyRange(tt.property)
			if ok != tt.ok {
				t.Fatalf("PropertyRange(%q) ok = %v, want %v", tt.property, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("PropertyRange(%q) = %q, want %q", tt.property, got, tt.want)
			}
		})
	}
}

func TestClassRestrictions(t *testing.T) {
	s := loadSchema(t)

	t.Run("inherited from superclass", func(t *testing.T) {
		got, err := s.ClassRestrictions("SpdxPackage", "licenseConcluded")
		require.NoError(t, err)
		require.Contains(t, got, rdf.IRI(spdx.TypeIRI(spdx.CategoryAnyLicenseInfo)))
	})

	t.Run("declared on the class", func(t *testing.T) {
		got, err := s.ClassRestrictions("SpdxDocument", "creationInfo")
		require.NoError(t, err)
		require.Equal(t, []rdf.IRI{rdf.IRI(spdx.TypeIRI(spdx.CategoryCreationInfo))}, got)
	})

	t.Run("union class contributes operands", func(t *testing.T) {
		got, err := s.ClassRestrictions("DescribedUnion", "licenseConcluded")
		require.NoError(t, err)
		require.Contains(t, got, rdf.IRI(spdx.TypeIRI(spdx.CategoryAnyLicenseInfo)))
	})

	t.Run("generic element falls back", func(t *testing.T) {
		got, err := s.ClassRestrictions("GenericSpdxElement", "relationship")
		require.NoError(t, err)
		require.Contains(t, got, rdf.IRI(spdx.TypeIRI(spdx.CategoryRelationship)))
	})

	t.Run("unknown class", func(t *testing.T) {
		_, err := s.ClassRestrictions("Widget", "name")
		require.ErrorIs(t, err, ErrUnknownClass)
	})
}

func TestDataRestrictions(t *testing.T) {
	s := loadSchema(t)

	got, err := s.DataRestrictions("SpdxPackage", "filesAnalyzed")
	require.NoError(t, err)
	require.Equal(t, []rdf.IRI{"http://www.w3.org/2001/XMLSchema#boolean"}, got)

	got, err = s.DataRestrictions("SpdxPackage", "licenseConcluded")
	require.NoError(t, err)
	require.Empty(t, got, "object restriction must not surface as data range")
}

func TestIsList(t *testing.T) {
	s := loadSchema(t)

	tests := []struct {
		class    string
		property string
		want     bool
	}{
		// exact cardinality 1
		{"SpdxDocument", "specVersion", false},
		{"SpdxFile", "licenseConcluded", false},
		// max cardinality 1
		{"SpdxPackage", "packageFileName", false},
		{"SpdxElement", "name", false},
		// minimum-only bounds leave the upper end open
		{"SpdxPackage", "hasFile", true},
		{"SpdxDocument", "describesPackage", true},
		{"License", "seeAlso", true},
		{"ConjunctiveLicenseSet", "member", true},
		// inherited through two levels
		{"ListedLicense", "crossRef", true},
	}
	for _, tt := range tests {
		t.Run(tt.class+"/"+tt.property, func(t *testing.T) {
			got, err := s.IsList(tt.class, tt.property)
			if err != nil {
				t.Fatalf("IsList(%s, %s): %v", tt.class, tt.property, err)
			}
			if got != tt.want {
				t.Errorf("IsList(%s, %s) = %v, want %v", tt.class, tt.property, got, tt.want)
			}
		})
	}

	t.Run("schema gap", func(t *testing.T) {
		_, err := s.IsList("License", "isFsfLibre")
		if !errors.Is(err, ErrSchemaGap) {
			t.Fatalf("want ErrSchemaGap, got %v", err)
		}
	})
}

func TestIsSubClassOf(t *testing.T) {
	s := loadSchema(t)

	sub := rdf.IRI(spdx.TypeIRI(spdx.CategoryListedLicense))
	super := rdf.IRI(spdx.TypeIRI(spdx.CategoryAnyLicenseInfo))
	if !s.IsSubClassOf(sub, super) {
		t.Error("ListedLicense should descend from AnyLicenseInfo")
	}
	if s.IsSubClassOf(rdf.IRI(spdx.TypeIRI(spdx.CategoryChecksum)), super) {
		t.Error("Checksum should not descend from AnyLicenseInfo")
	}
	if !s.IsSubClassOf(super, super) {
		t.Error("a class descends from itself")
	}
}

func TestRenameRoundTrip(t *testing.T) {
	if got := RenameToOntology("licenseInfoFromFiles"); got != "licenseInfoFromFile" {
		t.Errorf("RenameToOntology = %q", got)
	}
	if got := RenameFromOntology("licenseInfoFromFile"); got != "licenseInfoFromFiles" {
		t.Errorf("RenameFromOntology = %q", got)
	}
	if got := RenameToOntology("name"); got != "name" {
		t.Errorf("undrifted name changed: %q", got)
	}
}

func TestIsObjectProperty(t *testing.T) {
	s := loadSchema(t)
	if !s.IsObjectProperty("licenseConcluded") {
		t.Error("licenseConcluded is an object property")
	}
	if s.IsObjectProperty("name") {
		t.Error("name is a datatype property")
	}
}

func TestUnknownPropertyIsHardError(t *testing.T) {
	s := loadSchema(t)

	_, err := s.ClassRestrictions("SpdxPackage", "notAnSpdxProperty")
	require.ErrorIs(t, err, ErrUnknownProperty)

	_, err = s.DataRestrictions("SpdxPackage", "notAnSpdxProperty")
	require.ErrorIs(t, err, ErrUnknownProperty)

	_, err = s.IsList("SpdxPackage", "notAnSpdxProperty")
	require.ErrorIs(t, err, ErrUnknownProperty)

	// A defined property without cardinality stays a recoverable gap.
	_, err = s.IsList("ListedLicense", "isFsfLibre")
	require.ErrorIs(t, err, ErrSchemaGap)
	require.False(t, errors.Is(err, ErrUnknownProperty))
}
