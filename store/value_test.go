package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/spdxstore/ontology"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

func TestValueAssignability(t *testing.T) {
	schema, err := ontology.Default()
	require.NoError(t, err)

	tests := []struct {
		name string
		v    Value
		cat  spdx.Category
		want bool
	}{
		{"same category", TypedRef{URI: "u", Category: spdx.CategoryFile}, spdx.CategoryFile, true},
		{"subclass", TypedRef{URI: "u", Category: spdx.CategoryListedLicense}, spdx.CategoryAnyLicenseInfo, true},
		{"unrelated", TypedRef{URI: "u", Category: spdx.CategoryChecksum}, spdx.CategoryAnyLicenseInfo, false},
		{"superclass is not narrowable", TypedRef{URI: "u", Category: spdx.CategoryAnyLicenseInfo}, spdx.CategoryListedLicense, false},
		{"scalar string", String("x"), spdx.CategoryAnyLicenseInfo, false},
		{"scalar boolean", Boolean(true), spdx.CategoryAnyLicenseInfo, false},
		{"individual sentinel", Individual{URI: spdx.NoneLicenseIRI}, spdx.CategoryAnyLicenseInfo, false},
		{"external ref to base element", ExternalRef{DocumentURI: "d", ID: "SPDXRef-x"}, spdx.CategoryElement, true},
		{"external ref to narrower class", ExternalRef{DocumentURI: "d", ID: "SPDXRef-x"}, spdx.CategoryPackage, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AssignableTo(tt.cat, schema); got != tt.want {
				t.Errorf("AssignableTo(%v) = %v, want %v", tt.cat, got, tt.want)
			}
		})
	}
}
