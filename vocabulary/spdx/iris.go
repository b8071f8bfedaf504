// Package spdx provides the SPDX vocabulary: namespaces, class and
// property IRIs, category tables, and identifier conventions used by the
// store to map logical IDs onto graph nodes.
package spdx

// TermsNamespace is the base IRI prefix for all SPDX ontology terms.
const TermsNamespace = "http://spdx.org/rdf/terms#"

// ListedLicenseNamespace is the canonical namespace for listed licenses
// and exceptions. Listed licenses are referenced under this namespace
// rather than defined in the local document graph.
const ListedLicenseNamespace = "https://spdx.org/licenses/"

// ListedLicenseNamespaceAlt is the legacy http scheme form of the listed
// license namespace. Inconsistently-authored documents use either scheme,
// so resolution tries both.
const ListedLicenseNamespaceAlt = "http://spdx.org/licenses/"

// ReferenceTypeNamespace is the namespace for well-known external
// reference types (cpe23Type, purl, maven-central, ...).
const ReferenceTypeNamespace = "http://spdx.org/rdf/references/"

// Sentinel individual IRIs. These are linked directly rather than created
// as typed resources.
const (
	// NoneIRI is the "none" sentinel: the field is known to have no value.
	NoneIRI = TermsNamespace + "none"

	// NoAssertionIRI is the "no assertion" sentinel: no claim is made
	// about the field's value.
	NoAssertionIRI = TermsNamespace + "noassertion"

	// NoneLicenseIRI is the license-valued form of the none sentinel.
	NoneLicenseIRI = ListedLicenseNamespace + "none"

	// NoAssertionLicenseIRI is the license-valued form of the
	// no-assertion sentinel.
	NoAssertionLicenseIRI = ListedLicenseNamespace + "noassertion"

	// NoneLicenseIRIAlt and NoAssertionLicenseIRIAlt are the legacy
	// http scheme forms of the license sentinels.
	NoneLicenseIRIAlt        = ListedLicenseNamespaceAlt + "none"
	NoAssertionLicenseIRIAlt = ListedLicenseNamespaceAlt + "noassertion"
)

// IsSentinelIRI reports whether iri is one of the none/no-assertion
// individuals in any namespace, license sentinels in either scheme.
func IsSentinelIRI(iri string) bool {
	switch iri {
	case NoneIRI, NoAssertionIRI,
		NoneLicenseIRI, NoAssertionLicenseIRI,
		NoneLicenseIRIAlt, NoAssertionLicenseIRIAlt:
		return true
	}
	return false
}
