package spdx

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Logical ID prefix families. IDs are opaque strings at the store
// boundary; the prefix decides which namespace and counter they belong to.
const (
	// PrefixSPDXRef marks document-local element IDs.
	PrefixSPDXRef = "SPDXRef-"
	// PrefixLicenseRef marks locally defined license IDs.
	PrefixLicenseRef = "LicenseRef-"
	// PrefixDocumentRef marks external document reference IDs.
	PrefixDocumentRef = "DocumentRef-"
	// AnonIDPrefix wraps a graph-local anonymous node label. Anonymous
	// IDs have no stable cross-session meaning.
	AnonIDPrefix = "__anon__"
)

// generatedInfix separates a generated ID's prefix from its counter
// suffix. Only IDs bearing this infix participate in counter bootstrap.
const generatedInfix = "gnrtd"

// Generated-counter ID patterns, one per counter family.
var (
	// GeneratedSPDXRefPattern matches generated element refs.
	GeneratedSPDXRefPattern = regexp.MustCompile(`^SPDXRef-gnrtd(\d+)$`)
	// GeneratedLicenseRefPattern matches generated license refs.
	GeneratedLicenseRefPattern = regexp.MustCompile(`^LicenseRef-gnrtd(\d+)$`)
	// GeneratedDocumentRefPattern matches generated document refs.
	GeneratedDocumentRefPattern = regexp.MustCompile(`^DocumentRef-gnrtd(\d+)$`)
)

// GeneratedSPDXRef formats a generated element ref for counter value n.
func GeneratedSPDXRef(n int) string {
	return PrefixSPDXRef + generatedInfix + strconv.Itoa(n)
}

// GeneratedLicenseRef formats a generated license ref for counter value n.
func GeneratedLicenseRef(n int) string {
	return PrefixLicenseRef + generatedInfix + strconv.Itoa(n)
}

// GeneratedDocumentRef formats a generated document ref for counter value n.
func GeneratedDocumentRef(n int) string {
	return PrefixDocumentRef + generatedInfix + strconv.Itoa(n)
}

// AnonID wraps a blank node label in the anonymous ID family.
func AnonID(label string) string {
	return AnonIDPrefix + label
}

// IsAnonID reports whether id belongs to the anonymous family.
func IsAnonID(id string) bool {
	return strings.HasPrefix(id, AnonIDPrefix)
}

// AnonLabel unwraps the blank node label from an anonymous ID.
func AnonLabel(id string) string {
	return strings.TrimPrefix(id, AnonIDPrefix)
}

// ElementURI computes the document-local named node URI for a logical ID:
// documentNamespace + "#" + percent-encoded id.
func ElementURI(documentNamespace, id string) string {
	return documentNamespace + "#" + url.PathEscape(id)
}

// IDFromElementURI inverts ElementURI. Returns false when uri is not
// under the given document namespace.
func IDFromElementURI(documentNamespace, uri string) (string, bool) {
	prefix := documentNamespace + "#"
	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	id, err := url.PathUnescape(uri[len(prefix):])
	if err != nil {
		return "", false
	}
	return id, true
}

// ListedLicenseURI computes the canonical listed-license URI for an ID.
func ListedLicenseURI(id string) string {
	return ListedLicenseNamespace + url.PathEscape(id)
}

// ListedLicenseURIAlt computes the legacy http scheme form.
func ListedLicenseURIAlt(id string) string {
	return ListedLicenseNamespaceAlt + url.PathEscape(id)
}

// InListedLicenseNamespace reports whether uri falls under either scheme
// of the listed license namespace.
func InListedLicenseNamespace(uri string) bool {
	return strings.HasPrefix(uri, ListedLicenseNamespace) ||
		strings.HasPrefix(uri, ListedLicenseNamespaceAlt)
}

// ListedLicenseIDFromURI extracts the license ID from a listed-license
// URI in either scheme.
func ListedLicenseIDFromURI(uri string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(uri, ListedLicenseNamespace):
		rest = uri[len(ListedLicenseNamespace):]
	case strings.HasPrefix(uri, ListedLicenseNamespaceAlt):
		rest = uri[len(ListedLicenseNamespaceAlt):]
	default:
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

// externalElementPattern matches a URI addressing an SPDX element in some
// other document's namespace.
var externalElementPattern = regexp.MustCompile(`^(.+)#(SPDXRef-.+)$`)

// ParseExternalElementURI splits a cross-document element URI into its
// document namespace and element ID. Returns false for URIs inside the
// given local namespace or not matching the external element shape.
func ParseExternalElementURI(localNamespace, uri string) (docNamespace, id string, ok bool) {
	m := externalElementPattern.FindStringSubmatch(uri)
	if m == nil || m[1] == localNamespace {
		return "", "", false
	}
	unescaped, err := url.PathUnescape(m[2])
	if err != nil {
		return "", "", false
	}
	return m[1], unescaped, true
}
