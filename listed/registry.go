// Package listed knows the identifiers published by the SPDX listed
// license registry and the external reference type catalog. The data
// ships embedded so lookups never touch the network.
package listed

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
	"sync"
)

//go:embed licenses.txt
var licenseData []byte

//go:embed exceptions.txt
var exceptionData []byte

// referenceTypes are the locators published under
// http://spdx.org/rdf/references/.
var referenceTypes = map[string]bool{
	"cpe22Type":     true,
	"cpe23Type":     true,
	"advisory":      true,
	"fix":           true,
	"url":           true,
	"swid":          true,
	"maven-central": true,
	"npm":           true,
	"nuget":         true,
	"bower":         true,
	"purl":          true,
	"swh":           true,
	"gitoid":        true,
}

// Registry answers membership questions about externally published
// SPDX identifier sets.
type Registry interface {
	// IsListedLicenseID reports whether id names a listed license,
	// matched exactly.
	IsListedLicenseID(id string) bool

	// IsListedExceptionID reports whether id names a listed license
	// exception, matched exactly.
	IsListedExceptionID(id string) bool

	// CanonicalLicenseID resolves id case-insensitively to the
	// registry's canonical spelling.
	CanonicalLicenseID(id string) (string, bool)

	// IsReferenceType reports whether name is a published external
	// reference type locator.
	IsReferenceType(name string) bool

	// LicenseProperty fetches a property value for a listed license
	// from the registry's own data. Used when a license resource
	// exists by reference only and the graph holds no local value.
	LicenseProperty(id, property string) (string, bool)
}

type registry struct {
	licenses   map[string]bool
	exceptions map[string]bool
	// lower-cased id -> canonical spelling
	folded map[string]string
}

var (
	defaultOnce sync.Once
	defaultReg  *registry
)

// Default returns the registry backed by the embedded identifier
// lists.
func Default() Registry {
	defaultOnce.Do(func() {
		defaultReg = &registry{
			licenses:   readIDs(licenseData),
			exceptions: readIDs(exceptionData),
		}
		defaultReg.folded = make(map[string]string, len(defaultReg.licenses))
		for id := range defaultReg.licenses {
			defaultReg.folded[strings.ToLower(id)] = id
		}
	})
	return defaultReg
}

func readIDs(data []byte) map[string]bool {
	out := map[string]bool{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		out[id] = true
	}
	return out
}

func (r *registry) IsListedLicenseID(id string) bool {
	return r.licenses[id]
}

func (r *registry) IsListedExceptionID(id string) bool {
	return r.exceptions[id]
}

func (r *registry) CanonicalLicenseID(id string) (string, bool) {
	canonical, ok := r.folded[strings.ToLower(id)]
	return canonical, ok
}

func (r *registry) IsReferenceType(name string) bool {
	return referenceTypes[name]
}

// The embedded lists carry identifiers only, so the default registry
// can answer just the identifier property. The ID matches
// case-insensitively and the canonical spelling is returned.
func (r *registry) LicenseProperty(id, property string) (string, bool) {
	if property != "licenseId" {
		return "", false
	}
	canonical, ok := r.folded[strings.ToLower(id)]
	if !ok {
		return "", false
	}
	return canonical, true
}
