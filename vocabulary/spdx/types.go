package spdx

// Category is the abstract SPDX type a resource's type assertion resolves
// to. The string value is the local name of the class inside
// TermsNamespace.
type Category string

// Category constants for every modeled SPDX class.
const (
	// CategoryDocument is the root document class.
	CategoryDocument Category = "SpdxDocument"
	// CategoryElement is the base class of all addressable SPDX elements.
	CategoryElement Category = "SpdxElement"
	// CategoryItem groups packages, files and snippets.
	CategoryItem Category = "SpdxItem"
	// CategoryPackage is a distributable unit of software.
	CategoryPackage Category = "SpdxPackage"
	// CategoryFile is a single file within a package or document.
	CategoryFile Category = "SpdxFile"
	// CategorySnippet is a byte range within a file.
	CategorySnippet Category = "SpdxSnippet"
	// CategoryAnyLicenseInfo is the abstract license class. Concrete
	// values are narrowed to a concrete license category on read.
	CategoryAnyLicenseInfo Category = "AnyLicenseInfo"
	// CategorySimpleLicensingInfo groups licenses with simple metadata.
	CategorySimpleLicensingInfo Category = "SimpleLicensingInfo"
	// CategoryLicense is a fully specified license.
	CategoryLicense Category = "License"
	// CategoryListedLicense is a license defined by the external listed
	// license registry.
	CategoryListedLicense Category = "ListedLicense"
	// CategoryExtractedLicensingInfo is license text extracted from files.
	CategoryExtractedLicensingInfo Category = "ExtractedLicensingInfo"
	// CategoryLicenseException is a listed license exception.
	CategoryLicenseException Category = "LicenseException"
	// CategoryConjunctiveLicenseSet is an AND composition of licenses.
	CategoryConjunctiveLicenseSet Category = "ConjunctiveLicenseSet"
	// CategoryDisjunctiveLicenseSet is an OR composition of licenses.
	CategoryDisjunctiveLicenseSet Category = "DisjunctiveLicenseSet"
	// CategoryChecksum is an algorithm/value pair.
	CategoryChecksum Category = "Checksum"
	// CategoryRelationship links two elements with a typed relationship.
	CategoryRelationship Category = "Relationship"
	// CategoryAnnotation is a reviewer annotation on an element.
	CategoryAnnotation Category = "Annotation"
	// CategoryExternalDocumentRef references another SPDX document.
	CategoryExternalDocumentRef Category = "ExternalDocumentRef"
	// CategoryExternalRef references an external artifact identifier.
	CategoryExternalRef Category = "ExternalRef"
	// CategoryReferenceType names the scheme of an external reference.
	CategoryReferenceType Category = "ReferenceType"
	// CategoryCrossRef is detailed metadata for a license seeAlso URL.
	CategoryCrossRef Category = "CrossRef"
	// CategoryPackageVerificationCode is the package file hash summary.
	CategoryPackageVerificationCode Category = "PackageVerificationCode"
	// CategoryCreationInfo records who/when/how a document was produced.
	CategoryCreationInfo Category = "CreationInfo"
	// CategoryPointer is a byte or line offset into a file.
	CategoryPointer Category = "Pointer"
)

// knownCategories is the closed set of categories the store recognizes.
var knownCategories = map[Category]bool{
	CategoryDocument:                true,
	CategoryElement:                 true,
	CategoryItem:                    true,
	CategoryPackage:                 true,
	CategoryFile:                    true,
	CategorySnippet:                 true,
	CategoryAnyLicenseInfo:          true,
	CategorySimpleLicensingInfo:     true,
	CategoryLicense:                 true,
	CategoryListedLicense:           true,
	CategoryExtractedLicensingInfo:  true,
	CategoryLicenseException:        true,
	CategoryConjunctiveLicenseSet:   true,
	CategoryDisjunctiveLicenseSet:   true,
	CategoryChecksum:                true,
	CategoryRelationship:            true,
	CategoryAnnotation:              true,
	CategoryExternalDocumentRef:     true,
	CategoryExternalRef:             true,
	CategoryReferenceType:           true,
	CategoryCrossRef:                true,
	CategoryPackageVerificationCode: true,
	CategoryCreationInfo:            true,
	CategoryPointer:                 true,
}

// licenseCategories are the categories whose values are narrowed from the
// abstract AnyLicenseInfo class when decoded.
var licenseCategories = map[Category]bool{
	CategoryAnyLicenseInfo:      true,
	CategorySimpleLicensingInfo: true,
	CategoryLicense:             true,
}

// Known reports whether cat is a modeled SPDX category.
func Known(cat Category) bool {
	return knownCategories[cat]
}

// IsLicenseCategory reports whether cat is the abstract license category
// or one of its abstract ancestors.
func IsLicenseCategory(cat Category) bool {
	return licenseCategories[cat]
}

// TypeIRI returns the fully qualified class IRI for a category.
func TypeIRI(cat Category) string {
	return TermsNamespace + string(cat)
}

// CategoryFromIRI resolves a class IRI back to its category. Returns
// false for IRIs outside TermsNamespace or naming an unmodeled class.
func CategoryFromIRI(iri string) (Category, bool) {
	if len(iri) <= len(TermsNamespace) || iri[:len(TermsNamespace)] != TermsNamespace {
		return "", false
	}
	cat := Category(iri[len(TermsNamespace):])
	if !knownCategories[cat] {
		return "", false
	}
	return cat, true
}
