package spdx

import "strings"

// Property local names for the SPDX terms namespace. Properties are
// addressed by local name at the store boundary and expanded to full IRIs
// at the graph boundary.
const (
	// PropSpecVersion is the document's SPDX specification version.
	PropSpecVersion = "specVersion"
	// PropName is the element display name.
	PropName = "name"
	// PropComment is a free-form comment.
	PropComment = "comment"
	// PropCopyrightText is the item copyright text.
	PropCopyrightText = "copyrightText"
	// PropDownloadLocation is the package download location.
	PropDownloadLocation = "downloadLocation"
	// PropPackageFileName is the package archive file name.
	PropPackageFileName = "packageFileName"
	// PropFilesAnalyzed indicates whether package files were analyzed.
	PropFilesAnalyzed = "filesAnalyzed"
	// PropLicenseConcluded is the concluded license of an item.
	PropLicenseConcluded = "licenseConcluded"
	// PropLicenseDeclared is the declared license of a package.
	PropLicenseDeclared = "licenseDeclared"
	// PropLicenseInfoFromFiles lists licenses found in package files.
	PropLicenseInfoFromFiles = "licenseInfoFromFiles"
	// PropLicenseInfoInFile lists licenses found in a single file.
	PropLicenseInfoInFile = "licenseInfoInFile"
	// PropLicenseID is the listed or extracted license identifier.
	PropLicenseID = "licenseId"
	// PropLicenseText is the full license text.
	PropLicenseText = "licenseText"
	// PropLicenseListVersion is the listed license registry version.
	PropLicenseListVersion = "licenseListVersion"
	// PropIsOsiApproved indicates OSI approval of a listed license.
	PropIsOsiApproved = "isOsiApproved"
	// PropIsFsfLibre indicates FSF libre classification.
	PropIsFsfLibre = "isFsfLibre"
	// PropIsDeprecatedLicenseID marks deprecated listed license IDs.
	PropIsDeprecatedLicenseID = "isDeprecatedLicenseId"
	// PropHasFile links a package or document to a contained file.
	PropHasFile = "hasFile"
	// PropRelationship links an element to a relationship node.
	PropRelationship = "relationship"
	// PropRelationshipType names the kind of relationship.
	PropRelationshipType = "relationshipType"
	// PropRelatedElement is the target element of a relationship.
	PropRelatedElement = "relatedSpdxElement"
	// PropAnnotation links an element to an annotation node.
	PropAnnotation = "annotation"
	// PropChecksum links an item to a checksum node.
	PropChecksum = "checksum"
	// PropChecksumValue is the hex digest of a checksum.
	PropChecksumValue = "checksumValue"
	// PropChecksumAlgorithm names the hash algorithm.
	PropChecksumAlgorithm = "algorithm"
	// PropExternalDocumentRef links a document to an external document.
	PropExternalDocumentRef = "externalDocumentRef"
	// PropExternalDocumentID is the DocumentRef- identifier.
	PropExternalDocumentID = "externalDocumentId"
	// PropExternalRef links a package to an external reference.
	PropExternalRef = "externalRef"
	// PropReferenceType names the external reference scheme.
	PropReferenceType = "referenceType"
	// PropReferenceLocator is the external reference locator string.
	PropReferenceLocator = "referenceLocator"
	// PropVersionInfo is the package version.
	PropVersionInfo = "versionInfo"
	// PropSeeAlso lists cross reference URLs for a license.
	PropSeeAlso = "seeAlso"
	// PropCrossRef links a license to a cross reference node.
	PropCrossRef = "crossRef"
	// PropCreationInfo links a document to its creation info node.
	PropCreationInfo = "creationInfo"
	// PropCreated is the document creation timestamp.
	PropCreated = "created"
	// PropCreator identifies a document creator.
	PropCreator = "creator"
	// PropDataLicense is the license of the SPDX document itself.
	PropDataLicense = "dataLicense"
	// PropDescribes links a document to its described elements.
	PropDescribes = "describesPackage"
	// PropFileName is the file path of an SpdxFile.
	PropFileName = "fileName"
	// PropFileType classifies a file's content kind.
	PropFileType = "fileType"
)

// PropDocumentNamespace is the reserved property name: setting it adjusts
// the graph's default namespace prefix rather than writing a triple.
const PropDocumentNamespace = "documentNamespace"

// PropertyIRI expands a property local name to its full IRI in the SPDX
// terms namespace. The rdfs:seeAlso property lives in the RDFS namespace
// in authored data; the ontology rename table reconciles that drift, so
// this expansion is purely mechanical.
func PropertyIRI(name string) string {
	return TermsNamespace + name
}

// PropertyLocalName reduces a property IRI to its local name. Returns
// false for IRIs outside the SPDX terms namespace.
func PropertyLocalName(iri string) (string, bool) {
	if !strings.HasPrefix(iri, TermsNamespace) {
		return "", false
	}
	return iri[len(TermsNamespace):], true
}
