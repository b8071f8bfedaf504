// Package std provides W3C standard vocabulary IRIs used by the graph
// substrate, the serialization codecs, and the ontology schema walk.
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - RDF Schema: https://www.w3.org/TR/rdf-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - XML Schema Datatypes: https://www.w3.org/TR/xmlschema11-2/
package std

// RDF core IRIs
const (
	// RdfNamespace is the RDF syntax namespace.
	RdfNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RdfType asserts the class of a resource. Every well-formed store
	// resource carries at least one rdf:type statement.
	RdfType = RdfNamespace + "type"

	// RdfFirst is the head of an RDF collection cell.
	RdfFirst = RdfNamespace + "first"

	// RdfRest is the tail of an RDF collection cell.
	RdfRest = RdfNamespace + "rest"

	// RdfNil terminates an RDF collection.
	RdfNil = RdfNamespace + "nil"
)

// RDF Schema IRIs
const (
	// RdfsNamespace is the RDF Schema namespace.
	RdfsNamespace = "http://www.w3.org/2000/01/rdf-schema#"

	// RdfsSubClassOf links a class to its superclass. The ontology
	// restriction walk follows these edges transitively.
	RdfsSubClassOf = RdfsNamespace + "subClassOf"

	// RdfsRange declares the value range of a property.
	RdfsRange = RdfsNamespace + "range"

	// RdfsSeeAlso references additional information about a resource.
	RdfsSeeAlso = RdfsNamespace + "seeAlso"

	// RdfsLabel provides a human-readable name for a resource.
	RdfsLabel = RdfsNamespace + "label"

	// RdfsComment provides a human-readable description.
	RdfsComment = RdfsNamespace + "comment"
)

// OWL IRIs used by the restriction walk
const (
	// OwlNamespace is the Web Ontology Language namespace.
	OwlNamespace = "http://www.w3.org/2002/07/owl#"

	// OwlClass marks a named class declaration.
	OwlClass = OwlNamespace + "Class"

	// OwlRestriction marks an anonymous restriction node. A restriction
	// contributes to a (class, property) lookup only when its
	// owl:onProperty matches the property.
	OwlRestriction = OwlNamespace + "Restriction"

	// OwlOnProperty names the property a restriction constrains.
	OwlOnProperty = OwlNamespace + "onProperty"

	// OwlUnionOf links a class to the RDF collection of its operands.
	OwlUnionOf = OwlNamespace + "unionOf"

	// OwlOnClass is the class-valued range of a qualified restriction.
	OwlOnClass = OwlNamespace + "onClass"

	// OwlOnDataRange is the data-valued range of a qualified restriction.
	OwlOnDataRange = OwlNamespace + "onDataRange"

	// OwlAllValuesFrom constrains all values of the property.
	OwlAllValuesFrom = OwlNamespace + "allValuesFrom"

	// OwlSomeValuesFrom requires at least one value from the range.
	OwlSomeValuesFrom = OwlNamespace + "someValuesFrom"

	// OwlMinCardinality declares a minimum cardinality.
	OwlMinCardinality = OwlNamespace + "minCardinality"

	// OwlMaxCardinality declares a maximum cardinality.
	OwlMaxCardinality = OwlNamespace + "maxCardinality"

	// OwlCardinality declares an exact cardinality, overriding min/max.
	OwlCardinality = OwlNamespace + "cardinality"

	// OwlMinQualifiedCardinality is the qualified form of minCardinality.
	OwlMinQualifiedCardinality = OwlNamespace + "minQualifiedCardinality"

	// OwlMaxQualifiedCardinality is the qualified form of maxCardinality.
	OwlMaxQualifiedCardinality = OwlNamespace + "maxQualifiedCardinality"

	// OwlQualifiedCardinality is the qualified form of cardinality.
	OwlQualifiedCardinality = OwlNamespace + "qualifiedCardinality"

	// OwlObjectProperty marks a property whose values are resources.
	OwlObjectProperty = OwlNamespace + "ObjectProperty"

	// OwlDatatypeProperty marks a property whose values are literals.
	OwlDatatypeProperty = OwlNamespace + "DatatypeProperty"
)

// XML Schema datatype IRIs
const (
	// XsdNamespace is the XML Schema datatypes namespace.
	XsdNamespace = "http://www.w3.org/2001/XMLSchema#"

	// XsdString is the string datatype.
	XsdString = XsdNamespace + "string"

	// XsdBoolean is the boolean datatype.
	XsdBoolean = XsdNamespace + "boolean"

	// XsdInteger is the arbitrary-size integer datatype.
	XsdInteger = XsdNamespace + "integer"

	// XsdInt is the 32-bit integer datatype.
	XsdInt = XsdNamespace + "int"

	// XsdNonNegativeInteger is the non-negative integer datatype.
	XsdNonNegativeInteger = XsdNamespace + "nonNegativeInteger"

	// XsdAnyURI is the URI reference datatype.
	XsdAnyURI = XsdNamespace + "anyURI"

	// XsdDateTime is the timestamp datatype.
	XsdDateTime = XsdNamespace + "dateTime"
)
