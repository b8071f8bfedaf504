package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/std"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("syntax error")

// DecodeTurtle parses Turtle from r and inserts the triples into g.
// Supports the subset the store emits plus the shapes OWL schema
// documents use: prefix/base directives, "a", ";" and "," lists, blank
// node property lists, collections, and typed or language-tagged
// literals. Acquires the graph's write lock for the whole load.
func DecodeTurtle(r io.Reader, g *rdf.Graph) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	p := &parser{
		scan:     newScanner(string(data)),
		graph:    g,
		prefixes: map[string]string{},
	}
	g.Lock()
	defer g.Unlock()
	return p.parse()
}

// DecodeNTriples parses N-Triples from r into g. N-Triples is a strict
// subset of Turtle, so this delegates to the Turtle parser.
func DecodeNTriples(r io.Reader, g *rdf.Graph) error {
	return DecodeTurtle(r, g)
}

type parser struct {
	scan     *scanner
	graph    *rdf.Graph
	prefixes map[string]string
	base     string
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", p.scan.line, ErrSyntax, fmt.Sprintf(format, args...))
}

func (p *parser) parse() error {
	for {
		tok, err := p.scan.peek()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			return nil
		case tokPrefixDirective:
			if err := p.parsePrefix(); err != nil {
				return err
			}
		case tokBaseDirective:
			if err := p.parseBase(); err != nil {
				return err
			}
		default:
			if err := p.parseTriples(); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parsePrefix() error {
	p.scan.next() // consume @prefix
	name, err := p.scan.next()
	if err != nil {
		return err
	}
	if name.kind != tokPNamePrefix {
		return p.errf("expected prefix name, got %q", name.val)
	}
	iri, err := p.scan.next()
	if err != nil {
		return err
	}
	if iri.kind != tokIRI {
		return p.errf("expected IRI after @prefix, got %q", iri.val)
	}
	p.prefixes[name.val] = p.resolve(iri.val)
	return p.expect(tokDot)
}

func (p *parser) parseBase() error {
	p.scan.next() // consume @base
	iri, err := p.scan.next()
	if err != nil {
		return err
	}
	if iri.kind != tokIRI {
		return p.errf("expected IRI after @base, got %q", iri.val)
	}
	p.base = p.resolve(iri.val)
	return p.expect(tokDot)
}

func (p *parser) expect(kind tokenKind) error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	if tok.kind != kind {
		return p.errf("unexpected token %q", tok.val)
	}
	return nil
}

// resolve joins a possibly relative IRI reference against the base.
func (p *parser) resolve(ref string) string {
	if p.base == "" || strings.Contains(ref, "://") || strings.HasPrefix(ref, "urn:") {
		return ref
	}
	return p.base + ref
}

func (p *parser) parseTriples() error {
	subject, err := p.parseSubject()
	if err != nil {
		return err
	}
	if err := p.parsePredicateObjectList(subject); err != nil {
		return err
	}
	return p.expect(tokDot)
}

func (p *parser) parseSubject() (rdf.Term, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIRI:
		return rdf.IRI(p.resolve(tok.val)), nil
	case tokPName:
		return p.expandPName(tok.val)
	case tokBlank:
		return rdf.BlankNode{Label: tok.val}, nil
	case tokLBracket:
		return p.parseBlankNodePropertyList()
	case tokLParen:
		return p.parseCollection()
	default:
		return nil, p.errf("invalid subject %q", tok.val)
	}
}

func (p *parser) parsePredicateObjectList(subject rdf.Term) error {
	for {
		pred, err := p.parsePredicate()
		if err != nil {
			return err
		}
		for {
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.graph.Add(rdf.Triple{Subject: subject, Predicate: pred, Object: object})

			tok, err := p.scan.peek()
			if err != nil {
				return err
			}
			if tok.kind != tokComma {
				break
			}
			p.scan.next()
		}

		tok, err := p.scan.peek()
		if err != nil {
			return err
		}
		if tok.kind != tokSemi {
			return nil
		}
		p.scan.next()
		// A trailing ";" before "." or "]" is legal Turtle.
		tok, err = p.scan.peek()
		if err != nil {
			return err
		}
		if tok.kind == tokDot || tok.kind == tokRBracket {
			return nil
		}
	}
}

func (p *parser) parsePredicate() (rdf.IRI, error) {
	tok, err := p.scan.next()
	if err != nil {
		return "", err
	}
	switch tok.kind {
	case tokA:
		return rdf.IRI(std.RdfType), nil
	case tokIRI:
		return rdf.IRI(p.resolve(tok.val)), nil
	case tokPName:
		term, err := p.expandPName(tok.val)
		if err != nil {
			return "", err
		}
		return term.(rdf.IRI), nil
	default:
		return "", p.errf("invalid predicate %q", tok.val)
	}
}

func (p *parser) parseObject() (rdf.Term, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIRI:
		return rdf.IRI(p.resolve(tok.val)), nil
	case tokPName:
		return p.expandPName(tok.val)
	case tokBlank:
		return rdf.BlankNode{Label: tok.val}, nil
	case tokLBracket:
		return p.parseBlankNodePropertyList()
	case tokLParen:
		return p.parseCollection()
	case tokString:
		return p.parseLiteralTail(tok.val)
	case tokInteger:
		return rdf.Literal{Value: tok.val, Datatype: rdf.IRI(std.XsdInteger)}, nil
	case tokDecimal:
		return rdf.Literal{Value: tok.val, Datatype: rdf.IRI(std.XsdNamespace + "decimal")}, nil
	case tokBoolean:
		return rdf.Literal{Value: tok.val, Datatype: rdf.IRI(std.XsdBoolean)}, nil
	default:
		return nil, p.errf("invalid object %q", tok.val)
	}
}

// parseLiteralTail handles the optional ^^datatype or @lang suffix after
// a quoted string. Language tags are dropped; the store models plain
// strings only.
func (p *parser) parseLiteralTail(value string) (rdf.Term, error) {
	tok, err := p.scan.peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokCaret:
		p.scan.next()
		dt, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch dt.kind {
		case tokIRI:
			return rdf.Literal{Value: value, Datatype: rdf.IRI(p.resolve(dt.val))}, nil
		case tokPName:
			term, err := p.expandPName(dt.val)
			if err != nil {
				return nil, err
			}
			return rdf.Literal{Value: value, Datatype: term.(rdf.IRI)}, nil
		default:
			return nil, p.errf("invalid datatype %q", dt.val)
		}
	case tokLangTag:
		p.scan.next()
		return rdf.StringLiteral(value), nil
	default:
		return rdf.StringLiteral(value), nil
	}
}

// parseBlankNodePropertyList parses "[ predicateObjectList ]" and returns
// the fresh anonymous node.
func (p *parser) parseBlankNodePropertyList() (rdf.Term, error) {
	node := p.graph.NewBlankNode()
	tok, err := p.scan.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokRBracket {
		p.scan.next()
		return node, nil
	}
	if err := p.parsePredicateObjectList(node); err != nil {
		return nil, err
	}
	if err := p.expect(tokRBracket); err != nil {
		return nil, err
	}
	return node, nil
}

// parseCollection parses "( object* )" into rdf:first/rdf:rest cells and
// returns the list head (rdf:nil for the empty collection).
func (p *parser) parseCollection() (rdf.Term, error) {
	var head rdf.Term = rdf.IRI(std.RdfNil)
	var tail rdf.Term
	for {
		tok, err := p.scan.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokRParen {
			p.scan.next()
			return head, nil
		}
		item, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		cell := p.graph.NewBlankNode()
		p.graph.Add(rdf.Triple{Subject: cell, Predicate: rdf.IRI(std.RdfFirst), Object: item})
		p.graph.Add(rdf.Triple{Subject: cell, Predicate: rdf.IRI(std.RdfRest), Object: rdf.IRI(std.RdfNil)})
		if tail == nil {
			head = cell
		} else {
			p.graph.Remove(rdf.Triple{Subject: tail, Predicate: rdf.IRI(std.RdfRest), Object: rdf.IRI(std.RdfNil)})
			p.graph.Add(rdf.Triple{Subject: tail, Predicate: rdf.IRI(std.RdfRest), Object: cell})
		}
		tail = cell
	}
}

func (p *parser) expandPName(pname string) (rdf.Term, error) {
	idx := strings.Index(pname, ":")
	if idx < 0 {
		return nil, p.errf("invalid prefixed name %q", pname)
	}
	prefix, local := pname[:idx], pname[idx+1:]
	ns, ok := p.prefixes[prefix]
	if !ok {
		return nil, p.errf("undefined prefix %q", prefix)
	}
	return rdf.IRI(ns + local), nil
}
