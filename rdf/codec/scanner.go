package codec

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI
	tokPName       // prefix:local
	tokPNamePrefix // prefix (from "prefix:" with empty local)
	tokBlank       // _:label
	tokString
	tokInteger
	tokDecimal
	tokBoolean
	tokA
	tokDot
	tokSemi
	tokComma
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokCaret   // ^^
	tokLangTag // @lang
	tokPrefixDirective
	tokBaseDirective
)

type token struct {
	kind tokenKind
	val  string
}

type scanner struct {
	src    []rune
	pos    int
	line   int
	peeked *token
}

func newScanner(src string) *scanner {
	return &scanner{src: []rune(src), line: 1}
}

func (s *scanner) peek() (token, error) {
	if s.peeked == nil {
		tok, err := s.scanToken()
		if err != nil {
			return token{}, err
		}
		s.peeked = &tok
	}
	return *s.peeked, nil
}

func (s *scanner) next() (token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.scanToken()
}

func (s *scanner) scanToken() (token, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return token{kind: tokEOF}, nil
	}

	c := s.src[s.pos]
	switch {
	case c == '<':
		return s.scanIRI()
	case c == '"':
		return s.scanString()
	case c == '_':
		return s.scanBlank()
	case c == '@':
		return s.scanAt()
	case c == '.':
		// A dot can also start a decimal; statement dots are followed
		// by whitespace or EOF in practice.
		s.pos++
		return token{kind: tokDot, val: "."}, nil
	case c == ';':
		s.pos++
		return token{kind: tokSemi, val: ";"}, nil
	case c == ',':
		s.pos++
		return token{kind: tokComma, val: ","}, nil
	case c == '[':
		s.pos++
		return token{kind: tokLBracket, val: "["}, nil
	case c == ']':
		s.pos++
		return token{kind: tokRBracket, val: "]"}, nil
	case c == '(':
		s.pos++
		return token{kind: tokLParen, val: "("}, nil
	case c == ')':
		s.pos++
		return token{kind: tokRParen, val: ")"}, nil
	case c == '^':
		if s.pos+1 < len(s.src) && s.src[s.pos+1] == '^' {
			s.pos += 2
			return token{kind: tokCaret, val: "^^"}, nil
		}
		return token{}, fmt.Errorf("line %d: %w: stray '^'", s.line, ErrSyntax)
	case c == '+' || c == '-' || unicode.IsDigit(c):
		return s.scanNumber()
	default:
		return s.scanWord()
	}
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == ' ' || c == '\t' || c == '\r':
			s.pos++
		case c == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *scanner) scanIRI() (token, error) {
	start := s.pos + 1
	for i := start; i < len(s.src); i++ {
		if s.src[i] == '>' {
			s.pos = i + 1
			return token{kind: tokIRI, val: string(s.src[start:i])}, nil
		}
		if s.src[i] == '\n' {
			break
		}
	}
	return token{}, fmt.Errorf("line %d: %w: unterminated IRI", s.line, ErrSyntax)
}

func (s *scanner) scanString() (token, error) {
	// Long form """...""" is accepted for license texts.
	if s.pos+2 < len(s.src) && s.src[s.pos+1] == '"' && s.src[s.pos+2] == '"' {
		return s.scanLongString()
	}
	var sb strings.Builder
	i := s.pos + 1
	for i < len(s.src) {
		c := s.src[i]
		switch c {
		case '"':
			s.pos = i + 1
			return token{kind: tokString, val: sb.String()}, nil
		case '\\':
			if i+1 >= len(s.src) {
				return token{}, fmt.Errorf("line %d: %w: unterminated escape", s.line, ErrSyntax)
			}
			r, err := unescape(s.src[i+1])
			if err != nil {
				return token{}, fmt.Errorf("line %d: %w", s.line, err)
			}
			sb.WriteRune(r)
			i += 2
		case '\n':
			return token{}, fmt.Errorf("line %d: %w: newline in string", s.line, ErrSyntax)
		default:
			sb.WriteRune(c)
			i++
		}
	}
	return token{}, fmt.Errorf("line %d: %w: unterminated string", s.line, ErrSyntax)
}

func (s *scanner) scanLongString() (token, error) {
	var sb strings.Builder
	i := s.pos + 3
	for i < len(s.src) {
		if i+2 < len(s.src) && s.src[i] == '"' && s.src[i+1] == '"' && s.src[i+2] == '"' {
			s.pos = i + 3
			return token{kind: tokString, val: sb.String()}, nil
		}
		if s.src[i] == '\n' {
			s.line++
		}
		if s.src[i] == '\\' && i+1 < len(s.src) {
			r, err := unescape(s.src[i+1])
			if err != nil {
				return token{}, fmt.Errorf("line %d: %w", s.line, err)
			}
			sb.WriteRune(r)
			i += 2
			continue
		}
		sb.WriteRune(s.src[i])
		i++
	}
	return token{}, fmt.Errorf("line %d: %w: unterminated long string", s.line, ErrSyntax)
}

func unescape(c rune) (rune, error) {
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	default:
		return 0, fmt.Errorf("%w: unsupported escape \\%c", ErrSyntax, c)
	}
}

func (s *scanner) scanBlank() (token, error) {
	if s.pos+1 >= len(s.src) || s.src[s.pos+1] != ':' {
		return token{}, fmt.Errorf("line %d: %w: expected blank node label", s.line, ErrSyntax)
	}
	start := s.pos + 2
	i := start
	for i < len(s.src) && isNameRune(s.src[i]) {
		i++
	}
	if i == start {
		return token{}, fmt.Errorf("line %d: %w: empty blank node label", s.line, ErrSyntax)
	}
	s.pos = i
	return token{kind: tokBlank, val: string(s.src[start:i])}, nil
}

func (s *scanner) scanAt() (token, error) {
	start := s.pos + 1
	i := start
	for i < len(s.src) && (unicode.IsLetter(s.src[i]) || s.src[i] == '-') {
		i++
	}
	word := string(s.src[start:i])
	s.pos = i
	switch word {
	case "prefix":
		return token{kind: tokPrefixDirective, val: "@prefix"}, nil
	case "base":
		return token{kind: tokBaseDirective, val: "@base"}, nil
	default:
		// Language tag.
		if word == "" {
			return token{}, fmt.Errorf("line %d: %w: stray '@'", s.line, ErrSyntax)
		}
		return token{kind: tokLangTag, val: word}, nil
	}
}

func (s *scanner) scanNumber() (token, error) {
	start := s.pos
	i := s.pos
	if s.src[i] == '+' || s.src[i] == '-' {
		i++
	}
	dot := false
	for i < len(s.src) && (unicode.IsDigit(s.src[i]) || (s.src[i] == '.' && !dot)) {
		if s.src[i] == '.' {
			// A trailing dot terminates the statement, not the number.
			if i+1 >= len(s.src) || !unicode.IsDigit(s.src[i+1]) {
				break
			}
			dot = true
		}
		i++
	}
	s.pos = i
	val := string(s.src[start:i])
	if dot {
		return token{kind: tokDecimal, val: val}, nil
	}
	return token{kind: tokInteger, val: val}, nil
}

// scanWord scans bare words: "a", booleans, and prefixed names.
func (s *scanner) scanWord() (token, error) {
	start := s.pos
	i := s.pos
	for i < len(s.src) && (isNameRune(s.src[i]) || s.src[i] == ':') {
		i++
	}
	if i == start {
		return token{}, fmt.Errorf("line %d: %w: unexpected character %q", s.line, ErrSyntax, string(s.src[i]))
	}
	word := string(s.src[start:i])
	// A dot glued to the end of a word terminates the statement.
	for strings.HasSuffix(word, ".") {
		word = word[:len(word)-1]
		i--
	}
	s.pos = i

	switch word {
	case "a":
		return token{kind: tokA, val: "a"}, nil
	case "true", "false":
		return token{kind: tokBoolean, val: word}, nil
	}
	idx := strings.Index(word, ":")
	if idx < 0 {
		return token{}, fmt.Errorf("line %d: %w: bare word %q", s.line, ErrSyntax, word)
	}
	if idx == len(word)-1 {
		return token{kind: tokPNamePrefix, val: word[:idx]}, nil
	}
	return token{kind: tokPName, val: word}, nil
}

func isNameRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-' || c == '.'
}
