package framework

import (
	"bytes"
	"go/scanner"
	"go/token"
	"io"
	"os"
	"strings"
)

const resolveChunkSize = 512

// Identity names a fixture type as declared in its source file.
type Identity struct {
	Namespace string // the package clause; may be empty
	Name      string
}

func (id Identity) String() string {
	if id.Namespace == "" {
		return id.Name
	}
	return id.Namespace + "." + id.Name
}

// ResolvePrimaryType finds the first top-level struct type declared in a Go source file,
// without parsing or loading it. The file is read in small chunks and the buffer is lexed
// again after each chunk, so only as much of the file is read as needed to see a complete
// "type Name struct {" header.
func ResolvePrimaryType(path string) (Identity, error) {
	f, err := os.Open(path)
	if err != nil {
		return Identity{}, &ResolutionError{Path: path, Err: err}
	}
	defer f.Close()

	var buffer []byte
	chunk := make([]byte, resolveChunkSize)
	for {
		n, readErr := f.Read(chunk)
		buffer = append(buffer, chunk[:n]...)
		eof := readErr == io.EOF
		if readErr != nil && !eof {
			return Identity{}, &ResolutionError{Path: path, Err: readErr}
		}
		// a header can't be complete before its opening brace has been read
		if eof || bytes.IndexByte(buffer, '{') >= 0 {
			if id, ok := scanPrimaryType(buffer); ok {
				return id, nil
			}
		}
		if eof {
			return Identity{}, &ResolutionError{Path: path, Err: errNoTypeDeclaration}
		}
	}
}

func scanPrimaryType(src []byte) (Identity, bool) {
	ts := newTokenStream(src)
	var id Identity
	depth := 0
	for {
		lx := ts.next()
		switch lx.tok {
		case token.EOF:
			return Identity{}, false
		case token.LBRACE, token.LPAREN, token.LBRACK:
			depth++
		case token.RBRACE, token.RPAREN, token.RBRACK:
			if depth > 0 {
				depth--
			}
		case token.PACKAGE:
			id.Namespace = ts.qualifiedIdent()
		case token.TYPE:
			if depth != 0 {
				continue
			}
			if name, ok := ts.typeDecl(); ok {
				id.Name = name
				return id, true
			}
		}
	}
}

// DeclaredMethods returns the names of the methods declared on typeName in a source file,
// in the order they appear.
func DeclaredMethods(path, typeName string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ts := newTokenStream(src)
	var methods []string
	depth := 0
	for {
		lx := ts.next()
		switch lx.tok {
		case token.EOF:
			return methods, nil
		case token.LBRACE, token.LPAREN, token.LBRACK:
			depth++
		case token.RBRACE, token.RPAREN, token.RBRACK:
			if depth > 0 {
				depth--
			}
		case token.FUNC:
			if depth != 0 || ts.peek().tok != token.LPAREN {
				continue
			}
			ts.next()
			onType := false
			for nest := 1; nest > 0; {
				r := ts.next()
				switch r.tok {
				case token.EOF:
					return methods, nil
				case token.LPAREN, token.LBRACK:
					nest++
				case token.RPAREN, token.RBRACK:
					nest--
				case token.IDENT:
					if r.lit == typeName {
						onType = true
					}
				}
			}
			if ts.peek().tok == token.IDENT {
				name := ts.next()
				if onType {
					methods = append(methods, name.lit)
				}
			}
		}
	}
}

type lexeme struct {
	tok token.Token
	lit string
}

// tokenStream is a go/scanner with one token of lookahead. Scan errors are ignored, since
// a partially read file routinely ends inside a comment or string.
type tokenStream struct {
	scanner scanner.Scanner
	peeked  *lexeme
}

func newTokenStream(src []byte) *tokenStream {
	ts := &tokenStream{}
	file := token.NewFileSet().AddFile("", -1, len(src))
	ts.scanner.Init(file, src, func(token.Position, string) {}, 0)
	return ts
}

func (ts *tokenStream) next() lexeme {
	if ts.peeked != nil {
		lx := *ts.peeked
		ts.peeked = nil
		return lx
	}
	_, tok, lit := ts.scanner.Scan()
	return lexeme{tok: tok, lit: lit}
}

func (ts *tokenStream) peek() lexeme {
	if ts.peeked == nil {
		lx := ts.next()
		ts.peeked = &lx
	}
	return *ts.peeked
}

// qualifiedIdent collects dotted identifier segments up to the end of the clause.
func (ts *tokenStream) qualifiedIdent() string {
	var segments []string
	for {
		switch lx := ts.peek(); lx.tok {
		case token.IDENT:
			segments = append(segments, lx.lit)
			ts.next()
		case token.PERIOD:
			ts.next()
		default:
			return strings.Join(segments, ".")
		}
	}
}

// typeDecl reads what follows a "type" keyword, which is either a single type spec or a
// parenthesized group of them.
func (ts *tokenStream) typeDecl() (string, bool) {
	if ts.peek().tok != token.LPAREN {
		return ts.typeSpec()
	}
	ts.next()
	for {
		switch ts.peek().tok {
		case token.RPAREN, token.EOF:
			ts.next()
			return "", false
		case token.SEMICOLON:
			ts.next()
			continue
		}
		if name, ok := ts.typeSpec(); ok {
			return name, true
		}
		ts.skipSpec()
	}
}

// typeSpec reports the declared name if the spec is a struct type whose opening brace
// has been reached. Type parameters between the name and "struct" are skipped.
func (ts *tokenStream) typeSpec() (string, bool) {
	name := ts.next()
	if name.tok != token.IDENT {
		return "", false
	}
	if ts.peek().tok == token.LBRACK && !ts.typeParams() {
		return "", false
	}
	if ts.peek().tok == token.ASSIGN {
		return "", false
	}
	if ts.next().tok != token.STRUCT {
		return "", false
	}
	return name.lit, ts.peek().tok == token.LBRACE
}

// typeParams consumes a bracketed list and reports whether it was a type parameter list
// rather than an array or slice length.
func (ts *tokenStream) typeParams() bool {
	ts.next()
	first := ts.next()
	if first.tok == token.RBRACK {
		return false
	}
	isParams := first.tok == token.IDENT && startsConstraint(ts.peek().tok)
	depth := 1
	for lx := first; ; lx = ts.next() {
		switch lx.tok {
		case token.EOF:
			return false
		case token.LBRACK, token.LPAREN, token.LBRACE:
			depth++
		case token.RBRACK, token.RPAREN, token.RBRACE:
			depth--
		}
		if depth == 0 {
			return isParams
		}
	}
}

func startsConstraint(tok token.Token) bool {
	switch tok {
	case token.IDENT, token.INTERFACE, token.TILDE, token.COMMA, token.LBRACK,
		token.MAP, token.CHAN, token.FUNC:
		return true
	}
	return false
}

// skipSpec advances to the end of the current spec inside a type group, leaving a
// closing parenthesis of the group in place.
func (ts *tokenStream) skipSpec() {
	depth := 0
	for {
		switch ts.peek().tok {
		case token.EOF:
			return
		case token.LBRACE, token.LPAREN, token.LBRACK:
			depth++
		case token.RBRACE, token.RBRACK:
			depth--
		case token.RPAREN:
			if depth == 0 {
				return
			}
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				ts.next()
				return
			}
		}
		ts.next()
	}
}
