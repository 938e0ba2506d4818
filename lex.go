package represent

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src  io.RuneScanner
	out  TokenStream
	buf  strings.Builder
	rune int
}

// lex scans a whole input into a flat token stream. Whitespace outside of
// strings separates tokens and is otherwise dropped.
func lex(src io.RuneScanner) (TokenStream, error) {
	l := lexer{src: src}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l.out, nil
			}
			return TokenStream{}, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return TokenStream{}, err
			}
		case isIdentStart(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return TokenStream{}, err
			}
		case r == '`':
			if err := l.scanString(); err != nil {
				return TokenStream{}, err
			}
		case r == '(':
			l.out.Push(Token{Kind: TokenParen, Value: parenOpen})
		case r == ')':
			l.out.Push(Token{Kind: TokenParen, Value: parenClose})
		case r == ',':
			l.out.Push(Token{Kind: TokenArgDelimit})
		case r == '[', r == ']', r == '{', r == '}':
			l.out.Push(Token{Kind: TokenBracket, Value: uint32(r)})
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				l.out.Push(opToken(OpKind(k)))
				continue
			}
			// Write the rune so that it shows up in the error message.
			l.buf.Reset()
			l.buf.WriteRune(r)
			return TokenStream{}, l.error("")
		}
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// scanNum scans a base prefix and the digits that follow it. A prefix with no
// digits in its base emits only the base flag; the parser rejects it.
func (l *lexer) scanNum() error {
	r, err := l.readRune()
	if err != nil {
		return err
	}
	base := uint32(10)
	if r == '0' {
		n, err := l.readRune()
		switch {
		case errors.Is(err, io.EOF):
			l.out.Push(Token{Kind: TokenBaseFlag, Value: 10})
			l.out.Push(Token{Kind: TokenDigit, Value: 0})
			return nil
		case err != nil:
			return err
		case n == 'b':
			base = 2
		case n == 'x':
			base = 16
		case '0' <= n && n <= '9':
			l.unreadRune()
			base = 8
		default:
			// Plain zero, possibly with a fraction.
			l.unreadRune()
			l.out.Push(Token{Kind: TokenBaseFlag, Value: 10})
			l.out.Push(Token{Kind: TokenDigit, Value: 0})
			return l.scanDigits(10)
		}
		l.out.Push(Token{Kind: TokenBaseFlag, Value: base})
		return l.scanDigits(base)
	}
	l.unreadRune()
	l.out.Push(Token{Kind: TokenBaseFlag, Value: base})
	return l.scanDigits(base)
}

// scanDigits emits digits of the given base and at most one decimal point.
func (l *lexer) scanDigits(base uint32) error {
	dot := false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if d := digitValue(r, base); d >= 0 {
			l.out.Push(Token{Kind: TokenDigit, Value: uint32(d)})
			continue
		}
		if r == '.' && !dot {
			dot = true
			l.out.Push(Token{Kind: TokenDecimalPoint})
			continue
		}
		l.unreadRune()
		return nil
	}
}

// scanIdent scans an identifier. A dash belongs to the identifier only when
// the rune after it continues the identifier, so an identifier never ends in
// a dash.
func (l *lexer) scanIdent() error {
	r, err := l.readRune()
	if err != nil {
		return err
	}
	l.out.Push(Token{Kind: TokenIdentifierRaw})
	l.out.Push(Token{Kind: TokenRaw, Value: uint32(r)})
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case isIdentPart(r):
			l.out.Push(Token{Kind: TokenRaw, Value: uint32(r)})
		case r == '-':
			n, err := l.readRune()
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if err == nil && isIdentPart(n) {
				l.out.Push(Token{Kind: TokenRaw, Value: '-'})
				l.out.Push(Token{Kind: TokenRaw, Value: uint32(n)})
				continue
			}
			// The dash is an operator after all.
			l.out.Push(opToken(OpMinus))
			if err == nil {
				l.unreadRune()
			}
			return nil
		default:
			l.unreadRune()
			return nil
		}
	}
}

// scanString scans the body of a string after its opening backtick. A
// backslash escapes a backtick.
func (l *lexer) scanString() error {
	l.out.Push(Token{Kind: TokenStringStart})
	l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l.error("string")
			}
			return err
		}
		switch r {
		case '`':
			return nil
		case '\\':
			n, err := l.readRune()
			if err != nil {
				if errors.Is(err, io.EOF) {
					l.buf.WriteRune(r)
					return l.error("string")
				}
				return err
			}
			if n != '`' {
				l.out.Push(Token{Kind: TokenRaw, Value: uint32(r)})
				l.buf.WriteRune(r)
				l.unreadRune()
				continue
			}
			r = n
		}
		l.out.Push(Token{Kind: TokenRaw, Value: uint32(r)})
		l.buf.WriteRune(r)
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || '0' <= r && r <= '9'
}

// digitValue returns the value of r as a digit in base, or -1.
func digitValue(r rune, base uint32) int {
	var d int
	switch {
	case '0' <= r && r <= '9':
		d = int(r - '0')
	case 'a' <= r && r <= 'f':
		d = int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		d = int(r-'A') + 10
	default:
		return -1
	}
	if d >= int(base) {
		return -1
	}
	return d
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "string"
	// or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
