package represent

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func bf(base uint32) Token { return Token{Kind: TokenBaseFlag, Value: base} }
func dg(d uint32) Token    { return Token{Kind: TokenDigit, Value: d} }
func rw(r rune) Token      { return Token{Kind: TokenRaw, Value: uint32(r)} }
func op(k OpKind) Token    { return opToken(k) }

var (
	dot    = Token{Kind: TokenDecimalPoint}
	idt    = Token{Kind: TokenIdentifierRaw}
	str    = Token{Kind: TokenStringStart}
	lparen = Token{Kind: TokenParen, Value: parenOpen}
	rparen = Token{Kind: TokenParen, Value: parenClose}
	comma  = Token{Kind: TokenArgDelimit}
)

func br(r rune) Token { return Token{Kind: TokenBracket, Value: uint32(r)} }

func TestLex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "represent")
	defer teardown()
	cases := []struct {
		src    string
		tokens []Token
		err    bool
	}{
		// spaces
		{"", nil, false},
		{" \t \r\n ", nil, false},
		// numbers
		{"0", []Token{bf(10), dg(0)}, false},
		{"42", []Token{bf(10), dg(4), dg(2)}, false},
		{"4 2", []Token{bf(10), dg(4), bf(10), dg(2)}, false},
		{"0b101", []Token{bf(2), dg(1), dg(0), dg(1)}, false},
		{"0x1fF", []Token{bf(16), dg(1), dg(15), dg(15)}, false},
		{"017", []Token{bf(8), dg(1), dg(7)}, false},
		{"0.5", []Token{bf(10), dg(0), dot, dg(5)}, false},
		{"1.", []Token{bf(10), dg(1), dot}, false},
		{"0x", []Token{bf(16)}, false},
		{"0b2", []Token{bf(2), bf(10), dg(2)}, false},
		{"0b1.1", []Token{bf(2), dg(1), dot, dg(1)}, false},
		{"1.2.3", nil, true},
		{"08", []Token{bf(8), bf(10), dg(8)}, false},
		// identifiers
		{"x", []Token{idt, rw('x')}, false},
		{"_a1", []Token{idt, rw('_'), rw('a'), rw('1')}, false},
		{"a-b", []Token{idt, rw('a'), rw('-'), rw('b')}, false},
		{"a-", []Token{idt, rw('a'), op(OpMinus)}, false},
		{"a- b", []Token{idt, rw('a'), op(OpMinus), idt, rw('b')}, false},
		{"a--b", []Token{idt, rw('a'), op(OpMinus), op(OpMinus), idt, rw('b')}, false},
		{"fun-(1)", []Token{idt, rw('f'), rw('u'), rw('n'), op(OpMinus), lparen, bf(10), dg(1), rparen}, false},
		// strings
		{"``", []Token{str}, false},
		{"`ab`", []Token{str, rw('a'), rw('b')}, false},
		{"`a b`", []Token{str, rw('a'), rw(' '), rw('b')}, false},
		{"`a\\`b`", []Token{str, rw('a'), rw('`'), rw('b')}, false},
		{"`a\\b`", []Token{str, rw('a'), rw('\\'), rw('b')}, false},
		{"`ab", nil, true},
		// operators and brackets
		{"1+2", []Token{bf(10), dg(1), op(OpPlus), bf(10), dg(2)}, false},
		{"*/", []Token{op(OpMultiply), op(OpDivide)}, false},
		{"(,)", []Token{lparen, comma, rparen}, false},
		{"[]{}", []Token{br('['), br(']'), br('{'), br('}')}, false},
		// erroneous symbols
		{"$", nil, true},
		{"a$", nil, true},
		{"π", nil, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			toks, err := lex(strings.NewReader(c.src))
			if c.err {
				if err == nil {
					t.Errorf("expected error, got tokens %v", toks)
				}
				var lerr *LexError
				if !errors.As(err, &lerr) {
					t.Errorf("expected *LexError, got %#v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := Stream(c.tokens...); !toks.Equal(want) {
				t.Errorf("wrong tokens:\nwant %v\ngot  %v", want, toks)
			}
		})
	}
}

func TestLexErrorPos(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		col  int
	}{
		{"$", "", 1},
		{"1 + $", "", 5},
		{"`abc", "string", 4},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			_, err := lex(strings.NewReader(c.src))
			var lerr *LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("expected *LexError, got %#v", err)
			}
			if lerr.Kind != c.kind {
				t.Errorf("wrong kind: want %q, got %q", c.kind, lerr.Kind)
			}
			if lerr.Pos() != c.col {
				t.Errorf("wrong position: want %d, got %d", c.col, lerr.Pos())
			}
		})
	}
}
