package represent

import (
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func name(s string) []Token {
	r := []Token{idt}
	for _, c := range s {
		r = append(r, rw(c))
	}
	return r
}

func call(s string, n uint32) []Token {
	r := []Token{{Kind: TokenFunctionIdentifier, Value: n}}
	for _, c := range s {
		r = append(r, rw(c))
	}
	return r
}

func cat(parts ...[]Token) []Token {
	var r []Token
	for _, p := range parts {
		r = append(r, p...)
	}
	return r
}

func num(d ...uint32) []Token {
	r := []Token{bf(10)}
	for _, x := range d {
		r = append(r, dg(x))
	}
	return r
}

func toks(t ...Token) []Token { return t }

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "represent")
	defer teardown()
	var (
		vec   = Token{Kind: TokenVector}
		quat  = Token{Kind: TokenQuaternion}
		mat   = Token{Kind: TokenMatrix}
		plus  = op(OpPlus)
		minus = op(OpMinus)
		times = op(OpMultiply)
		uplus = op(OpUnaryPlus)
		uneg  = op(OpUnaryMinus)
	)
	row := cat(toks(vec, lparen), num(1), toks(comma), num(2), toks(comma), num(3), toks(comma), num(4), toks(rparen))
	cases := []struct {
		name string
		src  string
		want []Token
	}{
		{"empty", "", nil},
		{"number", "42", num(4, 2)},
		{"fraction", "0x1.8", toks(bf(16), dg(1), dot, dg(8))},
		{"trailing-point", "1.", toks(bf(10), dg(1), dot)},
		{"identifier", "four", name("four")},
		{"dashed", "a-b", name("a-b")},
		{"string", "`hi`", toks(str, rw('h'), rw('i'))},
		{"binary", "1+2*3", cat(num(1), toks(plus), num(2), toks(times), num(3))},
		{"unary", "-x", cat(toks(uneg), name("x"))},
		{"unary-run", "+++++4", cat(toks(uplus, uplus, uplus, uplus, uplus), num(4))},
		{"minus-unary", "1--2", cat(num(1), toks(minus, uneg), num(2))},
		{"group", "(1)", cat(toks(lparen), num(1), toks(rparen))},
		{"call", "f(1,x)", cat(call("f", 2), toks(lparen), num(1), toks(comma), name("x"), toks(rparen))},
		{"call-empty", "pi()", cat(call("pi", 0), toks(lparen, rparen))},
		{"nested-call", "increment(increment(5))", cat(call("increment", 1), toks(lparen), call("increment", 1), toks(lparen), num(5), toks(rparen, rparen))},
		{"vector", "[1,2,3,4]", row},
		{"quaternion", "q[1,2,3,4]", cat(toks(quat), row[1:])},
		{"matrix", "[[1,2,3,4],[1,2,3,4],[1,2,3,4],[1,2,3,4]]", cat(toks(mat, lparen), row, toks(comma), row, toks(comma), row, toks(comma), row, toks(rparen))},
		{"array", "{1,`a`}", cat(toks(Token{Kind: TokenArray, Value: 2}, lparen), num(1), toks(comma, str, rw('a'), rparen))},
		{"negated-vector", "-[1,2,3,4]", cat(toks(uneg), row)},
		// failures
		{"dangling-op", "42 + ", nil},
		{"dashed-call", "fun-(1,2,3)", nil},
		{"three-vector", "[1,2,3]", nil},
		{"five-quaternion", "q[1,2,3,4,5]", nil},
		{"empty-array", "{}", nil},
		{"empty-group", "()", nil},
		{"juxtaposition", "1 2", nil},
		{"unclosed", "(1", nil},
		{"unopened", "1)", nil},
		{"comma", "1,2", nil},
		{"leading-star", "*1", nil},
		{"unary-string", "-`a`", nil},
		{"bare-prefix", "0x", nil},
		{"lex-error", "1 $ 2", nil},
		{"second-point", "1.2.3", nil},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got := Parse(c.src)
			if want := Stream(c.want...); !got.Equal(want) {
				t.Errorf("wrong parse of %q:\nwant %v\ngot  %v", c.src, want, got)
			}
		})
	}
}

func TestParseExtraUnset(t *testing.T) {
	for _, src := range []string{"1+f(2,3)", "[1,2,3,4]", "{x}", "-a-b"} {
		for _, tok := range Parse(src).Tokens() {
			if tok.Extra != 0 {
				t.Errorf("parse of %q set Extra in %v", src, tok)
			}
		}
	}
}

func TestParseNestedBrackets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "represent")
	defer teardown()
	const depth = 40
	cases := []struct {
		name string
		src  string
		ok   bool
	}{
		{"closed", strings.Repeat("[", depth) + "1" + strings.Repeat(",1,1,1]", depth), true},
		{"unclosed", strings.Repeat("[", depth) + "1" + strings.Repeat(",1,1,1]", depth-1), false},
		{"short", strings.Repeat("[", depth) + "1" + strings.Repeat(",1,1]", depth), false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			start := time.Now()
			got := Parse(c.src)
			if d := time.Since(start); d > 2*time.Second {
				t.Errorf("parsing depth %d took %v", depth, d)
			}
			if (got.Len() != 0) != c.ok {
				t.Errorf("wrong parse result: want ok=%v, got %v", c.ok, got)
			}
		})
	}
}

func TestParseMatrixAfterVector(t *testing.T) {
	src := "[1,2,3,4] + [[1,0,0,0],[0,1,0,0],[0,0,1,0],[0,0,0,1]]"
	got := Parse(src)
	var vectors, matrices int
	for _, tok := range got.Tokens() {
		switch tok.Kind {
		case TokenVector:
			vectors++
		case TokenMatrix:
			matrices++
		}
	}
	if vectors != 5 || matrices != 1 {
		t.Errorf("wrong constructors in %v: %d vectors, %d matrices", got, vectors, matrices)
	}
}
