package represent

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent/linalg"
)

func ref(slot uint32) Token { return Token{Kind: TokenStorageRef, Value: slot} }
func raw(x uint32) Token    { return Token{Kind: TokenRawValue, Value: x} }
func dec(s string) Cell     { return Scalar(decimal.RequireFromString(s)) }
func ident(s string) Cell   { return Identifier[decimal.Decimal](s) }
func null() Cell            { return Null[decimal.Decimal]() }
func strcell(s string) Cell { return String[decimal.Decimal](s) }

func fnTok(slot uint32, n uint16) Token {
	return Token{Kind: TokenFunctionIdentifier, Value: slot, Extra: n}
}

func vec4(s ...string) linalg.Vec4[decimal.Decimal] {
	var v linalg.Vec4[decimal.Decimal]
	for i := range v {
		v[i] = decimal.RequireFromString(s[i])
	}
	return v
}

func TestResolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "represent")
	defer teardown()
	cases := []struct {
		name    string
		src     string
		program []Token
		storage []Cell
		symbols map[string]uint32
	}{
		{
			name:    "small",
			src:     "42",
			program: toks(raw(42)),
		},
		{
			name:    "zero-fraction",
			src:     "4.0",
			program: toks(raw(4)),
		},
		{
			name:    "large",
			src:     "16777216",
			program: toks(ref(0)),
			storage: []Cell{dec("16777216")},
		},
		{
			name:    "fraction",
			src:     "2.5",
			program: toks(ref(0)),
			storage: []Cell{dec("2.5")},
		},
		{
			name:    "binary-fraction",
			src:     "0b0.01",
			program: toks(ref(0)),
			storage: []Cell{dec("0.25")},
		},
		{
			name:    "hex-fraction",
			src:     "0x0.8",
			program: toks(ref(0)),
			storage: []Cell{dec("0.5")},
		},
		{
			name:    "octal-fraction",
			src:     "01.4",
			program: toks(ref(0)),
			storage: []Cell{dec("1.5")},
		},
		{
			name:    "shared-identifier",
			src:     "four + four",
			program: toks(ref(1), op(OpPlus), ref(1)),
			storage: []Cell{null(), ident("four")},
			symbols: map[string]uint32{"four": 0},
		},
		{
			name:    "function",
			src:     "increment(x)",
			program: toks(fnTok(1, 1), lparen, ref(3), rparen),
			storage: []Cell{null(), ident("increment"), null(), ident("x")},
			symbols: map[string]uint32{"increment": 0, "x": 2},
		},
		{
			name:    "string",
			src:     "`hi` + `there`",
			program: toks(ref(0), op(OpPlus), ref(1)),
			storage: []Cell{strcell("hi"), strcell("there")},
		},
		{
			name:    "collapse",
			src:     "--4",
			program: toks(op(OpUnaryMinus), raw(4)),
		},
		{
			name:    "no-collapse",
			src:     "-+-4",
			program: toks(op(OpUnaryMinus), op(OpUnaryPlus), op(OpUnaryMinus), raw(4)),
		},
		{
			name:    "vector",
			src:     "[1, 2, 3, 0.5]",
			program: toks(ref(1)),
			storage: []Cell{dec("0.5"), Vector(vec4("1", "2", "3", "0.5"))},
		},
		{
			name:    "dynamic-vector",
			src:     "[1, 2, 3, x]",
			program: toks(Token{Kind: TokenVector}, lparen, raw(1), comma, raw(2), comma, raw(3), comma, ref(1), rparen),
			storage: []Cell{null(), ident("x")},
			symbols: map[string]uint32{"x": 0},
		},
		{
			name:    "array",
			src:     "{1, 2}",
			program: toks(Token{Kind: TokenArray, Value: 2}, lparen, raw(1), comma, raw(2), rparen),
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			s := newStore()
			p := s.resolve(Parse(c.src))
			if want := Stream(c.program...); !p.Equal(want) {
				t.Errorf("wrong program:\nwant %v\ngot  %v", want, p)
			}
			for i, tok := range c.program {
				if i < p.Len() && p.At(i).Extra != tok.Extra {
					t.Errorf("wrong extra at %d: want %d, got %d", i, tok.Extra, p.At(i).Extra)
				}
			}
			if len(s.storage) != len(c.storage) {
				t.Fatalf("wrong storage size: want %v, got %v", c.storage, s.storage)
			}
			for i := range c.storage {
				if !EqualCells(s.storage[i], c.storage[i]) {
					t.Errorf("wrong cell %d: want %v, got %v", i, c.storage[i], s.storage[i])
				}
			}
			if len(s.symbols) != len(c.symbols) {
				t.Errorf("wrong symbols: want %v, got %v", c.symbols, s.symbols)
			}
			for k, v := range c.symbols {
				if s.symbols[k] != v {
					t.Errorf("wrong slot for %s: want %d, got %d", k, v, s.symbols[k])
				}
			}
		})
	}
}

func TestResolveMatrix(t *testing.T) {
	s := newStore()
	p := s.resolve(Parse("[[1,0,0,0],[0,1,0,0],[0,0,1,0],[0,0,0,1]]"))
	if p.Len() != 1 || p.At(0).Kind != TokenStorageRef {
		t.Fatalf("matrix did not fold: %v", p)
	}
	m, ok := s.storage[p.At(0).Value].AsMatrix()
	if !ok {
		t.Fatalf("folded to %v, not a matrix", s.storage[p.At(0).Value])
	}
	for i := range m {
		for j := range m[i] {
			want := int64(0)
			if i == j {
				want = 1
			}
			if !m[i][j].Equal(decimal.NewFromInt(want)) {
				t.Errorf("wrong element %d,%d: %v", i, j, m[i][j])
			}
		}
	}
}

func TestResolveBases(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"0", 0},
		{"0b0", 0},
		{"0b1111", 15},
		{"0777", 511},
		{"0x10", 16},
		{"0xfff", 4095},
		{"0xFFFFFF", 1<<24 - 1},
		{"999999", 999999},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			s := newStore()
			p := s.resolve(Parse(c.src))
			if want := Stream(raw(uint32(c.want))); !p.Equal(want) {
				t.Errorf("wrong program: want %v, got %v", want, p)
			}
		})
	}
}
