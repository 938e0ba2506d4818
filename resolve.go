package represent

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent/linalg"
)

// maxRawValue bounds the integers which are inlined into programs rather
// than stored. Every backing represents integers below it exactly.
const maxRawValue = 1 << 24

// store is the indexed storage shared by the stages of a context.
type store struct {
	// storage holds every value the program refers to. It never shrinks.
	storage []Cell
	// symbols maps names to the slots they are bound to.
	symbols map[string]uint32
	// refs maps names to the slots holding Identifier cells referring to
	// them, so that every use of a name shares one slot.
	refs map[string]uint32
}

func newStore() store {
	return store{
		symbols: make(map[string]uint32),
		refs:    make(map[string]uint32),
	}
}

// add appends a cell to storage and returns its slot.
func (s *store) add(c Cell) uint32 {
	s.storage = append(s.storage, c)
	return uint32(len(s.storage) - 1)
}

// ref returns the slot of the Identifier cell for name, registering name as
// unbound if it is new.
func (s *store) ref(name string) uint32 {
	if _, ok := s.symbols[name]; !ok {
		s.symbols[name] = s.add(Null[decimal.Decimal]())
	}
	if slot, ok := s.refs[name]; ok {
		return slot
	}
	slot := s.add(Identifier[decimal.Decimal](name))
	s.refs[name] = slot
	return slot
}

// resolve folds the literals and names of a parsed program into storage.
// Numbers, strings, identifiers, and constant vectors, quaternions, and
// matrices become single storage references. Function names become
// function identifier tokens referring to storage with the arity in Extra.
func (s *store) resolve(in TokenStream) TokenStream {
	var out TokenStream
	// Output indices of open parens, to find constructor groups.
	var groups []int
	for i := 0; i < in.Len(); {
		tok := in.At(i)
		switch tok.Kind {
		case TokenBaseFlag:
			var x decimal.Decimal
			x, i = foldNumber(in, i)
			if x.Sign() >= 0 && x.LessThan(decimal.NewFromInt(maxRawValue)) && x.Equal(x.Truncate(0)) {
				out.Push(Token{Kind: TokenRawValue, Value: uint32(x.IntPart())})
			} else {
				out.Push(Token{Kind: TokenStorageRef, Value: s.add(Scalar(x))})
			}
			continue
		case TokenIdentifierRaw:
			var name string
			name, i = rawRun(in, i+1)
			out.Push(Token{Kind: TokenStorageRef, Value: s.ref(name)})
			continue
		case TokenFunctionIdentifier:
			var name string
			name, i = rawRun(in, i+1)
			out.Push(Token{Kind: TokenFunctionIdentifier, Value: s.ref(name), Extra: uint16(tok.Value)})
			continue
		case TokenStringStart:
			var str string
			str, i = rawRun(in, i+1)
			out.Push(Token{Kind: TokenStorageRef, Value: s.add(String[decimal.Decimal](str))})
			continue
		case TokenOperator:
			if OpKind(tok.Value).isUnary() && out.Len() > 0 && out.At(out.Len()-1).Equal(tok) {
				i++
				continue
			}
		case TokenParen:
			if tok.Value == parenOpen {
				groups = append(groups, out.Len())
			} else if len(groups) > 0 {
				open := groups[len(groups)-1]
				groups = groups[:len(groups)-1]
				if open > 0 && s.fold(&out, open-1) {
					i++
					continue
				}
			}
		case TokenDigit, TokenDecimalPoint, TokenRaw:
			panic("represent: resolving " + tok.String() + " outside of its run")
		}
		out.Push(tok)
		i++
	}
	return out
}

// foldNumber folds the number starting with the base flag at index i. It
// returns the value and the index after the number.
func foldNumber(in TokenStream, i int) (decimal.Decimal, int) {
	base := int64(in.At(i).Value)
	b := big.NewInt(base)
	var n, d big.Int
	i++
	for i < in.Len() && in.At(i).Kind == TokenDigit {
		n.Mul(&n, b)
		n.Add(&n, d.SetUint64(uint64(in.At(i).Value)))
		i++
	}
	x := decimal.NewFromBigInt(&n, 0)
	if i < in.Len() && in.At(i).Kind == TokenDecimalPoint {
		i++
		n.SetUint64(0)
		k := 0
		for i < in.Len() && in.At(i).Kind == TokenDigit {
			n.Mul(&n, b)
			n.Add(&n, d.SetUint64(uint64(in.At(i).Value)))
			k++
			i++
		}
		x = x.Add(fraction(&n, base, k))
	}
	return x, i
}

// fraction returns n / base^k exactly. Every supported base is 10 or a power
// of two, and every binary fraction terminates in decimal:
// n / 2^(mk) = n * 5^(mk) / 10^(mk).
func fraction(n *big.Int, base int64, k int) decimal.Decimal {
	if k == 0 {
		return decimal.Zero
	}
	if base == 10 {
		return decimal.NewFromBigInt(n, int32(-k))
	}
	m := 0
	for p := base; p > 1; p >>= 1 {
		if p&1 != 0 {
			panic("represent: unsupported base in number")
		}
		m++
	}
	e := int64(m * k)
	r := new(big.Int).Exp(big.NewInt(5), big.NewInt(e), nil)
	return decimal.NewFromBigInt(r.Mul(r, n), int32(-e))
}

// rawRun collects the characters of a raw run starting at index i. It returns
// the run and the index after it.
func rawRun(in TokenStream, i int) (string, int) {
	var r []rune
	for i < in.Len() && in.At(i).Kind == TokenRaw {
		r = append(r, rune(in.At(i).Value))
		i++
	}
	return string(r), i
}

// fold replaces the constructor group starting with the marker at out[k] by
// a single storage reference if every component is a constant. out must end
// with the group's components; the group's close paren is not yet pushed.
func (s *store) fold(out *TokenStream, k int) bool {
	marker := out.At(k)
	switch marker.Kind {
	case TokenVector, TokenQuaternion, TokenMatrix:
	default:
		return false
	}
	// marker, open paren, then c , c , c , c
	if out.Len()-k != 2+7 {
		return false
	}
	var comps linalg.Vec4[Cell]
	for j := 0; j < 4; j++ {
		tok := out.At(k + 2 + 2*j)
		if j > 0 && out.At(k+1+2*j).Kind != TokenArgDelimit {
			return false
		}
		switch tok.Kind {
		case TokenRawValue:
			comps[j] = Scalar(decimal.NewFromInt(int64(tok.Value)))
		case TokenStorageRef:
			comps[j] = s.storage[tok.Value]
		default:
			return false
		}
	}
	var c Cell
	switch marker.Kind {
	case TokenVector, TokenQuaternion:
		var v linalg.Vec4[decimal.Decimal]
		for j, comp := range comps {
			x, ok := comp.AsScalar()
			if !ok {
				return false
			}
			v[j] = x
		}
		c = Vector(v)
		if marker.Kind == TokenQuaternion {
			c = Quaternion(linalg.QuatOf(v))
		}
	case TokenMatrix:
		var m linalg.Mat4[decimal.Decimal]
		for j, comp := range comps {
			v, ok := comp.AsVector()
			if !ok {
				return false
			}
			m[j] = v
		}
		c = Matrix(m)
	}
	slot := s.add(c)
	for out.Len() > k {
		out.Pop()
	}
	out.Push(Token{Kind: TokenStorageRef, Value: slot})
	return true
}
