package represent

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent/linalg"
)

// Backing is the numeric representation an expression is evaluated with. N
// is the scalar type. Implementations are small value types; the evaluator
// is instantiated once per backing.
type Backing[N any] interface {
	linalg.Field[N]
	// Div returns x/y. The evaluator never calls it with a zero divisor.
	Div(x, y N) N
	IsZero(x N) bool
	FromInt(x int64) N
	FromDecimal(d decimal.Decimal) N
	// ToDecimal converts x to the canonical representation exactly. It
	// returns false if x has no decimal representation, e.g. an infinity.
	ToDecimal(x N) (decimal.Decimal, bool)
	// Call invokes the entry point of f for this backing.
	Call(f Func, st *Stack[N], n int) error
	// Name is a short name for the backing, e.g. for display.
	Name() string
}

// DefaultPrec is the default number of decimal places kept by division in
// the Decimal backing.
const DefaultPrec = 100

// Decimal is the arbitrary-precision backing. Places is the number of
// decimal places kept by division and by transcendental functions; zero
// means DefaultPrec.
type Decimal struct {
	Places int32
}

func (b Decimal) places() int32 {
	if b.Places <= 0 {
		return DefaultPrec
	}
	return b.Places
}

func (Decimal) Add(x, y decimal.Decimal) decimal.Decimal { return x.Add(y) }
func (Decimal) Sub(x, y decimal.Decimal) decimal.Decimal { return x.Sub(y) }
func (Decimal) Mul(x, y decimal.Decimal) decimal.Decimal { return x.Mul(y) }
func (Decimal) Neg(x decimal.Decimal) decimal.Decimal    { return x.Neg() }
func (Decimal) IsZero(x decimal.Decimal) bool            { return x.IsZero() }
func (Decimal) FromInt(x int64) decimal.Decimal          { return decimal.NewFromInt(x) }
func (Decimal) Name() string                             { return "decimal" }

func (b Decimal) Div(x, y decimal.Decimal) decimal.Decimal {
	return x.DivRound(y, b.places())
}

func (Decimal) FromDecimal(d decimal.Decimal) decimal.Decimal {
	return d
}

func (Decimal) ToDecimal(x decimal.Decimal) (decimal.Decimal, bool) {
	return x, true
}

func (b Decimal) Call(f Func, st *Stack[decimal.Decimal], n int) error {
	return f.CallDecimal(st, n, b.places())
}

// Float64 is the double-precision machine float backing.
type Float64 struct{}

func (Float64) Add(x, y float64) float64 { return x + y }
func (Float64) Sub(x, y float64) float64 { return x - y }
func (Float64) Mul(x, y float64) float64 { return x * y }
func (Float64) Div(x, y float64) float64 { return x / y }
func (Float64) Neg(x float64) float64    { return -x }
func (Float64) IsZero(x float64) bool    { return x == 0 }
func (Float64) FromInt(x int64) float64  { return float64(x) }
func (Float64) Name() string             { return "float64" }

func (Float64) FromDecimal(d decimal.Decimal) float64 {
	f, _ := d.Rat().Float64()
	return f
}

func (Float64) ToDecimal(x float64) (decimal.Decimal, bool) {
	return exactDecimal(x)
}

func (Float64) Call(f Func, st *Stack[float64], n int) error {
	return f.CallFloat64(st, n)
}

// Float32 is the single-precision machine float backing.
type Float32 struct{}

func (Float32) Add(x, y float32) float32 { return x + y }
func (Float32) Sub(x, y float32) float32 { return x - y }
func (Float32) Mul(x, y float32) float32 { return x * y }
func (Float32) Div(x, y float32) float32 { return x / y }
func (Float32) Neg(x float32) float32    { return -x }
func (Float32) IsZero(x float32) bool    { return x == 0 }
func (Float32) FromInt(x int64) float32  { return float32(x) }
func (Float32) Name() string             { return "float32" }

func (Float32) FromDecimal(d decimal.Decimal) float32 {
	f, _ := d.Rat().Float32()
	return f
}

func (Float32) ToDecimal(x float32) (decimal.Decimal, bool) {
	return exactDecimal(float64(x))
}

func (Float32) Call(f Func, st *Stack[float32], n int) error {
	return f.CallFloat32(st, n)
}

// exactDecimal converts a finite float to the decimal with exactly the same
// value. Every binary fraction has a terminating decimal expansion, so the
// conversion shows the representation error of the float in full.
func exactDecimal(x float64) (decimal.Decimal, bool) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return decimal.Decimal{}, false
	}
	if x == 0 {
		return decimal.Zero, true
	}
	frac, exp := math.Frexp(x)
	// x = m * 2^exp with m an integer.
	m := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0), true
	}
	// m * 2^-k = m * 5^k * 10^-k
	k := int64(-exp)
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(p.Mul(p, m), int32(-k)), true
}

var (
	_ Backing[decimal.Decimal] = Decimal{}
	_ Backing[float64]         = Float64{}
	_ Backing[float32]         = Float32{}
)
