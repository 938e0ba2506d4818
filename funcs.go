package represent

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/represent/linalg"
)

// Func is a function callable from expressions. It has one entry point per
// numeric backing; the evaluator calls the one matching the backing it runs
// with. Each entry point pops exactly n arguments from st and pushes exactly
// one result.
type Func interface {
	// CallDecimal evaluates the function with decimal scalars. places is the
	// number of decimal places results should keep where they are inexact.
	CallDecimal(st *Stack[decimal.Decimal], n int, places int32) error
	CallFloat64(st *Stack[float64], n int) error
	CallFloat32(st *Stack[float32], n int) error

	// CanCall returns whether the function can be called with n arguments.
	// The evaluator checks it before calling any entry point.
	CanCall(n int) bool
}

// Stack is the value stack of an evaluation.
type Stack[N any] struct {
	vals []Value[N]
}

// Push pushes a value.
func (s *Stack[N]) Push(v Value[N]) {
	s.vals = append(s.vals, v)
}

// Pop removes and returns the top value.
func (s *Stack[N]) Pop() (Value[N], error) {
	if len(s.vals) == 0 {
		return Value[N]{}, &StackError{Want: 1}
	}
	v := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return v, nil
}

// PopN removes the top n values and returns them in the order they were
// pushed.
func (s *Stack[N]) PopN(n int) ([]Value[N], error) {
	if len(s.vals) < n {
		return nil, &StackError{Want: n, Have: len(s.vals)}
	}
	k := len(s.vals) - n
	r := append([]Value[N](nil), s.vals[k:]...)
	s.vals = s.vals[:k]
	return r, nil
}

// Len returns the number of values on the stack.
func (s *Stack[N]) Len() int {
	return len(s.vals)
}

// scalarArgs pops n arguments and checks that each is a scalar.
func scalarArgs[N any](st *Stack[N], n int, name string) ([]N, error) {
	vals, err := st.PopN(n)
	if err != nil {
		return nil, err
	}
	r := make([]N, n)
	for i, v := range vals {
		x, ok := v.AsScalar()
		if !ok {
			return nil, &ArgumentError{Func: name, Arg: i + 1, Want: KindScalar, Got: v.Kind()}
		}
		r[i] = x
	}
	return r, nil
}

var globalfuncs = map[string]Func{
	"exp": Monadic("exp", bigfloat.Exp, math.Exp),
	"ln":  Monadic("ln", bigfloat.Log, math.Log),
	"log": Monadic("log", func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		in.SetFloat64(10).SetPrec(out.Prec())
		bigfloat.Log(in, in)
		return out.Quo(out, in)
	}, math.Log10),
	"sqrt": Monadic("sqrt", (*big.Float).Sqrt, math.Sqrt),

	// trig from the decimal package
	"sin":  decimalMonadic("sin", decimal.Decimal.Sin, math.Sin),
	"cos":  decimalMonadic("cos", decimal.Decimal.Cos, math.Cos),
	"tan":  decimalMonadic("tan", decimal.Decimal.Tan, math.Tan),
	"atan": decimalMonadic("atan", decimal.Decimal.Atan, math.Atan),

	// constants
	"pi": Niladic("pi", bigfloat.Pi, math.Pi),
	"e": Niladic("e", func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}, math.E),

	"increment": increment,
	"incr":      increment,
	"strlen":    strlen,
	"dup":       dup,
	"quat":      quat,
}

// DefaultFuncs returns a copy of the functions every context starts with.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

// DisableDefaultFuncs returns a functions map suitable for disabling all
// default functions when passed to WithFuncs.
func DisableDefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}

// scalarFunc is a function of scalars with separate implementations for
// decimals and floats. Float32 evaluates through float64.
type scalarFunc struct {
	name  string
	arity int
	dec   func(args []decimal.Decimal, places int32) (decimal.Decimal, error)
	flt   func(args []float64) float64
}

func (f scalarFunc) CallDecimal(st *Stack[decimal.Decimal], n int, places int32) error {
	args, err := scalarArgs(st, n, f.name)
	if err != nil {
		return err
	}
	r, err := f.dec(args, places)
	if err != nil {
		return err
	}
	st.Push(Scalar(r))
	return nil
}

func (f scalarFunc) CallFloat64(st *Stack[float64], n int) error {
	args, err := scalarArgs(st, n, f.name)
	if err != nil {
		return err
	}
	r, err := f.float(args)
	if err != nil {
		return err
	}
	st.Push(Scalar(r))
	return nil
}

func (f scalarFunc) CallFloat32(st *Stack[float32], n int) error {
	args32, err := scalarArgs(st, n, f.name)
	if err != nil {
		return err
	}
	args := make([]float64, len(args32))
	for i, x := range args32 {
		args[i] = float64(x)
	}
	r, err := f.float(args)
	if err != nil {
		return err
	}
	st.Push(Scalar(float32(r)))
	return nil
}

// float calls the float implementation and rejects results which are not
// numbers.
func (f scalarFunc) float(args []float64) (float64, error) {
	r := f.flt(args)
	if !math.IsNaN(r) && !math.IsInf(r, 0) {
		return r, nil
	}
	err := &DomainError{Func: f.name}
	if len(args) > 0 {
		err.X = strconv.FormatFloat(args[0], 'g', -1, 64)
		err.Arg = 1
	}
	return 0, err
}

func (f scalarFunc) CanCall(n int) bool {
	return n == f.arity
}

// Monadic wraps a function of one variable into a Func. dec is used with
// the Decimal backing: it must set out to its result, to the precision of
// out; its return value is always ignored. If dec is called on an argument
// outside its domain, it should panic with an error of type big.ErrNaN, or
// that unwraps to it. flt is used with the float backings.
func Monadic(name string, dec func(out, in *big.Float) *big.Float, flt func(float64) float64) Func {
	return scalarFunc{
		name:  name,
		arity: 1,
		dec: func(args []decimal.Decimal, places int32) (r decimal.Decimal, err error) {
			in := toBigFloat(args[0], places)
			out := new(big.Float).SetPrec(in.Prec())
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				e := p.(error) // panic if not error
				if errors.As(e, &big.ErrNaN{}) {
					err = &DomainError{X: args[0].String(), Arg: 1, Func: name}
					return
				}
				panic(p)
			}()
			dec(out, in)
			return fromBigFloat(out, places, name)
		},
		flt: func(args []float64) float64 { return flt(args[0]) },
	}
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. dec must set out to its result; its
// return value is always ignored. Unlike Monadic, dec is expected never to
// panic.
func Niladic(name string, dec func(out *big.Float) *big.Float, flt float64) Func {
	return scalarFunc{
		name: name,
		dec: func(args []decimal.Decimal, places int32) (decimal.Decimal, error) {
			out := new(big.Float).SetPrec(bitsFor(places))
			dec(out)
			return fromBigFloat(out, places, name)
		},
		flt: func([]float64) float64 { return flt },
	}
}

// decimalMonadic wraps a function implemented directly on decimals. The
// result is rounded to the backing's places.
func decimalMonadic(name string, dec func(decimal.Decimal) decimal.Decimal, flt func(float64) float64) Func {
	return scalarFunc{
		name:  name,
		arity: 1,
		dec: func(args []decimal.Decimal, places int32) (decimal.Decimal, error) {
			return dec(args[0]).Round(places), nil
		},
		flt: func(args []float64) float64 { return flt(args[0]) },
	}
}

// bitsFor returns a binary precision sufficient for places decimal places
// with some guard bits.
func bitsFor(places int32) uint {
	// log2(10) < 3.33
	return uint(places)*333/100 + 64
}

func toBigFloat(x decimal.Decimal, places int32) *big.Float {
	f := new(big.Float).SetPrec(bitsFor(places) + uint(len(x.Coefficient().String()))*4)
	f.SetString(x.String())
	return f
}

func fromBigFloat(x *big.Float, places int32, name string) (decimal.Decimal, error) {
	if x.IsInf() {
		return decimal.Decimal{}, &DomainError{X: x.String(), Func: name}
	}
	d, err := decimal.NewFromString(x.Text('e', int(places)+1))
	if err != nil {
		panic("represent: bad big.Float text: " + err.Error())
	}
	return d.Round(places), nil
}

// anyBacking is a Func written once for every backing.
type anyBacking struct {
	can func(n int) bool
	dec func(st *Stack[decimal.Decimal], n int, b Decimal) error
	f64 func(st *Stack[float64], n int, b Float64) error
	f32 func(st *Stack[float32], n int, b Float32) error
}

func (f anyBacking) CallDecimal(st *Stack[decimal.Decimal], n int, places int32) error {
	return f.dec(st, n, Decimal{Places: places})
}

func (f anyBacking) CallFloat64(st *Stack[float64], n int) error {
	return f.f64(st, n, Float64{})
}

func (f anyBacking) CallFloat32(st *Stack[float32], n int) error {
	return f.f32(st, n, Float32{})
}

func (f anyBacking) CanCall(n int) bool {
	return f.can(n)
}

func arity(k int) func(int) bool {
	return func(n int) bool { return n == k }
}

// increment adds one to a scalar.
var increment Func = anyBacking{
	can: arity(1),
	dec: incr[decimal.Decimal, Decimal],
	f64: incr[float64, Float64],
	f32: incr[float32, Float32],
}

func incr[N any, B Backing[N]](st *Stack[N], n int, b B) error {
	args, err := scalarArgs(st, n, "increment")
	if err != nil {
		return err
	}
	st.Push(Scalar(b.Add(args[0], b.FromInt(1))))
	return nil
}

// strlen gives the number of characters in a string.
var strlen Func = anyBacking{
	can: arity(1),
	dec: strlenOf[decimal.Decimal, Decimal],
	f64: strlenOf[float64, Float64],
	f32: strlenOf[float32, Float32],
}

func strlenOf[N any, B Backing[N]](st *Stack[N], n int, b B) error {
	v, err := st.Pop()
	if err != nil {
		return err
	}
	s, ok := v.AsString()
	if !ok {
		return &ArgumentError{Func: "strlen", Arg: 1, Want: KindString, Got: v.Kind()}
	}
	st.Push(Scalar(b.FromInt(int64(utf8.RuneCountInString(s)))))
	return nil
}

// dup makes a pair of its argument.
var dup Func = anyBacking{
	can: arity(1),
	dec: dupOf[decimal.Decimal, Decimal],
	f64: dupOf[float64, Float64],
	f32: dupOf[float32, Float32],
}

func dupOf[N any, B Backing[N]](st *Stack[N], n int, b B) error {
	v, err := st.Pop()
	if err != nil {
		return err
	}
	st.Push(Array(v, v))
	return nil
}

// quat builds a quaternion from four scalars in w, x, y, z order.
var quat Func = anyBacking{
	can: arity(4),
	dec: quatOf[decimal.Decimal, Decimal],
	f64: quatOf[float64, Float64],
	f32: quatOf[float32, Float32],
}

func quatOf[N any, B Backing[N]](st *Stack[N], n int, b B) error {
	args, err := scalarArgs(st, n, "quat")
	if err != nil {
		return err
	}
	st.Push(Quaternion(linalg.Quat[N]{W: args[0], X: args[1], Y: args[2], Z: args[3]}))
	return nil
}
