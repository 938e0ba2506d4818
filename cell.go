package represent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent/linalg"
)

// Kind is the tag of a Value.
type Kind uint8

const (
	// KindNull marks a slot which is not yet bound to anything.
	KindNull Kind = iota
	KindScalar
	KindVector
	KindQuaternion
	KindMatrix
	KindString
	KindFunction
	// KindIdentifier is a deferred lookup of a name.
	KindIdentifier
	KindArray
)

var kindNames = [...]string{
	KindNull:       "null",
	KindScalar:     "scalar",
	KindVector:     "vector",
	KindQuaternion: "quaternion",
	KindMatrix:     "matrix",
	KindString:     "string",
	KindFunction:   "function",
	KindIdentifier: "identifier",
	KindArray:      "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged union of everything an expression can produce or refer
// to. N is the scalar type of the numeric backing. The zero Value is Null.
type Value[N any] struct {
	kind Kind
	num  N
	vec  linalg.Vec4[N]
	quat linalg.Quat[N]
	mat  *linalg.Mat4[N]
	str  string
	fn   Func
	arr  []Value[N]
}

// Cell is a value in the canonical high-precision representation. Storage
// holds cells, and evaluation always converts its result back to a cell.
type Cell = Value[decimal.Decimal]

// Function is a named function value.
type Function struct {
	Name string
	Impl Func
}

// Scalar creates a scalar value.
func Scalar[N any](x N) Value[N] {
	return Value[N]{kind: KindScalar, num: x}
}

// Vector creates a vector value.
func Vector[N any](v linalg.Vec4[N]) Value[N] {
	return Value[N]{kind: KindVector, vec: v}
}

// Quaternion creates a quaternion value.
func Quaternion[N any](q linalg.Quat[N]) Value[N] {
	return Value[N]{kind: KindQuaternion, quat: q}
}

// Matrix creates a matrix value.
func Matrix[N any](m linalg.Mat4[N]) Value[N] {
	return Value[N]{kind: KindMatrix, mat: &m}
}

// String creates a string value.
func String[N any](s string) Value[N] {
	return Value[N]{kind: KindString, str: s}
}

// FunctionValue creates a function value.
func FunctionValue[N any](name string, f Func) Value[N] {
	return Value[N]{kind: KindFunction, str: name, fn: f}
}

// Identifier creates a deferred lookup of name.
func Identifier[N any](name string) Value[N] {
	return Value[N]{kind: KindIdentifier, str: name}
}

// Null returns the unbound value.
func Null[N any]() Value[N] {
	return Value[N]{}
}

// Array creates an array value. The elements are not checked for
// homogeneity; the evaluator checks array literals.
func Array[N any](elems ...Value[N]) Value[N] {
	return Value[N]{kind: KindArray, arr: append([]Value[N](nil), elems...)}
}

// Int is a shortcut to create a scalar cell.
func Int(x int64) Cell {
	return Scalar(decimal.NewFromInt(x))
}

// Kind returns the value's tag.
func (v Value[N]) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is Null.
func (v Value[N]) IsNull() bool {
	return v.kind == KindNull
}

// AsScalar returns v's scalar payload.
func (v Value[N]) AsScalar() (N, bool) {
	return v.num, v.kind == KindScalar
}

// AsVector returns v's vector payload.
func (v Value[N]) AsVector() (linalg.Vec4[N], bool) {
	return v.vec, v.kind == KindVector
}

// AsQuaternion returns v's quaternion payload.
func (v Value[N]) AsQuaternion() (linalg.Quat[N], bool) {
	return v.quat, v.kind == KindQuaternion
}

// AsMatrix returns v's matrix payload.
func (v Value[N]) AsMatrix() (linalg.Mat4[N], bool) {
	if v.kind != KindMatrix {
		return linalg.Mat4[N]{}, false
	}
	return *v.mat, true
}

// AsString returns v's string payload.
func (v Value[N]) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsFunction returns v's function payload.
func (v Value[N]) AsFunction() (Function, bool) {
	if v.kind != KindFunction {
		return Function{}, false
	}
	return Function{Name: v.str, Impl: v.fn}, true
}

// AsIdentifier returns the name v refers to.
func (v Value[N]) AsIdentifier() (string, bool) {
	return v.str, v.kind == KindIdentifier
}

// AsArray returns a copy of v's elements.
func (v Value[N]) AsArray() ([]Value[N], bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return append([]Value[N](nil), v.arr...), true
}

func (v Value[N]) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindScalar:
		return fmt.Sprint(v.num)
	case KindVector:
		return v.vec.String()
	case KindQuaternion:
		return v.quat.String()
	case KindMatrix:
		return v.mat.String()
	case KindString:
		return v.str
	case KindFunction:
		return "Function[" + v.str + "]"
	case KindIdentifier:
		return "Id[" + v.str + "]"
	case KindArray:
		var b strings.Builder
		b.WriteByte('{')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte('}')
		return b.String()
	}
	return "invalid " + v.kind.String()
}

// Equal reports whether two values have the same tag and payload. Scalars are
// compared with eq; functions compare by name.
func (v Value[N]) Equal(w Value[N], eq func(x, y N) bool) bool {
	if v.kind != w.kind {
		return false
	}
	vecEq := func(a, b linalg.Vec4[N]) bool {
		return eq(a[0], b[0]) && eq(a[1], b[1]) && eq(a[2], b[2]) && eq(a[3], b[3])
	}
	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		return eq(v.num, w.num)
	case KindVector:
		return vecEq(v.vec, w.vec)
	case KindQuaternion:
		return vecEq(v.quat.Vec(), w.quat.Vec())
	case KindMatrix:
		for i := range v.mat {
			if !vecEq(v.mat[i], w.mat[i]) {
				return false
			}
		}
		return true
	case KindString, KindFunction, KindIdentifier:
		return v.str == w.str
	case KindArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i], eq) {
				return false
			}
		}
		return true
	}
	return false
}

// EqualCells compares two cells exactly.
func EqualCells(a, b Cell) bool {
	return a.Equal(b, decimal.Decimal.Equal)
}

// convert maps the numeric payload of v through f. Non-numeric values pass
// through unchanged.
func convert[M, N any](v Value[M], f func(M) N) Value[N] {
	switch v.kind {
	case KindScalar:
		return Scalar(f(v.num))
	case KindVector:
		return Vector(convertVec(v.vec, f))
	case KindQuaternion:
		return Quaternion(linalg.QuatOf(convertVec(v.quat.Vec(), f)))
	case KindMatrix:
		var m linalg.Mat4[N]
		for i, row := range v.mat {
			m[i] = convertVec(row, f)
		}
		return Matrix(m)
	case KindArray:
		arr := make([]Value[N], len(v.arr))
		for i, e := range v.arr {
			arr[i] = convert(e, f)
		}
		return Value[N]{kind: KindArray, arr: arr}
	}
	return Value[N]{kind: v.kind, str: v.str, fn: v.fn}
}

func convertVec[M, N any](v linalg.Vec4[M], f func(M) N) linalg.Vec4[N] {
	return linalg.Vec4[N]{f(v[0]), f(v[1]), f(v[2]), f(v[3])}
}
