// Package linalg provides the small fixed-size vector, quaternion, and matrix
// types used by expression values. The types are generic over their element
// type; arithmetic is parameterized by a Field which supplies the element
// operations, so the same code serves exact decimals and machine floats.
package linalg

import (
	"fmt"
	"strings"
)

// Field supplies arithmetic on elements of type T.
type Field[T any] interface {
	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Neg(x T) T
}

// Vec4 is a four-component vector.
type Vec4[T any] [4]T

// Quat is a quaternion W + Xi + Yj + Zk.
type Quat[T any] struct {
	W, X, Y, Z T
}

// Mat4 is a 4×4 matrix stored as rows.
type Mat4[T any] [4]Vec4[T]

// Map applies f to each component of v.
func (v Vec4[T]) Map(f func(T) T) Vec4[T] {
	return Vec4[T]{f(v[0]), f(v[1]), f(v[2]), f(v[3])}
}

// Zip combines corresponding components of v and w with f.
func (v Vec4[T]) Zip(w Vec4[T], f func(T, T) T) Vec4[T] {
	return Vec4[T]{f(v[0], w[0]), f(v[1], w[1]), f(v[2], w[2]), f(v[3], w[3])}
}

func (v Vec4[T]) String() string {
	var b strings.Builder
	writeVec(&b, v)
	return b.String()
}

// Vec returns the components of q in W, X, Y, Z order.
func (q Quat[T]) Vec() Vec4[T] {
	return Vec4[T]{q.W, q.X, q.Y, q.Z}
}

// QuatOf makes a quaternion from components in W, X, Y, Z order.
func QuatOf[T any](v Vec4[T]) Quat[T] {
	return Quat[T]{W: v[0], X: v[1], Y: v[2], Z: v[3]}
}

func (q Quat[T]) String() string {
	return "q" + q.Vec().String()
}

// Map applies f to each element of m.
func (m Mat4[T]) Map(f func(T) T) Mat4[T] {
	return Mat4[T]{m[0].Map(f), m[1].Map(f), m[2].Map(f), m[3].Map(f)}
}

// Zip combines corresponding elements of m and n with f.
func (m Mat4[T]) Zip(n Mat4[T], f func(T, T) T) Mat4[T] {
	return Mat4[T]{m[0].Zip(n[0], f), m[1].Zip(n[1], f), m[2].Zip(n[2], f), m[3].Zip(n[3], f)}
}

// Col returns column j of m.
func (m Mat4[T]) Col(j int) Vec4[T] {
	return Vec4[T]{m[0][j], m[1][j], m[2][j], m[3][j]}
}

func (m Mat4[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, row := range m {
		if i > 0 {
			b.WriteString("; ")
		}
		writeVec(&b, row)
	}
	b.WriteByte(']')
	return b.String()
}

func writeVec[T any](b *strings.Builder, v Vec4[T]) {
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(b, x)
	}
	b.WriteByte(']')
}
