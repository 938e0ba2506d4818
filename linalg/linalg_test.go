package linalg_test

import (
	"testing"

	"github.com/zephyrtronium/represent/linalg"
)

type ints struct{}

func (ints) Add(x, y int) int { return x + y }
func (ints) Sub(x, y int) int { return x - y }
func (ints) Mul(x, y int) int { return x * y }
func (ints) Neg(x int) int    { return -x }

func TestVec(t *testing.T) {
	f := ints{}
	v := linalg.Vec4[int]{1, 2, 3, 4}
	w := linalg.Vec4[int]{2, 3, 4, 5}
	cases := []struct {
		name string
		got  linalg.Vec4[int]
		want linalg.Vec4[int]
	}{
		{"add", linalg.AddVec[int](f, v, w), linalg.Vec4[int]{3, 5, 7, 9}},
		{"sub", linalg.SubVec[int](f, v, w), linalg.Vec4[int]{-1, -1, -1, -1}},
		{"neg", linalg.NegVec[int](f, v), linalg.Vec4[int]{-1, -2, -3, -4}},
		{"scale", linalg.ScaleVec[int](f, v, 3), linalg.Vec4[int]{3, 6, 9, 12}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Errorf("wrong result: want %v, got %v", c.want, c.got)
			}
		})
	}
	if d := linalg.Dot[int](f, v, w); d != 40 {
		t.Errorf("wrong dot product: want 40, got %d", d)
	}
}

func TestQuat(t *testing.T) {
	f := ints{}
	one := linalg.Quat[int]{W: 1}
	i := linalg.Quat[int]{X: 1}
	j := linalg.Quat[int]{Y: 1}
	k := linalg.Quat[int]{Z: 1}
	cases := []struct {
		name string
		got  linalg.Quat[int]
		want linalg.Quat[int]
	}{
		{"1*i", linalg.MulQuat[int](f, one, i), i},
		{"i*j", linalg.MulQuat[int](f, i, j), k},
		{"j*k", linalg.MulQuat[int](f, j, k), i},
		{"k*i", linalg.MulQuat[int](f, k, i), j},
		{"j*i", linalg.MulQuat[int](f, j, i), linalg.NegQuat[int](f, k)},
		{"i*i", linalg.MulQuat[int](f, i, i), linalg.Quat[int]{W: -1}},
		{"add", linalg.AddQuat[int](f, linalg.Quat[int]{1, 2, 3, 4}, linalg.Quat[int]{4, 3, 2, 1}), linalg.Quat[int]{5, 5, 5, 5}},
		{"scale", linalg.ScaleQuat[int](f, linalg.Quat[int]{1, 2, 3, 4}, 2), linalg.Quat[int]{2, 4, 6, 8}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Errorf("wrong result: want %v, got %v", c.want, c.got)
			}
		})
	}
}

func TestMat(t *testing.T) {
	f := ints{}
	id := linalg.Mat4[int]{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	m := linalg.Mat4[int]{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16}}
	if r := linalg.MulMat[int](f, id, m); r != m {
		t.Errorf("identity times m: want %v, got %v", m, r)
	}
	if r := linalg.MulMat[int](f, m, id); r != m {
		t.Errorf("m times identity: want %v, got %v", m, r)
	}
	v := linalg.Vec4[int]{1, 1, 1, 1}
	if r, want := linalg.MulMatVec[int](f, m, v), (linalg.Vec4[int]{10, 26, 42, 58}); r != want {
		t.Errorf("m times v: want %v, got %v", want, r)
	}
	if r, want := linalg.AddMat[int](f, m, id).Col(0), (linalg.Vec4[int]{2, 5, 9, 13}); r != want {
		t.Errorf("column of m + id: want %v, got %v", want, r)
	}
	if r := linalg.SubMat[int](f, m, m); r != (linalg.Mat4[int]{}) {
		t.Errorf("m - m: want zero, got %v", r)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"vec", linalg.Vec4[int]{1, 2, 3, 4}.String(), "[1, 2, 3, 4]"},
		{"quat", linalg.Quat[int]{1, 2, 3, 4}.String(), "q[1, 2, 3, 4]"},
		{"mat", linalg.Mat4[int]{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}}.String(), "[[1, 0, 0, 0]; [0, 1, 0, 0]; [0, 0, 1, 0]; [0, 0, 0, 1]]"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Errorf("wrong string: want %q, got %q", c.want, c.got)
			}
		})
	}
}
