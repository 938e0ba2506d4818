package linalg

// AddVec returns v + w.
func AddVec[T any, F Field[T]](f F, v, w Vec4[T]) Vec4[T] {
	return v.Zip(w, f.Add)
}

// SubVec returns v - w.
func SubVec[T any, F Field[T]](f F, v, w Vec4[T]) Vec4[T] {
	return v.Zip(w, f.Sub)
}

// NegVec returns -v.
func NegVec[T any, F Field[T]](f F, v Vec4[T]) Vec4[T] {
	return v.Map(f.Neg)
}

// ScaleVec returns v with each component multiplied by s.
func ScaleVec[T any, F Field[T]](f F, v Vec4[T], s T) Vec4[T] {
	return v.Map(func(x T) T { return f.Mul(x, s) })
}

// Dot returns the inner product of v and w.
func Dot[T any, F Field[T]](f F, v, w Vec4[T]) T {
	r := f.Mul(v[0], w[0])
	for i := 1; i < 4; i++ {
		r = f.Add(r, f.Mul(v[i], w[i]))
	}
	return r
}

// AddQuat returns p + q.
func AddQuat[T any, F Field[T]](f F, p, q Quat[T]) Quat[T] {
	return QuatOf(AddVec(f, p.Vec(), q.Vec()))
}

// SubQuat returns p - q.
func SubQuat[T any, F Field[T]](f F, p, q Quat[T]) Quat[T] {
	return QuatOf(SubVec(f, p.Vec(), q.Vec()))
}

// NegQuat returns -q.
func NegQuat[T any, F Field[T]](f F, q Quat[T]) Quat[T] {
	return QuatOf(NegVec(f, q.Vec()))
}

// ScaleQuat returns q with each component multiplied by s.
func ScaleQuat[T any, F Field[T]](f F, q Quat[T], s T) Quat[T] {
	return QuatOf(ScaleVec(f, q.Vec(), s))
}

// MulQuat returns the Hamilton product pq.
func MulQuat[T any, F Field[T]](f F, p, q Quat[T]) Quat[T] {
	sum := func(a, b, c, d T) T { return f.Add(f.Add(a, b), f.Add(c, d)) }
	return Quat[T]{
		W: sum(f.Mul(p.W, q.W), f.Neg(f.Mul(p.X, q.X)), f.Neg(f.Mul(p.Y, q.Y)), f.Neg(f.Mul(p.Z, q.Z))),
		X: sum(f.Mul(p.W, q.X), f.Mul(p.X, q.W), f.Mul(p.Y, q.Z), f.Neg(f.Mul(p.Z, q.Y))),
		Y: sum(f.Mul(p.W, q.Y), f.Neg(f.Mul(p.X, q.Z)), f.Mul(p.Y, q.W), f.Mul(p.Z, q.X)),
		Z: sum(f.Mul(p.W, q.Z), f.Mul(p.X, q.Y), f.Neg(f.Mul(p.Y, q.X)), f.Mul(p.Z, q.W)),
	}
}

// AddMat returns m + n.
func AddMat[T any, F Field[T]](f F, m, n Mat4[T]) Mat4[T] {
	return m.Zip(n, f.Add)
}

// SubMat returns m - n.
func SubMat[T any, F Field[T]](f F, m, n Mat4[T]) Mat4[T] {
	return m.Zip(n, f.Sub)
}

// NegMat returns -m.
func NegMat[T any, F Field[T]](f F, m Mat4[T]) Mat4[T] {
	return m.Map(f.Neg)
}

// ScaleMat returns m with each element multiplied by s.
func ScaleMat[T any, F Field[T]](f F, m Mat4[T], s T) Mat4[T] {
	return m.Map(func(x T) T { return f.Mul(x, s) })
}

// MulMat returns the matrix product mn.
func MulMat[T any, F Field[T]](f F, m, n Mat4[T]) Mat4[T] {
	var r Mat4[T]
	for i := range r {
		for j := range r[i] {
			r[i][j] = Dot(f, m[i], n.Col(j))
		}
	}
	return r
}

// MulMatVec returns the product of m and the column vector v.
func MulMatVec[T any, F Field[T]](f F, m Mat4[T], v Vec4[T]) Vec4[T] {
	var r Vec4[T]
	for i := range r {
		r[i] = Dot(f, m[i], v)
	}
	return r
}
