package represent

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent/linalg"
)

// errOperands indicates an operator applied to values it has no overload for.
var errOperands = errors.New("invalid operands")

// machine runs RPN programs with one numeric backing.
type machine[N any, B Backing[N]] struct {
	b      B
	s      *store
	strict bool
	st     Stack[N]
}

// run evaluates an RPN program against the store.
func run[N any, B Backing[N]](b B, s *store, rpn TokenStream, strict bool) (Value[N], error) {
	if rpn.Len() == 0 {
		return Value[N]{}, &EmptyExpressionError{}
	}
	m := machine[N, B]{b: b, s: s, strict: strict}
	for i := 0; i < rpn.Len(); i++ {
		if err := m.step(rpn.At(i)); err != nil {
			tracer().Debugf("%s evaluation failed at token %d (%v): %v", b.Name(), i, rpn.At(i), err)
			return Value[N]{}, err
		}
	}
	if m.st.Len() != 1 {
		return Value[N]{}, &StackError{Want: 1, Have: m.st.Len()}
	}
	r, _ := m.st.Pop()
	return r, nil
}

func (m *machine[N, B]) step(tok Token) error {
	switch tok.Kind {
	case TokenRawValue:
		m.st.Push(Scalar(m.b.FromInt(int64(tok.Value))))
	case TokenStorageRef:
		c, err := m.s.lookup(m.s.storage[tok.Value])
		if err != nil {
			return err
		}
		m.st.Push(convert(c, m.b.FromDecimal))
	case TokenOperator:
		return m.operator(OpKind(tok.Value))
	case TokenFunctionIdentifier:
		return m.call(tok)
	case TokenVector, TokenQuaternion:
		args, err := m.scalars(4, tok)
		if err != nil {
			return err
		}
		v := linalg.Vec4[N]{args[0], args[1], args[2], args[3]}
		if tok.Kind == TokenVector {
			m.st.Push(Vector(v))
		} else {
			m.st.Push(Quaternion(linalg.QuatOf(v)))
		}
	case TokenMatrix:
		rows, err := m.st.PopN(4)
		if err != nil {
			return err
		}
		var mat linalg.Mat4[N]
		for i, row := range rows {
			v, ok := row.AsVector()
			if !ok {
				return &ArgumentError{Func: "matrix", Arg: i + 1, Want: KindVector, Got: row.Kind()}
			}
			mat[i] = v
		}
		m.st.Push(Matrix(mat))
	case TokenArray:
		elems, err := m.st.PopN(int(tok.Value))
		if err != nil {
			return err
		}
		for i, e := range elems {
			if e.Kind() != elems[0].Kind() {
				return &ArrayError{Index: i, Want: elems[0].Kind(), Got: e.Kind()}
			}
		}
		m.st.Push(Value[N]{kind: KindArray, arr: elems})
	default:
		panic("represent: invalid token " + tok.String() + " in RPN")
	}
	return nil
}

// scalars pops n scalar constructor arguments.
func (m *machine[N, B]) scalars(n int, tok Token) ([]N, error) {
	return scalarArgs(&m.st, n, m.s.markerName(tok))
}

func (m *machine[N, B]) call(tok Token) error {
	n := int(tok.Extra)
	c, err := m.s.lookup(m.s.storage[tok.Value])
	if err != nil {
		return err
	}
	f, ok := c.AsFunction()
	if !ok {
		return &TagError{Want: KindFunction, Got: c.Kind()}
	}
	if f.Impl == nil {
		return &NameError{Name: f.Name}
	}
	if !f.Impl.CanCall(n) {
		return &CallError{Col: -1, Func: f.Name, Len: n}
	}
	want := m.st.Len() - n + 1
	if err := m.b.Call(f.Impl, &m.st, n); err != nil {
		return fmt.Errorf("calling %s: %w", f.Name, err)
	}
	if m.st.Len() != want {
		return &StackError{Want: want, Have: m.st.Len()}
	}
	return nil
}

func (m *machine[N, B]) operator(op OpKind) error {
	if op.isUnary() {
		x, err := m.st.Pop()
		if err != nil {
			return err
		}
		r, err := unary(m.b, op, x)
		if errors.Is(err, errOperands) {
			return m.degrade(op, x.Kind(), KindNull)
		}
		if err != nil {
			return err
		}
		m.st.Push(r)
		return nil
	}
	args, err := m.st.PopN(2)
	if err != nil {
		return err
	}
	r, err := binary(m.b, op, args[0], args[1])
	if errors.Is(err, errOperands) {
		return m.degrade(op, args[0].Kind(), args[1].Kind())
	}
	if err != nil {
		return err
	}
	m.st.Push(r)
	return nil
}

// degrade handles operands with no overload. Strict machines fail;
// otherwise the result is Null.
func (m *machine[N, B]) degrade(op OpKind, l, r Kind) error {
	err := &OperandError{Op: op, Left: l, Right: r}
	if m.strict {
		return err
	}
	tracer().Errorf("%v; using null", err)
	m.st.Push(Null[N]())
	return nil
}

func unary[N any, B Backing[N]](b B, op OpKind, x Value[N]) (Value[N], error) {
	switch x.kind {
	case KindScalar, KindVector, KindQuaternion, KindMatrix:
	default:
		return Value[N]{}, errOperands
	}
	if op == OpUnaryPlus {
		return x, nil
	}
	switch x.kind {
	case KindScalar:
		return Scalar(b.Neg(x.num)), nil
	case KindVector:
		return Vector(linalg.NegVec[N](b, x.vec)), nil
	case KindQuaternion:
		return Quaternion(linalg.NegQuat[N](b, x.quat)), nil
	default:
		return Matrix(linalg.NegMat[N](b, *x.mat)), nil
	}
}

func binary[N any, B Backing[N]](b B, op OpKind, x, y Value[N]) (Value[N], error) {
	div := func(v N) N { return b.Div(v, y.num) }
	// Only the overloads of / check the divisor, so operands without one
	// still degrade.
	zero := func() (Value[N], error) {
		return Value[N]{}, &DomainError{X: fmt.Sprint(y.num), Arg: 2, Func: "/"}
	}
	switch {
	case x.kind == KindScalar && y.kind == KindScalar:
		switch op {
		case OpPlus:
			return Scalar(b.Add(x.num, y.num)), nil
		case OpMinus:
			return Scalar(b.Sub(x.num, y.num)), nil
		case OpMultiply:
			return Scalar(b.Mul(x.num, y.num)), nil
		case OpDivide:
			if b.IsZero(y.num) {
				return zero()
			}
			return Scalar(b.Div(x.num, y.num)), nil
		}

	case x.kind == KindVector && y.kind == KindVector:
		switch op {
		case OpPlus:
			return Vector(linalg.AddVec[N](b, x.vec, y.vec)), nil
		case OpMinus:
			return Vector(linalg.SubVec[N](b, x.vec, y.vec)), nil
		}
	case x.kind == KindVector && y.kind == KindScalar:
		switch op {
		case OpPlus:
			return Vector(x.vec.Map(func(v N) N { return b.Add(v, y.num) })), nil
		case OpMinus:
			return Vector(x.vec.Map(func(v N) N { return b.Sub(v, y.num) })), nil
		case OpMultiply:
			return Vector(linalg.ScaleVec[N](b, x.vec, y.num)), nil
		case OpDivide:
			if b.IsZero(y.num) {
				return zero()
			}
			return Vector(x.vec.Map(div)), nil
		}
	case x.kind == KindScalar && y.kind == KindVector:
		if op == OpMultiply {
			return Vector(linalg.ScaleVec[N](b, y.vec, x.num)), nil
		}

	case x.kind == KindQuaternion && y.kind == KindQuaternion:
		switch op {
		case OpPlus:
			return Quaternion(linalg.AddQuat[N](b, x.quat, y.quat)), nil
		case OpMinus:
			return Quaternion(linalg.SubQuat[N](b, x.quat, y.quat)), nil
		case OpMultiply:
			return Quaternion(linalg.MulQuat[N](b, x.quat, y.quat)), nil
		}
	case x.kind == KindQuaternion && y.kind == KindScalar:
		switch op {
		case OpMultiply:
			return Quaternion(linalg.ScaleQuat[N](b, x.quat, y.num)), nil
		case OpDivide:
			if b.IsZero(y.num) {
				return zero()
			}
			return Quaternion(linalg.QuatOf(x.quat.Vec().Map(div))), nil
		}
	case x.kind == KindScalar && y.kind == KindQuaternion:
		if op == OpMultiply {
			return Quaternion(linalg.ScaleQuat[N](b, y.quat, x.num)), nil
		}

	case x.kind == KindMatrix && y.kind == KindMatrix:
		switch op {
		case OpPlus:
			return Matrix(linalg.AddMat[N](b, *x.mat, *y.mat)), nil
		case OpMinus:
			return Matrix(linalg.SubMat[N](b, *x.mat, *y.mat)), nil
		case OpMultiply:
			return Matrix(linalg.MulMat[N](b, *x.mat, *y.mat)), nil
		}
	case x.kind == KindMatrix && y.kind == KindVector:
		if op == OpMultiply {
			return Vector(linalg.MulMatVec[N](b, *x.mat, y.vec)), nil
		}
	case x.kind == KindMatrix && y.kind == KindScalar:
		switch op {
		case OpMultiply:
			return Matrix(linalg.ScaleMat[N](b, *x.mat, y.num)), nil
		case OpDivide:
			if b.IsZero(y.num) {
				return zero()
			}
			return Matrix(x.mat.Map(div)), nil
		}
	case x.kind == KindScalar && y.kind == KindMatrix:
		if op == OpMultiply {
			return Matrix(linalg.ScaleMat[N](b, *y.mat, x.num)), nil
		}

	case x.kind == KindString && y.kind == KindString:
		if op == OpPlus {
			return String[N](x.str + y.str), nil
		}
	}
	return Value[N]{}, errOperands
}

// canonical converts a result to a cell.
func canonical[N any, B Backing[N]](b B, v Value[N]) (Cell, error) {
	var bad *DomainError
	c := convert(v, func(x N) decimal.Decimal {
		d, ok := b.ToDecimal(x)
		if !ok && bad == nil {
			bad = &DomainError{X: fmt.Sprint(x), Func: b.Name() + " result"}
		}
		return d
	})
	if bad != nil {
		return Cell{}, bad
	}
	return c, nil
}
