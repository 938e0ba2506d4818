package represent_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent"
)

type nargin struct{}

func (nargin) CanCall(n int) bool {
	return true
}

func (nargin) CallDecimal(st *represent.Stack[decimal.Decimal], n int, places int32) error {
	if _, err := st.PopN(n); err != nil {
		return err
	}
	st.Push(represent.Int(int64(n)))
	return nil
}

func (nargin) CallFloat64(st *represent.Stack[float64], n int) error {
	if _, err := st.PopN(n); err != nil {
		return err
	}
	st.Push(represent.Scalar(float64(n)))
	return nil
}

func (nargin) CallFloat32(st *represent.Stack[float32], n int) error {
	if _, err := st.PopN(n); err != nil {
		return err
	}
	st.Push(represent.Scalar(float32(n)))
	return nil
}

func ExampleFunc() {
	funcs := represent.WithFuncs(map[string]represent.Func{"nargin": nargin{}})
	for _, src := range []string{"nargin()", "nargin(100)", "nargin(3, 2, 1)", "nargin(`a`, [1,2,3,4])"} {
		r, err := represent.Eval(src, funcs)
		fmt.Println(src, "=", r, err)
	}

	// Output:
	// nargin() = 0 <nil>
	// nargin(100) = 1 <nil>
	// nargin(3, 2, 1) = 3 <nil>
	// nargin(`a`, [1,2,3,4]) = 2 <nil>
}
