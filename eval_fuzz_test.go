//go:build go1.18
// +build go1.18

package represent_test

import (
	"testing"

	"github.com/zephyrtronium/represent"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("increment(x) / 0")
	f.Add("[x, 1, 2, 3] + q[1,2,3,4]")
	f.Add("dup(`s`) + strlen(`s`)")
	f.Fuzz(func(t *testing.T, s string) {
		ctx, err := represent.NewContext(s, represent.SetVar("x", represent.Int(1)))
		if err != nil {
			t.Fatal(err)
		}
		ctx.Evaluate()
		represent.EvaluateWith[float64](ctx, represent.Float64{})
		represent.EvaluateWith[float32](ctx, represent.Float32{})
	})
}
