package represent_test

import (
	"fmt"

	"github.com/zephyrtronium/represent"
)

func Example() {
	ctx, err := represent.NewContext("x / 10 + y", represent.SetVar("x", represent.Int(1)), represent.SetVar("y", represent.Int(2)))
	if err != nil {
		panic(err)
	}
	d, _ := ctx.Evaluate()
	f64, _ := represent.EvaluateWith[float64](ctx, represent.Float64{})
	f32, _ := represent.EvaluateWith[float32](ctx, represent.Float32{})
	fmt.Println("decimal:", d)
	fmt.Println("float64:", f64)
	fmt.Println("float32:", f32)

	ctx.Define("y", represent.Int(5))
	d, _ = ctx.Evaluate()
	fmt.Println("decimal:", d)

	// Output:
	// decimal: 2.1
	// float64: 2.100000000000000088817841970012523233890533447265625
	// float32: 2.099999904632568359375
	// decimal: 5.1
}
