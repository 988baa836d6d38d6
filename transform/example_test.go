package transform_test

import (
	"fmt"

	"github.com/patchgraph/corepatch/ir"
	"github.com/patchgraph/corepatch/transform"
)

func ExampleRegisterBuiltins() {
	r := transform.NewRegistry()
	if err := transform.RegisterBuiltins(r); err != nil {
		panic(err)
	}

	gain, err := r.Get("gain")
	if err != nil {
		panic(err)
	}

	out, err := gain.Apply(ir.Number(2), map[string]ir.Value{"amount": ir.Number(1.5)}, transform.ApplyContext{})
	if err != nil {
		panic(err)
	}

	fmt.Println(out.AsNumber())
	// Output: 3
}
