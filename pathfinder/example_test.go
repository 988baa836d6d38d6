package pathfinder_test

import (
	"fmt"

	"github.com/patchgraph/corepatch/pathfinder"
	"github.com/patchgraph/corepatch/transform"
	"github.com/patchgraph/corepatch/typesystem"
)

func ExampleFinder_Find() {
	r := transform.NewRegistry()
	if err := transform.RegisterBuiltins(r); err != nil {
		panic(err)
	}

	f, err := pathfinder.NewFinder(r)
	if err != nil {
		panic(err)
	}

	scalarFloat := typesystem.TypeDesc{World: typesystem.Scalar, Domain: typesystem.DomainFloat, Category: typesystem.Core}
	signalFloat := typesystem.TypeDesc{World: typesystem.Signal, Domain: typesystem.DomainFloat, Category: typesystem.Core}

	path, found, err := f.Find(scalarFloat, signalFloat, pathfinder.Context{})
	if err != nil {
		panic(err)
	}

	fmt.Println(found, len(path.Steps), path.Steps[0].TransformID)
	// Output: true 1 ConstToSignal
}
