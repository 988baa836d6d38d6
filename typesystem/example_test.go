package typesystem_test

import (
	"fmt"

	"github.com/patchgraph/corepatch/typesystem"
)

func ExampleAssignable() {
	src := typesystem.TypeDesc{World: typesystem.Scalar, Domain: typesystem.DomainFloat, Category: typesystem.Core}
	dst := typesystem.TypeDesc{World: typesystem.Scalar, Domain: typesystem.DomainFloat, Category: typesystem.Internal}

	fmt.Println(typesystem.Assignable(src, dst))
	fmt.Println(typesystem.Assignable(dst, src))
	// Output:
	// true
	// false
}
