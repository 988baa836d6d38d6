package timemodel

import "errors"

// Sentinel errors for the timemodel package.
var (
	// ErrMissingTimeRoot indicates no block with role=TimeRoot was found.
	ErrMissingTimeRoot = errors.New("timemodel: missing time root")

	// ErrMultipleTimeRoots indicates more than one block with
	// role=TimeRoot was found.
	ErrMultipleTimeRoots = errors.New("timemodel: multiple time roots")

	// ErrTimeRootHasInput indicates the TimeRoot block has an incoming
	// enabled edge, which spec §4.10 forbids ("a TimeRoot has no
	// incoming edges").
	ErrTimeRootHasInput = errors.New("timemodel: time root has an incoming edge")

	// ErrUnknownTimeRootType indicates a block tagged role=TimeRoot has
	// a Type this package does not recognize as one of the three
	// TimeRoot variants.
	ErrUnknownTimeRootType = errors.New("timemodel: unknown time root block type")

	// ErrReservedBusTypeMismatch indicates a reserved bus id is wired to
	// a BusBlock whose declared type does not match the bus's required
	// shape (spec §6 "wrong type is a fatal error (TM-103)").
	ErrReservedBusTypeMismatch = errors.New("timemodel: reserved bus type mismatch")
)
