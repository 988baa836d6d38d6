package txn

import "errors"

var (
	// ErrNilBlockRegistry indicates ApplyTx was called with a nil registry,
	// needed to validate OpAddBlock/OpSetTimeRoot's Type fields.
	ErrNilBlockRegistry = errors.New("txn: block registry is nil")

	// ErrUnknownOpKind indicates an Op's Kind is outside the closed
	// vocabulary add/remove block, add/remove edge, set-params,
	// set-transforms, set-combine, set-time-root, many-op.
	ErrUnknownOpKind = errors.New("txn: unknown op kind")

	// ErrEmptyMany indicates an OpMany carried zero nested ops.
	ErrEmptyMany = errors.New("txn: many-op has no nested ops")

	// ErrNoTimeRoot indicates OpSetTimeRoot ran against a patch with no
	// existing TimeRoot block to retarget.
	ErrNoTimeRoot = errors.New("txn: patch has no time root block")

	// ErrUnregisteredTimeRootType indicates OpSetTimeRoot named a Type not
	// registered with Role == blocks.RoleTimeRoot.
	ErrUnregisteredTimeRootType = errors.New("txn: set-time-root type is not a registered time root")
)
