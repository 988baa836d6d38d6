package blocks

import "errors"

// Sentinel errors for the blocks package. Callers branch via errors.Is;
// messages are never pattern-matched.
var (
	// ErrEmptyBlockType indicates a BlockDef with an empty Type was
	// submitted to Register.
	ErrEmptyBlockType = errors.New("blocks: empty block type")

	// ErrDuplicateBlockType indicates Register was called with a Type
	// already present in the registry.
	ErrDuplicateBlockType = errors.New("blocks: duplicate block type")

	// ErrNilCompile indicates a BlockDef with neither Compile nor
	// CompileV2 set.
	ErrNilCompile = errors.New("blocks: block def has no compile function")

	// ErrBothCompileFuncs indicates a BlockDef set both Compile and
	// CompileV2; a block is either legacy (V1) or builder-style (V2),
	// never both.
	ErrBothCompileFuncs = errors.New("blocks: block def sets both Compile and CompileV2")

	// ErrEmptySlotID indicates an input or output slot with an empty ID.
	ErrEmptySlotID = errors.New("blocks: empty slot id")

	// ErrDuplicateSlotID indicates two input slots, or two output slots,
	// on the same BlockDef share an ID.
	ErrDuplicateSlotID = errors.New("blocks: duplicate slot id")

	// ErrInvalidSlotType indicates a slot's TypeDesc fails IsValid.
	ErrInvalidSlotType = errors.New("blocks: invalid slot type")

	// ErrInvalidCombinePolicy indicates an input slot's CombinePolicy has
	// an unrecognized When or Mode value.
	ErrInvalidCombinePolicy = errors.New("blocks: invalid combine policy")

	// ErrUnknownBlockType indicates Get was called with a Type not
	// present in the registry.
	ErrUnknownBlockType = errors.New("blocks: unknown block type")

	// ErrMissingInput indicates a block's compile function was invoked
	// without a required input already resolved by the compiler.
	ErrMissingInput = errors.New("blocks: missing required input")

	// ErrNoDefaultSourceProvider indicates DefaultSourceProviderFor found
	// no registered provider for a (world, domain) pair.
	ErrNoDefaultSourceProvider = errors.New("blocks: no default source provider for type")
)
