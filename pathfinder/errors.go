package pathfinder

import "errors"

// ErrNilRegistry indicates NewFinder was called with a nil transform.Registry.
var ErrNilRegistry = errors.New("pathfinder: nil registry")
