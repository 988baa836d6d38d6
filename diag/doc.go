// Package diag implements the structured compiler/runtime diagnostics
// spec §4.11 requires: CompileError{code, severity, title, message,
// details, locations, help}, a closed taxonomy of codes, and Location
// values referencing blocks, edges, ports, buses, or SCC node sets so the
// UI can jump directly to the offending graph element.
//
// CompileError elevates dfs.ErrNeighborFetch's wrap-with-context
// convention to a struct, because the UI needs machine-readable fields
// (Code, Locations), not just a formatted string. It still implements
// error and Unwrap so compiler code can branch with errors.Is against the
// taxonomy's sentinel codes exactly as the rest of the module does.
package diag
