package diag

import "fmt"

// CompileError is the structured diagnostic spec §4.11 requires. It
// implements error and Unwrap against the Code's sentinel, so callers may
// branch with errors.Is(err, diag.SentinelFor(diag.CodeTypeMismatch))
// without parsing Message.
type CompileError struct {
	Code      Code
	Severity  Severity
	Title     string
	Message   string
	Details   map[string]string
	Locations []Location
	Help      string
}

// New builds a CompileError at SeverityError for code. It does not check
// that code is one of the package's Code constants.
func New(code Code, title, message string, locations ...Location) CompileError {
	return CompileError{
		Code:      code,
		Severity:  SeverityError,
		Title:     title,
		Message:   message,
		Locations: locations,
	}
}

// Warning builds a CompileError at SeverityWarning.
func Warning(code Code, title, message string, locations ...Location) CompileError {
	e := New(code, title, message, locations...)
	e.Severity = SeverityWarning

	return e
}

// WithDetails returns a copy of e with Details set.
func (e CompileError) WithDetails(details map[string]string) CompileError {
	e.Details = details

	return e
}

// WithHelp returns a copy of e with Help set.
func (e CompileError) WithHelp(help string) CompileError {
	e.Help = help

	return e
}

// Error implements error.
func (e CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the sentinel error this Code wraps, so errors.Is works
// against the package-level taxonomy sentinels.
func (e CompileError) Unwrap() error {
	return sentinelFor[e.Code]
}

// SentinelFor returns the sentinel error associated with code, or nil if
// code is outside the closed taxonomy.
func SentinelFor(code Code) error {
	return sentinelFor[code]
}

// IsWarning reports whether e is a warning rather than a fatal error.
func (e CompileError) IsWarning() bool {
	return e.Severity == SeverityWarning
}
