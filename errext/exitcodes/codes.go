// Package exitcodes contains the constants representing the possible
// process exit error codes.
package exitcodes

// ExitCode is just a type representing a process exit code.
type ExitCode uint8

// List of exit codes. The numbering leaves room below for the
// conventional shell codes.
const (
	InvalidConfig   ExitCode = 104
	ExternalAbort   ExitCode = 105
	InvalidSelector ExitCode = 107
	GoPanic         ExitCode = 109
)
