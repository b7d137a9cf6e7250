// Package status defines the closed outcome taxonomy returned by every
// core operation, from flag parsing through worker invocation.
package status

// Status is a closed enumeration of operation outcomes. The zero value is
// Success so a freshly declared Status never silently reads as a failure.
type Status int

const (
	SUCCESS Status = iota
	INVALID_ARGS
	NOT_FOUND
	IO
	EXEC_FAILED
	BUFFER_TOO_SMALL
	MEMORY_ALLOC
	CONFIG_READ
	INIT_FAILED
	GENERAL
)

var names = map[Status]string{
	SUCCESS:          "SUCCESS",
	INVALID_ARGS:     "INVALID_ARGS",
	NOT_FOUND:        "NOT_FOUND",
	IO:               "IO",
	EXEC_FAILED:      "EXEC_FAILED",
	BUFFER_TOO_SMALL: "BUFFER_TOO_SMALL",
	MEMORY_ALLOC:     "MEMORY_ALLOC",
	CONFIG_READ:      "CONFIG_READ",
	INIT_FAILED:      "INIT_FAILED",
	GENERAL:          "GENERAL",
}

// String renders the status's symbolic name.
func (s Status) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// Error satisfies the error interface so a Status can flow through normal
// Go error handling while remaining a closed, comparable value. A SUCCESS
// status formatted as an error still reports its name — callers that care
// about success should check the Status directly, not its error-ness.
func (s Status) Error() string {
	return s.String()
}

// OK reports whether s represents a successful outcome.
func (s Status) OK() bool {
	return s == SUCCESS
}

// MapExitCode folds a worker's process/function exit code into the status
// taxonomy: zero is the sole success indicator, anything else is
// EXEC_FAILED. This is the one and only place exit-code-to-status mapping
// happens, so the rule stays uniform across every worker call site.
func MapExitCode(exitCode int) Status {
	if exitCode == 0 {
		return SUCCESS
	}
	return EXEC_FAILED
}
