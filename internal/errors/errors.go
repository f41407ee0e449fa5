package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, missing backup, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, trash unavailable, etc.).
	ExitSystem = 2
)

// Re-exported helpers from github.com/cockroachdb/errors so callers only need
// to import this package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Errorf = crdb.Errorf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Join   = crdb.Join
)

// Sentinel errors for the failure taxonomy. Errors are tagged with one of
// these through [WithKind] and matched with [Is] or [KindOf].
var (
	// ErrNotFound indicates the requested archive, directory or entry does not exist.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidInput indicates a malformed argument: bad extension, name mismatch,
	// missing placeholder value.
	ErrInvalidInput = crdb.New("invalid input")

	// ErrIO indicates a create, read, write or walk failure on the filesystem.
	ErrIO = crdb.New("i/o failure")

	// ErrPolicyViolation indicates the request is well-formed but not allowed,
	// e.g. restoring from an unsupported archive format.
	ErrPolicyViolation = crdb.New("policy violation")

	// ErrMissingName indicates a required name field is missing.
	ErrMissingName = NewSentinel(KindInvalidInput, "name is required")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = NewSentinel(KindInvalidInput, "invalid configuration")
)

// Kind classifies an error for callers that branch on the failure type.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidInput
	KindIO
	KindPolicyViolation
)

var kindSentinels = map[Kind]error{
	KindNotFound:        ErrNotFound,
	KindInvalidInput:    ErrInvalidInput,
	KindIO:              ErrIO,
	KindPolicyViolation: ErrPolicyViolation,
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindInvalidInput:
		return "invalid-input"
	case KindIO:
		return "io-failure"
	case KindPolicyViolation:
		return "policy-violation"
	default:
		return "unknown"
	}
}

// kindError is a sentinel that belongs to a kind. It matches its own
// identity and the kind's sentinel, never another sentinel of the same kind.
type kindError struct {
	cause error
	kind  Kind
}

func (e *kindError) Error() string { return e.cause.Error() }

func (e *kindError) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel of e's kind.
func (e *kindError) Is(target error) bool {
	ref, ok := kindSentinels[e.kind]
	return ok && target == ref
}

// NewSentinel creates a package-level sentinel error of kind k. Wrapping it
// keeps both its identity and its kind:
//
//	var ErrGameNotFound = errors.NewSentinel(errors.KindNotFound, "game not found")
//	errors.Is(errors.Wrap(ErrGameNotFound, "x"), ErrGameNotFound) // true
//	errors.KindOf(errors.Wrap(ErrGameNotFound, "x"))              // KindNotFound
func NewSentinel(k Kind, msg string) error {
	return &kindError{cause: crdb.NewWithDepth(1, msg), kind: k}
}

// MarkAs tags err with sentinel so that Is(err, sentinel) holds, and with
// kind k. The message of err is left untouched.
func MarkAs(err, sentinel error, k Kind) error {
	if err == nil {
		return nil
	}
	return WithKind(crdb.Mark(err, sentinel), k)
}

// WithKind tags err with the sentinel for k. The message is left untouched.
// A nil err or KindUnknown returns err unchanged.
func WithKind(err error, k Kind) error {
	if err == nil {
		return nil
	}
	ref, ok := kindSentinels[k]
	if !ok {
		return err
	}
	return crdb.Mark(err, ref)
}

// NotFoundf creates a new error tagged KindNotFound.
func NotFoundf(format string, args ...any) error {
	return crdb.Mark(crdb.NewWithDepthf(1, format, args...), ErrNotFound)
}

// InvalidInputf creates a new error tagged KindInvalidInput.
func InvalidInputf(format string, args ...any) error {
	return crdb.Mark(crdb.NewWithDepthf(1, format, args...), ErrInvalidInput)
}

// PolicyViolationf creates a new error tagged KindPolicyViolation.
func PolicyViolationf(format string, args ...any) error {
	return crdb.Mark(crdb.NewWithDepthf(1, format, args...), ErrPolicyViolation)
}

// IOf wraps an OS error with a message and tags it KindIO.
// The underlying OS error text stays part of the message.
func IOf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return crdb.Mark(crdb.WrapWithDepthf(1, err, format, args...), ErrIO)
}

// KindOf reports the first kind found on err's chain, or KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range []Kind{KindInvalidInput, KindPolicyViolation, KindNotFound, KindIO} {
		if crdb.Is(err, kindSentinels[k]) {
			return k
		}
	}
	return KindUnknown
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: gamesl config init",
	}
}

// FromKind converts err into an ExitError whose code follows the error's kind.
// I/O failures and untagged errors map to ExitSystem, everything else to ExitUser.
// An err that already is an ExitError is returned as-is.
func FromKind(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr
	}

	switch KindOf(err) {
	case KindNotFound:
		return NewUserError(err, "Run: gamesl list <game> to see available backups")
	case KindInvalidInput:
		return NewUserError(err, "")
	case KindPolicyViolation:
		return NewUserError(err, "Only .zip backups can be restored")
	default:
		return NewSystemError(err, "Re-run with -vv for details")
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
