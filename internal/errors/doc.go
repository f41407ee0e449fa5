// Package errors provides error handling conventions for gamesl.
//
// It re-exports the helpers of github.com/cockroachdb/errors ([Wrap], [Wrapf],
// [Newf], [Is], [As], [Mark]) and layers a small failure taxonomy on top:
//
//   - [ErrNotFound]: an archive, target directory or entry does not exist
//   - [ErrInvalidInput]: bad extension, name/entity mismatch, missing placeholder
//   - [ErrIO]: create, read, write or walk failure (OS error text is kept)
//   - [ErrPolicyViolation]: the request is not allowed, e.g. restoring a .7z
//
// Kinds are attached with [WithKind] (or the NotFoundf/InvalidInputf/
// PolicyViolationf/IOf constructors) using cockroachdb marks, so the message
// is never rewritten and the kind survives further wrapping:
//
//	err := errors.Wrap(errors.NotFoundf("backup %s not found", name), "restoring")
//	errors.Is(err, errors.ErrNotFound) // true
//	errors.KindOf(err)                 // KindNotFound
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, unknown game, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, trash, etc.)
//
// [FromKind] converts a tagged error into an [ExitError] with the matching code.
package errors
