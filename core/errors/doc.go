// Package errors defines the failure taxonomy of the config updater.
//
// Every failure that terminates an invocation carries an ErrorCode:
//   - NOT_FOUND: an input document does not exist
//   - UNWRITABLE: the current document cannot be overwritten
//   - MALFORMED_INPUT: a document is not valid YAML or its root is not a mapping
//   - IO_ERROR: any other filesystem failure
//
// Callers compare with the standard library:
//
//	if errors.Is(err, apperrors.ErrNotFound) {
//	    ...
//	}
//
// Type mismatches between the two documents are not errors; the reconciler
// resolves them by letting the incoming value win.
package errors
