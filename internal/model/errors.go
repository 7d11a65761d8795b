package model

import "github.com/cockroachdb/errors"

// Error taxonomy for a translation run. Use errors.Is against these; the
// concrete errors carry the offending path or tag as wrapped context.
var (
	// ErrMalformedTypeNode marks a type expression with a missing attribute
	// or child. Fatal.
	ErrMalformedTypeNode = errors.New("malformed type node")

	// ErrUnsupportedTypeKind marks a type that resolved but has no printable
	// form, such as an anonymous structure or an inline class reference. Fatal.
	ErrUnsupportedTypeKind = errors.New("unsupported type kind")

	// ErrUnrecognizedTopLevelNode marks a root child that is not a class
	// definition. Reported as a Diagnostic and skipped.
	ErrUnrecognizedTopLevelNode = errors.New("unrecognized top-level node")

	// ErrDuplicatePath marks two definitions sharing one fully-qualified path
	// when the duplicate policy is "reject".
	ErrDuplicatePath = errors.New("duplicate definition path")
)
