package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the expected failures of a catalog operation.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindNoMatch            Kind = "no_match"
	KindIdentifierMismatch Kind = "identifier_mismatch"
	KindValidation         Kind = "validation"
	KindConflict           Kind = "conflict"
)

// Error is a recoverable, caller-facing failure. Anything that is not an
// *Error coming out of the engine is a store failure.
type Error struct {
	Kind    Kind
	Message string

	// Missing lists the table names that did not resolve on attach.
	Missing []string
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the kind of a catalog error, or "" for any other error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsNoMatch(err error) bool { return KindOf(err) == KindNoMatch }

func IsConflict(err error) bool { return KindOf(err) == KindConflict }

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func noMatch(format string, args ...any) *Error {
	return &Error{Kind: KindNoMatch, Message: fmt.Sprintf(format, args...)}
}

func validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func idMismatch(pathID, bodyID int64) *Error {
	return &Error{
		Kind:    KindIdentifierMismatch,
		Message: fmt.Sprintf("id in path (%d) and body (%d) do not match", pathID, bodyID),
	}
}

// missingSides reports the unresolved sides of an attach. A single missing
// table reads "no record found in works with the given id"; two read
// "no record found in works and genres with the given ids".
func missingSides(tables ...string) *Error {
	suffix := "id"
	if len(tables) > 1 {
		suffix = "ids"
	}
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("no record found in %s with the given %s", strings.Join(tables, " and "), suffix),
		Missing: tables,
	}
}
