package main

import (
	"errors"

	"sqlterm/internal/errs"
	"sqlterm/internal/sqlquery"
)

// asDispatchError translates a sqlquery parse/validation error into the
// errs taxonomy the rest of sqlterm's error handling (status line, debug
// log) is written against. sqlquery's errors are parser-internal: they
// carry a token Position rather than errs.ParseError's display Column, and
// its UnknownTableError has no Suggestion field. Keeping the two taxonomies
// separate lets the parser package stay ignorant of how a caller displays
// an error, at the cost of this one boundary translation.
func asDispatchError(err error) error {
	if err == nil {
		return nil
	}

	var parseErr *sqlquery.ParseError
	if errors.As(err, &parseErr) {
		return &errs.ParseError{Message: parseErr.Message, Column: parseErr.Position}
	}

	var unknownCol *sqlquery.UnknownColumnError
	if errors.As(err, &unknownCol) {
		return &errs.UnknownColumnError{Column: unknownCol.Column, Suggestion: unknownCol.Suggestion}
	}

	var unknownTable *sqlquery.UnknownTableError
	if errors.As(err, &unknownTable) {
		return &errs.UnknownTableError{Table: unknownTable.Table}
	}

	var typeErr *sqlquery.TypeError
	if errors.As(err, &typeErr) {
		return &errs.TypeError{Message: typeErr.Message}
	}

	return err
}
