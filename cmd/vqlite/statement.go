package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vqlite/vtable"
)

// Parse errors reported by the CLI before the core is ever invoked.
var (
	ErrSyntaxError           = errors.New("syntax error")
	ErrNegativeID            = errors.New("id must not be negative")
	ErrStringTooLong         = errors.New("string is too long")
	ErrUnrecognizedStatement = errors.New("unrecognized keyword at start of")
)

type statementType int

const (
	statementInsert statementType = iota
	statementSelect
)

type statement struct {
	kind statementType
	row  vtable.Row
}

// prepareStatement classifies a line as insert/select and, for insert,
// validates and parses the row fields without touching the engine.
func prepareStatement(line string) (statement, error) {
	switch {
	case strings.HasPrefix(line, "insert"):
		return prepareInsert(line)
	case line == "select":
		return statement{kind: statementSelect}, nil
	default:
		return statement{}, fmt.Errorf("%w: %q", ErrUnrecognizedStatement, line)
	}
}

// prepareInsert parses "insert <id> <username> <email>", rejecting
// negative ids, over-length strings, and malformed arity before the
// engine is ever called.
func prepareInsert(line string) (statement, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return statement{}, ErrSyntaxError
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return statement{}, ErrSyntaxError
	}
	if id < 0 {
		return statement{}, ErrNegativeID
	}

	username, email := fields[2], fields[3]
	if len(username) > vtable.ColumnUsernameSize {
		return statement{}, ErrStringTooLong
	}
	if len(email) > vtable.ColumnEmailSize {
		return statement{}, ErrStringTooLong
	}

	return statement{
		kind: statementInsert,
		row:  vtable.Row{ID: uint32(id), Username: username, Email: email},
	}, nil
}
