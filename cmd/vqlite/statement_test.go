package main

import (
	"errors"
	"testing"
)

func TestPrepareStatementSelect(t *testing.T) {
	stmt, err := prepareStatement("select")
	if err != nil {
		t.Fatalf("prepareStatement(select): %v", err)
	}
	if stmt.kind != statementSelect {
		t.Fatalf("kind = %v, want statementSelect", stmt.kind)
	}
}

func TestPrepareInsertValid(t *testing.T) {
	stmt, err := prepareStatement("insert 1 user1 person1@example.com")
	if err != nil {
		t.Fatalf("prepareStatement(insert): %v", err)
	}
	if stmt.row.ID != 1 || stmt.row.Username != "user1" || stmt.row.Email != "person1@example.com" {
		t.Fatalf("row = %+v", stmt.row)
	}
}

func TestPrepareInsertNegativeID(t *testing.T) {
	_, err := prepareStatement("insert -1 user1 p@x")
	if !errors.Is(err, ErrNegativeID) {
		t.Fatalf("err = %v, want ErrNegativeID", err)
	}
}

func TestPrepareInsertStringTooLong(t *testing.T) {
	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	_, err := prepareStatement("insert 1 " + string(long) + " p@x")
	if !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("err = %v, want ErrStringTooLong", err)
	}
}

func TestPrepareInsertSyntaxError(t *testing.T) {
	_, err := prepareStatement("insert 1 user1")
	if !errors.Is(err, ErrSyntaxError) {
		t.Fatalf("err = %v, want ErrSyntaxError", err)
	}
}

func TestPrepareStatementUnrecognized(t *testing.T) {
	_, err := prepareStatement("delete 1")
	if !errors.Is(err, ErrUnrecognizedStatement) {
		t.Fatalf("err = %v, want ErrUnrecognizedStatement", err)
	}
}

func TestHandleMetaCommand(t *testing.T) {
	if !handleMetaCommand(".exit") {
		t.Fatal("handleMetaCommand(.exit) = false, want true")
	}
	if handleMetaCommand(".help") {
		t.Fatal("handleMetaCommand(.help) = true, want false")
	}
}
