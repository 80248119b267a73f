package vtable

import "testing"

func TestSerializeDeserializeRowRoundTrip(t *testing.T) {
	tests := []Row{
		{ID: 1, Username: "user1", Email: "person1@example.com"},
		{ID: 0, Username: "", Email: ""},
		{ID: 0xdeadbeef, Username: fill(ColumnUsernameSize, 'u'), Email: fill(ColumnEmailSize, 'e')},
	}

	for _, want := range tests {
		buf := make([]byte, RowSize)
		if err := SerializeRow(want, buf); err != nil {
			t.Fatalf("SerializeRow(%+v): %v", want, err)
		}
		got, err := DeserializeRow(buf)
		if err != nil {
			t.Fatalf("DeserializeRow: %v", err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestSerializeRowRejectsWrongBufferSize(t *testing.T) {
	row := Row{ID: 1, Username: "a", Email: "b"}
	if err := SerializeRow(row, make([]byte, RowSize-1)); err == nil {
		t.Fatal("expected error for undersized buffer")
	}
}

func TestValidateStringTooLong(t *testing.T) {
	row := Row{ID: 1, Username: fill(ColumnUsernameSize+1, 'a'), Email: "e"}
	if err := row.Validate(); err == nil {
		t.Fatal("expected ErrStringTooLong for over-length username")
	}

	row = Row{ID: 1, Username: "a", Email: fill(ColumnEmailSize+1, 'e')}
	if err := row.Validate(); err == nil {
		t.Fatal("expected ErrStringTooLong for over-length email")
	}
}

func fill(n int, b byte) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return string(buf)
}
