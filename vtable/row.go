package vtable

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Row is a single record: an unsigned 32-bit id plus two null-terminated
// string fields.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Validate checks the row against the fixed column limits. The CLI layer
// performs the same checks before ever reaching the engine; Serialize
// re-checks defensively since it owns the fixed destination buffer.
func (r Row) Validate() error {
	if len(r.Username) > ColumnUsernameSize {
		return fmt.Errorf("%w: username %q is %d bytes, max %d", ErrStringTooLong, r.Username, len(r.Username), ColumnUsernameSize)
	}
	if len(r.Email) > ColumnEmailSize {
		return fmt.Errorf("%w: email %q is %d bytes, max %d", ErrStringTooLong, r.Email, len(r.Email), ColumnEmailSize)
	}
	return nil
}

// SerializeRow writes r into dst, which must be exactly RowSize bytes.
// Little-endian for the id; the strings are byte-copied along with their
// null terminator, the remainder of each field zeroed.
func SerializeRow(r Row, dst []byte) error {
	if len(dst) != RowSize {
		return fmt.Errorf("SerializeRow: dst is %d bytes, want %d", len(dst), RowSize)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+idSize], r.ID)

	for i := range dst[usernameOffset : usernameOffset+usernameSize] {
		dst[usernameOffset+i] = 0
	}
	copy(dst[usernameOffset:usernameOffset+usernameSize], r.Username)

	for i := range dst[emailOffset : emailOffset+emailSize] {
		dst[emailOffset+i] = 0
	}
	copy(dst[emailOffset:emailOffset+emailSize], r.Email)

	return nil
}

// DeserializeRow reads a Row back out of src, which must be exactly
// RowSize bytes.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) != RowSize {
		return Row{}, fmt.Errorf("DeserializeRow: src is %d bytes, want %d", len(src), RowSize)
	}

	id := binary.LittleEndian.Uint32(src[idOffset : idOffset+idSize])
	username := cString(src[usernameOffset : usernameOffset+usernameSize])
	email := cString(src[emailOffset : emailOffset+emailSize])

	return Row{ID: id, Username: username, Email: email}, nil
}

// cString returns the bytes up to (not including) the first zero byte.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
