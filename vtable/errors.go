package vtable

import "errors"

// User and capacity errors are reported to the caller; the engine stays
// usable. Fatal conditions (I/O failure, corrupt layout, out-of-bounds page
// number) surface as *pager.FatalError instead and should terminate the
// process.
var (
	// ErrDuplicateKey is returned by Insert when the row's id already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrTableFull is returned when a split would need a page number beyond
	// pager.TableMaxPages.
	ErrTableFull = errors.New("table full")

	// ErrStringTooLong is returned by Row.Validate/SerializeRow.
	ErrStringTooLong = errors.New("string too long")
)
