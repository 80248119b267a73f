// Package vtable implements the B+ tree storage core: row codec, page
// node accessors, tree search/insert/split, cursor, and the engine façade
// (Open/Close/Insert/SelectAll) that sits on top of package pager.
package vtable

import "vqlite/pager"

// Table is a reference to a pager plus the (always page 0, always stable)
// root page number.
type Table struct {
	Pager       *pager.Pager
	RootPageNum uint32
}

// Open opens the pager for filename. If the file was empty, page 0 is
// materialized as an empty leaf marked root; otherwise page 0 is assumed
// to already hold a valid root (leaf or internal).
func Open(filename string) (*Table, error) {
	p, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	t := &Table{Pager: p, RootPageNum: 0}

	if p.NumPages() == 0 {
		buf, err := p.GetPage(0)
		if err != nil {
			return nil, err
		}
		initializeLeaf(buf)
		setIsRoot(buf, true)
	}

	return t, nil
}

// Close flushes every touched page and closes the backing file. This is
// the only durability boundary the engine guarantees.
func (t *Table) Close() error {
	return t.Pager.Close()
}

// SelectAll streams every row in ascending id order to sink, stopping at
// the first error sink returns.
func (t *Table) SelectAll(sink func(Row) error) error {
	cur, err := t.Start()
	if err != nil {
		return err
	}
	for !cur.EndOfTable() {
		row, err := cur.Value()
		if err != nil {
			return err
		}
		if err := sink(row); err != nil {
			return err
		}
		if err := cur.Advance(); err != nil {
			return err
		}
	}
	return nil
}
