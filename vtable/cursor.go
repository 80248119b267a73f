package vtable

// Cursor is the logical position used for ordered scans: a leaf page
// number, a cell index within that leaf, and an end-of-table flag. It
// borrows from the pager's page cache and is valid only while the
// underlying Table remains open.
type Cursor struct {
	table      *Table
	pageNum    uint32
	cellNum    uint32
	endOfTable bool
}

// Start returns a cursor at the first row of the table, descending
// through child[0] repeatedly to find the leftmost leaf.
func (t *Table) Start() (*Cursor, error) {
	pageNum := t.RootPageNum
	for {
		buf, err := t.Pager.GetPage(pageNum)
		if err != nil {
			return nil, err
		}
		if getNodeType(buf) == NodeLeaf {
			c := &Cursor{table: t, pageNum: pageNum, cellNum: 0}
			c.endOfTable = leafNumCells(buf) == 0
			return c, nil
		}
		pageNum = childAt(buf, 0)
	}
}

// EndOfTable reports whether the cursor has advanced past the last row.
func (c *Cursor) EndOfTable() bool { return c.endOfTable }

// Value returns the current cell's row.
func (c *Cursor) Value() (Row, error) {
	buf, err := c.table.Pager.GetPage(c.pageNum)
	if err != nil {
		return Row{}, err
	}
	return DeserializeRow(leafValue(buf, c.cellNum))
}

// Advance moves to the next cell in the leaf chain, following next-leaf
// pointers across leaf boundaries and setting EndOfTable once the chain
// is exhausted.
func (c *Cursor) Advance() error {
	buf, err := c.table.Pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	c.cellNum++
	if c.cellNum < leafNumCells(buf) {
		return nil
	}

	next := leafNextLeaf(buf)
	if next == 0 {
		c.endOfTable = true
		return nil
	}
	c.pageNum = next
	c.cellNum = 0
	return nil
}
