package vtable

import "vqlite/pager"

// Row payload layout: id uint32 LE, username (33 B, null-terminated),
// email (256 B, null-terminated).
const (
	ColumnUsernameSize = 32
	ColumnEmailSize    = 255

	idSize       = 4
	usernameSize = ColumnUsernameSize + 1
	emailSize    = ColumnEmailSize + 1

	idOffset       = 0
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + usernameSize

	// RowSize is the fixed on-disk size of a serialized row.
	RowSize = idSize + usernameSize + emailSize
)

// Common node header: node type, is-root flag, parent page number.
const (
	nodeTypeOffset   = 0
	nodeTypeSize     = 1
	isRootOffset     = nodeTypeOffset + nodeTypeSize
	isRootSize       = 1
	parentOffset     = isRootOffset + isRootSize
	parentSize       = 4
	commonHeaderSize = parentOffset + parentSize
)

// Leaf node header: cell count, next-leaf pointer.
const (
	leafNumCellsOffset = commonHeaderSize
	leafNumCellsSize   = 4
	leafNextLeafOffset = leafNumCellsOffset + leafNumCellsSize
	leafNextLeafSize   = 4
	leafHeaderSize     = leafNextLeafOffset + leafNextLeafSize

	leafKeySize  = 4
	leafCellSize = leafKeySize + RowSize

	// LeafMaxCells is the number of (key, row) cells a leaf page can hold.
	LeafMaxCells = (pager.PageSize - leafHeaderSize) / leafCellSize

	// LeftSplitCount and RightSplitCount partition a full leaf plus the
	// inserted cell across the original leaf and its new right sibling.
	LeftSplitCount  = (LeafMaxCells + 1 + 1) / 2
	RightSplitCount = (LeafMaxCells + 1) - LeftSplitCount
)

// Internal node header: key count, rightmost child pointer.
const (
	internalNumKeysOffset     = commonHeaderSize
	internalNumKeysSize       = 4
	internalRightChildOffset  = internalNumKeysOffset + internalNumKeysSize
	internalRightChildSize    = 4
	internalHeaderSize        = internalRightChildOffset + internalRightChildSize
	internalChildSize         = 4
	internalKeySize           = 4
	internalCellSize          = internalChildSize + internalKeySize

	// InternalMaxCells is the number of (child, key) pairs an internal
	// page's body can hold.
	InternalMaxCells = (pager.PageSize - internalHeaderSize) / internalCellSize
)

// InvalidPageNum marks an absent rightmost child during initialization.
const InvalidPageNum = 0xFFFFFFFF

func leafCellOffset(cellNum uint32) uint32 {
	return leafHeaderSize + cellNum*leafCellSize
}

func internalChildOffset(i uint32) uint32 {
	return internalHeaderSize + i*internalCellSize
}

func internalKeyOffset(i uint32) uint32 {
	return internalChildOffset(i) + internalChildSize
}
