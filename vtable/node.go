package vtable

import (
	"encoding/binary"

	"vqlite/pager"
)

// NodeType distinguishes a leaf page from an internal page. The zero value
// matches the on-disk encoding: internal is 0, leaf is 1.
type NodeType uint8

const (
	NodeInternal NodeType = 0
	NodeLeaf     NodeType = 1
)

// The node accessors below are offset computations over a raw page
// buffer; none of them copy the page. They are free functions rather than
// methods on a wrapper type because a page's interpretation (leaf vs
// internal) can change between calls as the tree is restructured.

func getNodeType(buf *pager.Page) NodeType {
	return NodeType(buf[nodeTypeOffset])
}

func setNodeType(buf *pager.Page, t NodeType) {
	buf[nodeTypeOffset] = byte(t)
}

func getIsRoot(buf *pager.Page) bool {
	return buf[isRootOffset] != 0
}

func setIsRoot(buf *pager.Page, isRoot bool) {
	if isRoot {
		buf[isRootOffset] = 1
	} else {
		buf[isRootOffset] = 0
	}
}

func getParent(buf *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(buf[parentOffset : parentOffset+parentSize])
}

func setParent(buf *pager.Page, parent uint32) {
	binary.LittleEndian.PutUint32(buf[parentOffset:parentOffset+parentSize], parent)
}

// --- leaf node ---

func initializeLeaf(buf *pager.Page) {
	setNodeType(buf, NodeLeaf)
	setIsRoot(buf, false)
	setParent(buf, 0)
	setLeafNumCells(buf, 0)
	setLeafNextLeaf(buf, 0)
}

func leafNumCells(buf *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(buf[leafNumCellsOffset : leafNumCellsOffset+leafNumCellsSize])
}

func setLeafNumCells(buf *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(buf[leafNumCellsOffset:leafNumCellsOffset+leafNumCellsSize], n)
}

func leafNextLeaf(buf *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(buf[leafNextLeafOffset : leafNextLeafOffset+leafNextLeafSize])
}

func setLeafNextLeaf(buf *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(buf[leafNextLeafOffset:leafNextLeafOffset+leafNextLeafSize], n)
}

func leafKey(buf *pager.Page, cellNum uint32) uint32 {
	off := leafCellOffset(cellNum)
	return binary.LittleEndian.Uint32(buf[off : off+leafKeySize])
}

func setLeafKey(buf *pager.Page, cellNum, key uint32) {
	off := leafCellOffset(cellNum)
	binary.LittleEndian.PutUint32(buf[off:off+leafKeySize], key)
}

// leafValue returns the RowSize-byte value slot for cellNum, a borrowed
// view into buf.
func leafValue(buf *pager.Page, cellNum uint32) []byte {
	off := leafCellOffset(cellNum) + leafKeySize
	return buf[off : off+RowSize]
}

// --- internal node ---

func initializeInternal(buf *pager.Page) {
	setNodeType(buf, NodeInternal)
	setIsRoot(buf, false)
	setParent(buf, 0)
	setInternalNumKeys(buf, 0)
	setInternalRightChild(buf, InvalidPageNum)
}

func internalNumKeys(buf *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(buf[internalNumKeysOffset : internalNumKeysOffset+internalNumKeysSize])
}

func setInternalNumKeys(buf *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(buf[internalNumKeysOffset:internalNumKeysOffset+internalNumKeysSize], n)
}

func internalRightChild(buf *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(buf[internalRightChildOffset : internalRightChildOffset+internalRightChildSize])
}

func setInternalRightChild(buf *pager.Page, child uint32) {
	binary.LittleEndian.PutUint32(buf[internalRightChildOffset:internalRightChildOffset+internalRightChildSize], child)
}

func internalChild(buf *pager.Page, i uint32) uint32 {
	off := internalChildOffset(i)
	return binary.LittleEndian.Uint32(buf[off : off+internalChildSize])
}

func setInternalChild(buf *pager.Page, i, child uint32) {
	off := internalChildOffset(i)
	binary.LittleEndian.PutUint32(buf[off:off+internalChildSize], child)
}

func internalKey(buf *pager.Page, i uint32) uint32 {
	off := internalKeyOffset(i)
	return binary.LittleEndian.Uint32(buf[off : off+internalKeySize])
}

func setInternalKey(buf *pager.Page, i, key uint32) {
	off := internalKeyOffset(i)
	binary.LittleEndian.PutUint32(buf[off:off+internalKeySize], key)
}

// childAt returns the child page for logical child index childNum: the
// stored child if childNum < numKeys, otherwise the rightmost child.
func childAt(buf *pager.Page, childNum uint32) uint32 {
	numKeys := internalNumKeys(buf)
	if childNum == numKeys {
		return internalRightChild(buf)
	}
	return internalChild(buf, childNum)
}
