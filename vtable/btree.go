package vtable

import (
	"fmt"

	"vqlite/pager"
)

// position is the result of descending the tree for a key: the leaf page
// that would contain it, and either the index of the matching cell or the
// insertion index if the key is absent.
type position struct {
	pageNum uint32
	cellNum uint32
}

// find descends from the root to the leaf that does, or would, hold key.
func (t *Table) find(key uint32) (position, error) {
	buf, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return position{}, err
	}
	return t.findNode(t.RootPageNum, buf, key)
}

func (t *Table) findNode(pageNum uint32, buf *pager.Page, key uint32) (position, error) {
	if getNodeType(buf) == NodeLeaf {
		return leafFind(buf, pageNum, key), nil
	}
	return t.internalFind(pageNum, buf, key)
}

// leafFind performs a half-open binary search over a leaf's cells:
// equality returns immediately, otherwise the final min is the
// insertion position.
func leafFind(buf *pager.Page, pageNum uint32, key uint32) position {
	min, max := uint32(0), leafNumCells(buf)
	for min < max {
		mid := min + (max-min)/2
		k := leafKey(buf, mid)
		if key == k {
			return position{pageNum: pageNum, cellNum: mid}
		}
		if key < k {
			max = mid
		} else {
			min = mid + 1
		}
	}
	return position{pageNum: pageNum, cellNum: min}
}

// internalFind finds the smallest index i with key <= keys[i] (or the
// rightmost child if none), then recurses into that child.
func (t *Table) internalFind(pageNum uint32, buf *pager.Page, key uint32) (position, error) {
	idx := internalFindChildIndex(buf, key)
	childPageNum := childAt(buf, idx)
	childBuf, err := t.Pager.GetPage(childPageNum)
	if err != nil {
		return position{}, err
	}
	return t.findNode(childPageNum, childBuf, key)
}

// internalFindChildIndex returns the smallest index i in [0, numKeys] with
// key <= keys[i], where numKeys itself denotes "follow the rightmost
// child". Also used to locate the entry carrying a given separator key.
func internalFindChildIndex(buf *pager.Page, key uint32) uint32 {
	min, max := uint32(0), internalNumKeys(buf)
	for min < max {
		mid := min + (max-min)/2
		if key <= internalKey(buf, mid) {
			max = mid
		} else {
			min = mid + 1
		}
	}
	return min
}

// getNodeMaxKey returns the maximum key in the subtree rooted at buf: a
// leaf's own last key, or (recursively) its rightmost child's max key.
func (t *Table) getNodeMaxKey(buf *pager.Page) (uint32, error) {
	if getNodeType(buf) == NodeLeaf {
		n := leafNumCells(buf)
		if n == 0 {
			return 0, fmt.Errorf("getNodeMaxKey: empty leaf")
		}
		return leafKey(buf, n-1), nil
	}
	rightBuf, err := t.Pager.GetPage(internalRightChild(buf))
	if err != nil {
		return 0, err
	}
	return t.getNodeMaxKey(rightBuf)
}

// Insert adds row under key row.ID, splitting nodes and maintaining parent
// separators as needed. Returns ErrDuplicateKey if the id already exists,
// ErrTableFull if a split would exceed the page budget.
func (t *Table) Insert(row Row) error {
	if err := row.Validate(); err != nil {
		return err
	}

	pos, err := t.find(row.ID)
	if err != nil {
		return err
	}
	buf, err := t.Pager.GetPage(pos.pageNum)
	if err != nil {
		return err
	}
	if pos.cellNum < leafNumCells(buf) && leafKey(buf, pos.cellNum) == row.ID {
		return ErrDuplicateKey
	}

	if leafNumCells(buf) < LeafMaxCells {
		return t.leafInsert(buf, pos.pageNum, pos.cellNum, row)
	}
	return t.leafSplitAndInsert(buf, pos.pageNum, pos.cellNum, row)
}

func (t *Table) leafInsert(buf *pager.Page, pageNum, cellNum uint32, row Row) error {
	numCells := leafNumCells(buf)
	for i := numCells; i > cellNum; i-- {
		copyLeafCell(buf, i, buf, i-1)
	}
	setLeafNumCells(buf, numCells+1)
	setLeafKey(buf, cellNum, row.ID)
	return SerializeRow(row, leafValue(buf, cellNum))
}

func copyLeafCell(dst *pager.Page, dstIdx uint32, src *pager.Page, srcIdx uint32) {
	setLeafKey(dst, dstIdx, leafKey(src, srcIdx))
	copy(leafValue(dst, dstIdx), leafValue(src, srcIdx))
}

// leafSplitAndInsert redistributes a full leaf's LeafMaxCells cells plus
// the new row across the leaf (left) and a new right sibling.
func (t *Table) leafSplitAndInsert(oldBuf *pager.Page, oldPageNum, cellNum uint32, row Row) error {
	if t.Pager.NumPages() >= pager.TableMaxPages {
		return ErrTableFull
	}
	oldMax, err := t.getNodeMaxKey(oldBuf)
	if err != nil {
		return err
	}

	newPageNum := t.Pager.GetUnusedPageNum()
	newBuf, err := t.Pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	initializeLeaf(newBuf)
	setLeafNextLeaf(newBuf, leafNextLeaf(oldBuf))
	setLeafNextLeaf(oldBuf, newPageNum)
	setParent(newBuf, getParent(oldBuf))

	// Iterate logical positions from MAX down to 0 so that a cell read
	// from the old leaf is always consumed before the new row (or a
	// later shift) could overwrite it.
	for i := int64(LeafMaxCells); i >= 0; i-- {
		idx := uint32(i)

		var destBuf *pager.Page
		var destIdx uint32
		if idx >= LeftSplitCount {
			destBuf, destIdx = newBuf, idx-LeftSplitCount
		} else {
			destBuf, destIdx = oldBuf, idx
		}

		if idx == cellNum {
			setLeafKey(destBuf, destIdx, row.ID)
			if err := SerializeRow(row, leafValue(destBuf, destIdx)); err != nil {
				return err
			}
			continue
		}

		srcIdx := idx
		if idx > cellNum {
			srcIdx = idx - 1
		}
		copyLeafCell(destBuf, destIdx, oldBuf, srcIdx)
	}

	setLeafNumCells(oldBuf, LeftSplitCount)
	setLeafNumCells(newBuf, RightSplitCount)

	if getIsRoot(oldBuf) {
		return t.createNewRoot(newPageNum)
	}

	parentPageNum := getParent(oldBuf)
	parentBuf, err := t.Pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	newMax, err := t.getNodeMaxKey(oldBuf)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parentBuf, oldMax, newMax)
	return t.internalNodeInsert(parentPageNum, newPageNum)
}

// createNewRoot allocates a new page N, copies the current root's content
// into it, and rewrites page 0 in place as an internal node with a single
// separator between N (left) and rightChildPageNum (right). The root page
// number itself never changes.
func (t *Table) createNewRoot(rightChildPageNum uint32) error {
	rootBuf, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return err
	}
	// Materialize the right child before allocating the left page so the
	// two never share a page number. A right child handed over by an
	// internal split is still blank and becomes an empty internal node.
	rightBuf, err := t.Pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}
	if getNodeType(rootBuf) == NodeInternal {
		initializeInternal(rightBuf)
	}
	if t.Pager.NumPages() >= pager.TableMaxPages {
		return ErrTableFull
	}
	leftPageNum := t.Pager.GetUnusedPageNum()
	leftBuf, err := t.Pager.GetPage(leftPageNum)
	if err != nil {
		return err
	}

	*leftBuf = *rootBuf
	setIsRoot(leftBuf, false)

	if getNodeType(leftBuf) == NodeInternal {
		numKeys := internalNumKeys(leftBuf)
		for i := uint32(0); i < numKeys; i++ {
			childBuf, err := t.Pager.GetPage(internalChild(leftBuf, i))
			if err != nil {
				return err
			}
			setParent(childBuf, leftPageNum)
		}
		rightOfLeftBuf, err := t.Pager.GetPage(internalRightChild(leftBuf))
		if err != nil {
			return err
		}
		setParent(rightOfLeftBuf, leftPageNum)
	}

	leftMax, err := t.getNodeMaxKey(leftBuf)
	if err != nil {
		return err
	}

	initializeInternal(rootBuf)
	setIsRoot(rootBuf, true)
	setInternalNumKeys(rootBuf, 1)
	setInternalChild(rootBuf, 0, leftPageNum)
	setInternalKey(rootBuf, 0, leftMax)
	setInternalRightChild(rootBuf, rightChildPageNum)

	setParent(leftBuf, t.RootPageNum)
	setParent(rightBuf, t.RootPageNum)

	return nil
}

// updateInternalNodeKey rewrites the entry whose key equals oldKey to
// newKey.
func updateInternalNodeKey(buf *pager.Page, oldKey, newKey uint32) {
	idx := internalFindChildIndex(buf, oldKey)
	setInternalKey(buf, idx, newKey)
}

// internalNodeInsert splices childPageNum into parentPageNum keyed by the
// child's own max key, splitting the parent if it is already full.
func (t *Table) internalNodeInsert(parentPageNum, childPageNum uint32) error {
	parentBuf, err := t.Pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	childBuf, err := t.Pager.GetPage(childPageNum)
	if err != nil {
		return err
	}
	childMaxKey, err := t.getNodeMaxKey(childBuf)
	if err != nil {
		return err
	}

	numKeys := internalNumKeys(parentBuf)
	if numKeys >= InternalMaxCells {
		return t.internalNodeSplitAndInsert(parentPageNum, childPageNum)
	}

	rightChildPageNum := internalRightChild(parentBuf)
	if rightChildPageNum == InvalidPageNum {
		setInternalRightChild(parentBuf, childPageNum)
		setParent(childBuf, parentPageNum)
		return nil
	}

	rightChildBuf, err := t.Pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}
	rightChildMaxKey, err := t.getNodeMaxKey(rightChildBuf)
	if err != nil {
		return err
	}

	setInternalNumKeys(parentBuf, numKeys+1)

	if childMaxKey > rightChildMaxKey {
		setInternalChild(parentBuf, numKeys, rightChildPageNum)
		setInternalKey(parentBuf, numKeys, rightChildMaxKey)
		setInternalRightChild(parentBuf, childPageNum)
	} else {
		index := internalFindChildIndex(parentBuf, childMaxKey)
		for i := numKeys; i > index; i-- {
			setInternalChild(parentBuf, i, internalChild(parentBuf, i-1))
			setInternalKey(parentBuf, i, internalKey(parentBuf, i-1))
		}
		setInternalChild(parentBuf, index, childPageNum)
		setInternalKey(parentBuf, index, childMaxKey)
	}
	setParent(childBuf, parentPageNum)
	return nil
}

// internalNodeSplitAndInsert splits a full internal node, promoting a
// separator key to the grandparent (or creating a new root, if the node
// being split is the root). Symmetric in spirit to the leaf split: the
// old node keeps its left half, a new sibling takes the right half plus
// the old rightmost child, and the new child lands on whichever side its
// max key belongs to.
func (t *Table) internalNodeSplitAndInsert(oldPageNum, childPageNum uint32) error {
	oldBuf, err := t.Pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	oldMax, err := t.getNodeMaxKey(oldBuf)
	if err != nil {
		return err
	}

	childBuf, err := t.Pager.GetPage(childPageNum)
	if err != nil {
		return err
	}
	childMax, err := t.getNodeMaxKey(childBuf)
	if err != nil {
		return err
	}

	if t.Pager.NumPages() >= pager.TableMaxPages {
		return ErrTableFull
	}
	newPageNum := t.Pager.GetUnusedPageNum()

	splittingRoot := getIsRoot(oldBuf)

	var parentPageNum uint32
	if splittingRoot {
		if err := t.createNewRoot(newPageNum); err != nil {
			return err
		}
		rootBuf, err := t.Pager.GetPage(t.RootPageNum)
		if err != nil {
			return err
		}
		parentPageNum = t.RootPageNum
		oldPageNum = internalChild(rootBuf, 0)
		oldBuf, err = t.Pager.GetPage(oldPageNum)
		if err != nil {
			return err
		}
	} else {
		parentPageNum = getParent(oldBuf)
		newBuf, err := t.Pager.GetPage(newPageNum)
		if err != nil {
			return err
		}
		initializeInternal(newBuf)
		setParent(newBuf, parentPageNum)
	}

	// Move the old rightmost child to the new sibling first.
	movingPageNum := internalRightChild(oldBuf)
	if err := t.internalNodeInsert(newPageNum, movingPageNum); err != nil {
		return err
	}
	movingBuf, err := t.Pager.GetPage(movingPageNum)
	if err != nil {
		return err
	}
	setParent(movingBuf, newPageNum)
	setInternalRightChild(oldBuf, InvalidPageNum)

	// Move the upper half of the old node's remaining keys/children too.
	for i := int64(InternalMaxCells - 1); i > InternalMaxCells/2; i-- {
		idx := uint32(i)
		movingPageNum = internalChild(oldBuf, idx)
		if err := t.internalNodeInsert(newPageNum, movingPageNum); err != nil {
			return err
		}
		movingBuf, err = t.Pager.GetPage(movingPageNum)
		if err != nil {
			return err
		}
		setParent(movingBuf, newPageNum)
		setInternalNumKeys(oldBuf, internalNumKeys(oldBuf)-1)
	}

	// The new last child of the old node becomes its rightmost child.
	lastIdx := internalNumKeys(oldBuf) - 1
	setInternalRightChild(oldBuf, internalChild(oldBuf, lastIdx))
	setInternalNumKeys(oldBuf, lastIdx)

	maxAfterSplit, err := t.getNodeMaxKey(oldBuf)
	if err != nil {
		return err
	}

	destPageNum := oldPageNum
	if childMax >= maxAfterSplit {
		destPageNum = newPageNum
	}
	if err := t.internalNodeInsert(destPageNum, childPageNum); err != nil {
		return err
	}
	childBuf, err = t.Pager.GetPage(childPageNum)
	if err != nil {
		return err
	}
	setParent(childBuf, destPageNum)

	parentBuf, err := t.Pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	newMax, err := t.getNodeMaxKey(oldBuf)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parentBuf, oldMax, newMax)

	if !splittingRoot {
		grandparentPageNum := getParent(oldBuf)
		if err := t.internalNodeInsert(grandparentPageNum, newPageNum); err != nil {
			return err
		}
		newBuf, err := t.Pager.GetPage(newPageNum)
		if err != nil {
			return err
		}
		setParent(newBuf, grandparentPageNum)
	}

	return nil
}
