package vtable

import (
	"testing"

	"vqlite/pager"
)

func TestInitializeLeafDefaults(t *testing.T) {
	var buf pager.Page
	initializeLeaf(&buf)

	if getNodeType(&buf) != NodeLeaf {
		t.Fatalf("node type = %v, want leaf", getNodeType(&buf))
	}
	if getIsRoot(&buf) {
		t.Fatal("is-root should default false")
	}
	if getParent(&buf) != 0 {
		t.Fatal("parent should default 0")
	}
	if leafNumCells(&buf) != 0 {
		t.Fatal("num cells should default 0")
	}
	if leafNextLeaf(&buf) != 0 {
		t.Fatal("next leaf should default 0")
	}
}

func TestInitializeInternalDefaults(t *testing.T) {
	var buf pager.Page
	initializeInternal(&buf)

	if getNodeType(&buf) != NodeInternal {
		t.Fatalf("node type = %v, want internal", getNodeType(&buf))
	}
	if internalNumKeys(&buf) != 0 {
		t.Fatal("num keys should default 0")
	}
	if internalRightChild(&buf) != InvalidPageNum {
		t.Fatalf("right child = %d, want InvalidPageNum", internalRightChild(&buf))
	}
}

func TestLeafCellAccessorsRoundTrip(t *testing.T) {
	var buf pager.Page
	initializeLeaf(&buf)
	setLeafNumCells(&buf, 3)
	setLeafKey(&buf, 0, 10)
	setLeafKey(&buf, 1, 20)
	setLeafKey(&buf, 2, 30)

	row := Row{ID: 20, Username: "mid", Email: "mid@example.com"}
	if err := SerializeRow(row, leafValue(&buf, 1)); err != nil {
		t.Fatalf("SerializeRow: %v", err)
	}

	if leafKey(&buf, 0) != 10 || leafKey(&buf, 1) != 20 || leafKey(&buf, 2) != 30 {
		t.Fatalf("keys = %d,%d,%d", leafKey(&buf, 0), leafKey(&buf, 1), leafKey(&buf, 2))
	}
	got, err := DeserializeRow(leafValue(&buf, 1))
	if err != nil {
		t.Fatalf("DeserializeRow: %v", err)
	}
	if got != row {
		t.Fatalf("got %+v, want %+v", got, row)
	}
}

func TestInternalCellAccessorsRoundTrip(t *testing.T) {
	var buf pager.Page
	initializeInternal(&buf)
	setInternalNumKeys(&buf, 2)
	setInternalChild(&buf, 0, 5)
	setInternalKey(&buf, 0, 100)
	setInternalChild(&buf, 1, 6)
	setInternalKey(&buf, 1, 200)
	setInternalRightChild(&buf, 7)

	if childAt(&buf, 0) != 5 || childAt(&buf, 1) != 6 || childAt(&buf, 2) != 7 {
		t.Fatalf("childAt mismatch: %d %d %d", childAt(&buf, 0), childAt(&buf, 1), childAt(&buf, 2))
	}
	if internalKey(&buf, 0) != 100 || internalKey(&buf, 1) != 200 {
		t.Fatalf("keys mismatch: %d %d", internalKey(&buf, 0), internalKey(&buf, 1))
	}
}

func TestLayoutConstants(t *testing.T) {
	if RowSize != 293 {
		t.Fatalf("RowSize = %d, want 293", RowSize)
	}
	if LeafMaxCells != 13 {
		t.Fatalf("LeafMaxCells = %d, want 13", LeafMaxCells)
	}
	if LeftSplitCount != 7 || RightSplitCount != 7 {
		t.Fatalf("split counts = %d/%d, want 7/7", LeftSplitCount, RightSplitCount)
	}
}
