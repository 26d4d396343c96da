package renderer

import (
	"testing"

	"github.com/bentance/virtualgallery/gallery"
)

func testTexture(id int) *Texture {
	return NewTexture(gallery.Painting{ID: id, Title: "t", ImageURL: "x.jpg"})
}

func TestAssetTable_Basic(t *testing.T) {
	table := NewAssetTable()

	h, err := table.Create(testTexture(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	tex, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if tex.PaintingID != 1 {
		t.Fatalf("Expected painting 1, got %d", tex.PaintingID)
	}

	tex, ok = table.Drop(h)
	if !ok {
		t.Fatal("Drop failed")
	}
	if tex.PaintingID != 1 {
		t.Fatalf("Expected painting 1, got %d", tex.PaintingID)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Drop")
	}
	if _, ok := table.Get(h); ok {
		t.Fatal("Get should fail after Drop")
	}
}

func TestAssetTable_HandleReuse(t *testing.T) {
	table := NewAssetTable()

	h1, _ := table.Create(testTexture(1))
	h2, _ := table.Create(testTexture(2))

	table.Drop(h1)

	// Freed handle should be reused before the table grows.
	h3, err := table.Create(testTexture(3))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if h3 != h1 {
		t.Errorf("Expected reused handle %d, got %d", h1, h3)
	}

	tex, ok := table.Get(h3)
	if !ok || tex.PaintingID != 3 {
		t.Fatal("Reused handle points at wrong texture")
	}
	if tex, ok := table.Get(h2); !ok || tex.PaintingID != 2 {
		t.Fatal("Unrelated handle disturbed by reuse")
	}
}

func TestAssetTable_InvalidHandles(t *testing.T) {
	table := NewAssetTable()

	if _, ok := table.Get(0); ok {
		t.Error("handle 0 must be invalid")
	}
	if _, ok := table.Get(42); ok {
		t.Error("out-of-range handle must be invalid")
	}
	if _, ok := table.Drop(0); ok {
		t.Error("Drop of handle 0 must fail")
	}
}

func TestAssetTable_Close(t *testing.T) {
	table := NewAssetTable()
	h, _ := table.Create(testTexture(1))

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := table.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := table.Create(testTexture(2)); err != ErrTableClosed {
		t.Errorf("Create after Close: err = %v, want ErrTableClosed", err)
	}
	if _, ok := table.Get(h); ok {
		t.Error("Get should fail after Close")
	}
}

func TestAssetTable_Each(t *testing.T) {
	table := NewAssetTable()
	h1, _ := table.Create(testTexture(1))
	h2, _ := table.Create(testTexture(2))
	table.Drop(h1)

	var seen []Handle
	table.Each(func(h Handle, _ *Texture) bool {
		seen = append(seen, h)
		return true
	})

	if len(seen) != 1 || seen[0] != h2 {
		t.Errorf("Each visited %v, want [%d]", seen, h2)
	}
}
