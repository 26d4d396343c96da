package renderer

import (
	"errors"
	"sync"
)

var ErrTableClosed = errors.New("asset table closed")

// Handle is an opaque reference to an asset in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// AssetTable is an in-memory handle table for renderer assets. Handles are
// reused through a free list so long-lived applications do not grow the
// table unboundedly as galleries change.
type AssetTable struct {
	entries  []assetEntry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type assetEntry struct {
	value *Texture
	valid bool
}

// NewAssetTable creates an empty asset table.
func NewAssetTable() *AssetTable {
	return &AssetTable{
		entries:  make([]assetEntry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Create stores a texture and returns its handle.
func (t *AssetTable) Create(tex *Texture) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrTableClosed
	}

	e := assetEntry{value: tex, valid: true}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle, nil
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries)), nil
}

// Get retrieves a texture by handle.
func (t *AssetTable) Get(handle Handle) (*Texture, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// Drop removes an asset and returns (texture, true) if it was present.
func (t *AssetTable) Drop(handle Handle) (*Texture, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := &t.entries[idx]
	if !e.valid {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, handle)

	return value, true
}

// Each iterates over all live assets in handle order.
func (t *AssetTable) Each(fn func(Handle, *Texture) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.entries {
		if !t.entries[i].valid {
			continue
		}
		if !fn(Handle(i+1), t.entries[i].value) {
			return
		}
	}
}

// Len returns the number of live assets.
func (t *AssetTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for i := range t.entries {
		if t.entries[i].valid {
			n++
		}
	}
	return n
}

// Close releases all assets and stops accepting operations. Safe to call
// multiple times.
func (t *AssetTable) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
	return nil
}
