package buffer_pool

// PageID identifies a page in the disk manager's page-ID space.
// InvalidPageID is the "no page" sentinel.
type PageID int32

// InvalidPageID denotes the absence of a page.
const InvalidPageID PageID = -1

// PageSize is the fixed size, in bytes, of every page and every frame's
// data buffer.
const PageSize = 4096

// Frame is one in-memory slot capable of holding exactly one page: a fixed
// PageSize byte buffer plus the metadata the pool instance needs to decide
// whether the frame can be reused. Frame carries no lock of its own — the
// owning pool instance's latch guards metadata, and the pin count is the
// sole contract governing the data buffer between Fetch and Unpin (spec §5).
type Frame struct {
	data     []byte
	pageID   PageID
	pinCount int
	dirty    bool
}

func newFrame() *Frame {
	return &Frame{
		data:   make([]byte, PageSize),
		pageID: InvalidPageID,
	}
}

// Data returns the frame's byte buffer. Valid for the duration of a pin;
// concurrent access across multiple pinners of the same page is the
// client's problem (spec §5).
func (f *Frame) Data() []byte { return f.data }

// PageID returns the page currently resident in this frame, or
// InvalidPageID if the frame is free.
func (f *Frame) PageID() PageID { return f.pageID }

// PinCount returns the number of outstanding pins on this frame.
func (f *Frame) PinCount() int { return f.pinCount }

// IsDirty reports whether the frame's in-memory bytes differ from the disk
// copy.
func (f *Frame) IsDirty() bool { return f.dirty }

// resetToFree clears metadata back to invariant 4's free state. Does NOT
// zero the data buffer — the next occupant's Fetch/NewPage overwrites it.
func (f *Frame) resetToFree() {
	f.pageID = InvalidPageID
	f.pinCount = 0
	f.dirty = false
}

func (f *Frame) zeroData() {
	for i := range f.data {
		f.data[i] = 0
	}
}
