// Package pool provides a sync.Pool-backed growable byte buffer. The packer assembles each
// segment's header and body in a buffer from the segment-body pool before writing it out.
//
// Bands themselves accumulate as []int64 slices, not in these buffers; the per-band pool
// (GetBandBuffer/PutBandBuffer) is provided but the packer does not draw from it.
package pool

import (
	"io"
	"sync"
)

// Default and maximum sizes for the two pools the packer keeps: one for individual bands
// (BandBufferDefaultSize/BandBufferMaxThreshold) and one for whole segment bodies, which
// concatenate every band and are proportionally larger
// (SegmentBufferDefaultSize/SegmentBufferMaxThreshold).
const (
	BandBufferDefaultSize     = 1024 * 16       // 16KiB
	BandBufferMaxThreshold    = 1024 * 128      // 128KiB
	SegmentBufferDefaultSize  = 1024 * 1024     // 1MiB
	SegmentBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a growable byte slice with an amortized growth strategy tuned for
// append-mostly band encoding.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte, growing the buffer if necessary.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.B = append(bb.B, b)
}

// Truncate truncates the buffer back to a previously observed length.
func (bb *ByteBuffer) Truncate(n int) {
	if n < 0 || n > len(bb.B) {
		panic("Truncate: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
//
// Growth strategy: small buffers grow by BandBufferDefaultSize to minimize reallocations;
// larger buffers grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := BandBufferDefaultSize
	if cap(bb.B) > 4*BandBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed. Satisfies io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w. Satisfies io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers, discarding any buffer that grew past
// maxThreshold instead of returning it to the pool, to avoid retaining abnormally large buffers.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	bandDefaultPool    = NewByteBufferPool(BandBufferDefaultSize, BandBufferMaxThreshold)
	segmentDefaultPool = NewByteBufferPool(SegmentBufferDefaultSize, SegmentBufferMaxThreshold)
)

// GetBandBuffer retrieves a ByteBuffer from the default per-band pool.
func GetBandBuffer() *ByteBuffer { return bandDefaultPool.Get() }

// PutBandBuffer returns a ByteBuffer to the default per-band pool.
func PutBandBuffer(bb *ByteBuffer) { bandDefaultPool.Put(bb) }

// GetSegmentBuffer retrieves a ByteBuffer from the default segment-body pool.
func GetSegmentBuffer() *ByteBuffer { return segmentDefaultPool.Get() }

// PutSegmentBuffer returns a ByteBuffer to the default segment-body pool.
func PutSegmentBuffer(bb *ByteBuffer) { segmentDefaultPool.Put(bb) }
