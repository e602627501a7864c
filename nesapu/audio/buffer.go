package audio

// SampleBuffer is a fixed-capacity, append-only buffer of mixed samples.
// It is not a ring: once full, pushes are dropped until Clear is called.
type SampleBuffer struct {
	data  [BufferSize]int16
	index int // next write position
	size  int // number of valid samples
}

// push appends a sample, reporting false when it was dropped.
func (b *SampleBuffer) push(sample int16) bool {
	if b.index >= len(b.data) {
		return false
	}
	b.data[b.index] = sample
	b.index++
	b.size = b.index
	return true
}

// Len returns the number of buffered samples.
func (b *SampleBuffer) Len() int { return b.size }

// Full reports whether further samples will be dropped.
func (b *SampleBuffer) Full() bool { return b.index >= len(b.data) }

// Copy copies min(count, Len()) samples into dst in FIFO order and fills the
// rest of dst[:count] with silence. count is clamped to len(dst).
// It returns the number of buffered samples copied.
func (b *SampleBuffer) Copy(dst []int16, count int) int {
	if count > len(dst) {
		count = len(dst)
	}
	if count <= 0 {
		return 0
	}

	n := copy(dst[:count], b.data[:min(count, b.size)])
	clear(dst[n:count])
	return n
}

// Clear makes the buffer empty. Stale contents are left in place.
func (b *SampleBuffer) Clear() {
	b.index = 0
	b.size = 0
}
