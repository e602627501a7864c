// Package wav writes 16-bit mono PCM WAV files.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	headerSize    = 44
	bitsPerSample = 16
	channels      = 1
	formatPCM     = 1

	riffSizeOffset = 4
	dataSizeOffset = 40
)

var ErrClosed = errors.New("wav: writer is closed")

// Writer streams samples to w. The RIFF and data chunk sizes are only known
// once every sample has been written, so Close seeks back and patches them.
type Writer struct {
	w          io.WriteSeeker
	sampleRate uint32
	dataBytes  uint32
	closed     bool
}

// NewWriter writes a provisional header and returns a Writer ready for samples.
func NewWriter(w io.WriteSeeker, sampleRate int) (*Writer, error) {
	wr := &Writer{w: w, sampleRate: uint32(sampleRate)}
	if err := wr.writeHeader(); err != nil {
		return nil, fmt.Errorf("failed to write wav header: %w", err)
	}
	return wr, nil
}

func (wr *Writer) writeHeader() error {
	blockAlign := uint16(channels * bitsPerSample / 8)

	var h [headerSize]byte
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+wr.dataBytes)
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], formatPCM)
	binary.LittleEndian.PutUint16(h[22:24], channels)
	binary.LittleEndian.PutUint32(h[24:28], wr.sampleRate)
	binary.LittleEndian.PutUint32(h[28:32], wr.sampleRate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], wr.dataBytes)

	_, err := wr.w.Write(h[:])
	return err
}

// WriteSamples appends samples as little-endian 16-bit PCM.
func (wr *Writer) WriteSamples(samples []int16) error {
	if wr.closed {
		return ErrClosed
	}
	if err := binary.Write(wr.w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	wr.dataBytes += uint32(len(samples) * bitsPerSample / 8)
	return nil
}

// Samples returns the number of samples written so far.
func (wr *Writer) Samples() int {
	return int(wr.dataBytes) / (bitsPerSample / 8)
}

// Close patches the chunk sizes into the header. It does not close the
// underlying writer.
func (wr *Writer) Close() error {
	if wr.closed {
		return nil
	}
	wr.closed = true

	for _, patch := range []struct {
		offset int64
		value  uint32
	}{
		{riffSizeOffset, 36 + wr.dataBytes},
		{dataSizeOffset, wr.dataBytes},
	} {
		if _, err := wr.w.Seek(patch.offset, io.SeekStart); err != nil {
			return fmt.Errorf("failed to patch wav header: %w", err)
		}
		if err := binary.Write(wr.w, binary.LittleEndian, patch.value); err != nil {
			return fmt.Errorf("failed to patch wav header: %w", err)
		}
	}

	_, err := wr.w.Seek(0, io.SeekEnd)
	return err
}
