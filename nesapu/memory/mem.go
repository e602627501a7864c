package memory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-nesapu/nesapu/addr"
	"github.com/valerio/go-nesapu/nesapu/audio"
)

// Size is the size of the CPU address space.
const Size = 0x10000

// RAM is a flat 64 KiB address space. It is what the DMC fetches its
// samples from.
type RAM struct {
	data  []byte
	reads uint64
}

var _ audio.MemoryReader = (*RAM)(nil)

// NewRAM creates a zeroed address space.
func NewRAM() *RAM {
	return &RAM{data: make([]byte, Size)}
}

// Read returns the byte at address and counts it as a sample fetch.
func (r *RAM) Read(address uint16) uint8 {
	r.reads++
	return r.data[address]
}

// Peek returns the byte at address without counting it.
func (r *RAM) Peek(address uint16) uint8 {
	return r.data[address]
}

func (r *RAM) Write(address uint16, value uint8) {
	r.data[address] = value
}

// Load copies data starting at address. Writes past 0xFFFF wrap to 0x0000.
func (r *RAM) Load(address uint16, data []byte) {
	for i, b := range data {
		r.data[address+uint16(i)] = b
	}
}

// LoadFile loads the contents of a file starting at address and returns the
// number of bytes loaded.
func (r *RAM) LoadFile(address uint16, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if len(data) > Size {
		return 0, fmt.Errorf("failed to load %s: %d bytes do not fit in the address space", path, len(data))
	}

	r.Load(address, data)
	slog.Debug("Loaded memory image", "path", path, "addr", fmt.Sprintf("0x%04X", address), "size", len(data))
	return len(data), nil
}

// ReadCount returns the number of reads made through Read.
func (r *RAM) ReadCount() uint64 {
	return r.reads
}

// Bus is the CPU's view of memory: the APU registers are mapped at
// $4000-$4017 and everything else is RAM.
type Bus struct {
	ram *RAM
	apu *audio.APU
}

func NewBus(ram *RAM, apu *audio.APU) *Bus {
	return &Bus{ram: ram, apu: apu}
}

func (b *Bus) Read(address uint16) uint8 {
	if isAPURange(address) {
		return b.apu.ReadRegister(address)
	}
	return b.ram.Peek(address)
}

func (b *Bus) Write(address uint16, value uint8) {
	if isAPURange(address) {
		b.apu.WriteRegister(address, value)
		return
	}
	b.ram.Write(address, value)
}

func isAPURange(address uint16) bool {
	return address >= addr.APUStart && address <= addr.APUEnd
}
