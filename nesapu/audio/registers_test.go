package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-nesapu/nesapu/addr"
)

func TestAPU_RegisterMapping(t *testing.T) {
	tests := []struct {
		name     string
		register uint16
		value    uint8
		testFunc func(t *testing.T, apu *APU)
	}{
		{
			name:     "pulse 1 sweep",
			register: addr.Pulse1Sweep, value: 0xAB, // enabled, period 2, negate, shift 3
			testFunc: func(t *testing.T, apu *APU) {
				assert.True(t, apu.pulse1.sweep.enabled)
				assert.Equal(t, uint8(2), apu.pulse1.sweep.period)
				assert.True(t, apu.pulse1.sweep.negate)
				assert.Equal(t, uint8(3), apu.pulse1.sweep.shift)
				assert.True(t, apu.pulse1.sweep.reload, "a sweep write schedules a divider reload")
			},
		},
		{
			name:     "pulse 2 timer low",
			register: addr.Pulse2TimerLo, value: 0xCD,
			testFunc: func(t *testing.T, apu *APU) {
				assert.Equal(t, uint16(0xCD), apu.pulse2.reload)
				assert.Equal(t, uint16(0), apu.pulse1.reload, "pulse 1 should be untouched")
			},
		},
		{
			name:     "pulse 2 control",
			register: addr.Pulse2Control, value: 0xD5, // duty 3, constant, volume 5
			testFunc: func(t *testing.T, apu *APU) {
				assert.Equal(t, uint8(3), apu.pulse2.duty)
				assert.False(t, apu.pulse2.length.halt)
				assert.Equal(t, uint8(5), apu.pulse2.env.volume())
			},
		},
		{
			name:     "triangle timer low",
			register: addr.TriangleTimerLo, value: 0x42,
			testFunc: func(t *testing.T, apu *APU) {
				assert.Equal(t, uint16(0x42), apu.triangle.reload)
			},
		},
		{
			name:     "noise control",
			register: addr.NoiseControl, value: 0x3C, // halt, constant, volume 12
			testFunc: func(t *testing.T, apu *APU) {
				assert.True(t, apu.noise.length.halt)
				assert.Equal(t, uint8(12), apu.noise.env.volume())
			},
		},
		{
			name:     "noise length",
			register: addr.NoiseLength, value: 0x18, // index 3
			testFunc: func(t *testing.T, apu *APU) {
				assert.Equal(t, uint8(2), apu.noise.length.counter)
				assert.True(t, apu.noise.env.start)
			},
		},
		{
			name:     "status enables",
			register: addr.Status, value: 0x1F,
			testFunc: func(t *testing.T, apu *APU) {
				assert.True(t, apu.pulse1.enabled)
				assert.True(t, apu.pulse2.enabled)
				assert.True(t, apu.triangle.enabled)
				assert.True(t, apu.noise.enabled)
				assert.True(t, apu.dmc.enabled)
			},
		},
		{
			name:     "frame counter",
			register: addr.FrameCounter, value: 0x80,
			testFunc: func(t *testing.T, apu *APU) {
				assert.True(t, apu.frame.fiveStep)
				assert.True(t, apu.frame.irqEnabled, "bit 6 clear leaves the IRQ enabled")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apu := New(nil)
			apu.WriteRegister(tt.register, tt.value)
			tt.testFunc(t, apu)
		})
	}
}

func TestAPU_LengthTable(t *testing.T) {
	expected := [32]uint8{
		10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
		12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
	}

	channels := []struct {
		channel  Channel
		register uint16
	}{
		{Pulse1, addr.Pulse1TimerHi},
		{Pulse2, addr.Pulse2TimerHi},
		{Triangle, addr.TriangleTimerHi},
		{Noise, addr.NoiseLength},
	}

	for _, ch := range channels {
		t.Run(ch.channel.String(), func(t *testing.T) {
			for index, want := range expected {
				apu := New(nil)
				apu.WriteRegister(ch.register, uint8(index)<<3)
				assert.Equal(t, want, apu.State().Channels[ch.channel].Length, "length index %d", index)
			}
		})
	}
}

func TestAPU_UnmappedAddresses(t *testing.T) {
	apu := New(nil)
	before := apu.State()

	for _, address := range []uint16{0x4009, 0x400D, 0x4014, 0x4016, 0x3FFF, 0x4018} {
		apu.WriteRegister(address, 0xFF)
		assert.Equal(t, uint8(0), apu.ReadRegister(address), "address 0x%04X should read as 0", address)
	}
	assert.Equal(t, before, apu.State(), "unmapped writes should not change state")
}

func TestAPU_WriteOnlyRegistersReadZero(t *testing.T) {
	apu := New(nil)

	for _, address := range addr.Registers() {
		if address == addr.Status {
			continue
		}
		apu.WriteRegister(address, 0xFF)
		assert.Equal(t, uint8(0), apu.ReadRegister(address), "register 0x%04X is write-only", address)
	}
}

func TestAPU_StatusComposite(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(apu *APU)
		expected uint8
	}{
		{
			name:     "power on",
			setup:    func(apu *APU) {},
			expected: 0x00,
		},
		{
			name: "pulse 2 and noise playing",
			setup: func(apu *APU) {
				apu.WriteRegister(addr.Status, 0x0A)
				apu.WriteRegister(addr.Pulse2TimerHi, 0x08)
				apu.WriteRegister(addr.NoiseLength, 0x08)
			},
			expected: 0x0A,
		},
		{
			name: "all length counters loaded",
			setup: func(apu *APU) {
				apu.WriteRegister(addr.Pulse1TimerHi, 0x08)
				apu.WriteRegister(addr.Pulse2TimerHi, 0x08)
				apu.WriteRegister(addr.TriangleTimerHi, 0x08)
				apu.WriteRegister(addr.NoiseLength, 0x08)
			},
			expected: 0x0F,
		},
		{
			name: "DMC bytes remaining",
			setup: func(apu *APU) {
				apu.WriteRegister(addr.DMCLength, 0x01)
				apu.WriteRegister(addr.Status, 0x10)
			},
			expected: 0x10,
		},
		{
			name: "both interrupt flags",
			setup: func(apu *APU) {
				apu.frame.frameIRQ = true
				apu.frame.dmcIRQ = true
			},
			expected: 0xC0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apu := New(nil)
			tt.setup(apu)
			assert.Equal(t, tt.expected, apu.PeekStatus())
		})
	}
}

func TestAPU_StatusWrite(t *testing.T) {
	apu := New(nil)
	apu.WriteRegister(addr.DMCLength, 0x01)
	apu.WriteRegister(addr.Status, 0x15)
	apu.WriteRegister(addr.Pulse1TimerHi, 0x08)
	apu.WriteRegister(addr.TriangleTimerHi, 0x08)
	apu.frame.dmcIRQ = true
	apu.frame.frameIRQ = true

	apu.WriteRegister(addr.Status, 0x04)

	assert.Equal(t, uint8(0), apu.pulse1.length.counter, "disabled channels lose their length")
	assert.Equal(t, uint8(254), apu.triangle.length.counter, "enabled channels keep their length")
	assert.Equal(t, uint16(0), apu.dmc.bytesRemaining, "disabling the DMC drops the rest of the sample")
	assert.False(t, apu.DMCIRQ(), "a status write acknowledges the DMC IRQ")
	assert.True(t, apu.FrameIRQ(), "a status write leaves the frame IRQ alone")
}
