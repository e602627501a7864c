package audio

// dutyTable holds the 8-step sequences for the four pulse duty cycles.
var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0}, // 12.5%
	{0, 1, 1, 0, 0, 0, 0, 0}, // 25%
	{0, 1, 1, 1, 1, 0, 0, 0}, // 50%
	{1, 0, 0, 1, 1, 1, 1, 1}, // 75% (25% negated)
}

// triangleSequence is the 32-step triangle waveform.
var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// noisePeriodTable maps the 4-bit period index to a timer reload (NTSC).
var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// lengthTable maps the 5-bit length index written to a channel's length
// register to the length counter value.
// Reference: https://www.nesdev.org/wiki/APU_Length_Counter
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22,
	192, 24, 72, 26, 16, 28, 32, 30,
}

// LengthTableValue returns the length counter value for a 5-bit length index.
func LengthTableValue(index uint8) uint8 {
	return lengthTable[index&0x1F]
}
