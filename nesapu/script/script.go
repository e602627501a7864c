package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/valerio/go-nesapu/nesapu/addr"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownRegister = errors.New("not an APU register")
	ErrValueRange      = errors.New("value does not fit in a byte")
	ErrStepAction      = errors.New("step must have exactly one action")
	ErrMemorySource    = errors.New("memory entry needs exactly one of file or bytes")
)

// Script is a sequence of register writes and waits that drives the APU,
// plus the memory image the DMC plays samples from.
//
//	name: arpeggio
//	memory:
//	  - address: 0xC000
//	    file: samples/kick.dmc
//	steps:
//	  - write: {address: 0x4015, value: 0x1F}
//	  - frames: 10
type Script struct {
	Name   string        `yaml:"name"`
	Memory []MemoryEntry `yaml:"memory"`
	Steps  []Step        `yaml:"steps"`

	// baseDir resolves relative memory file paths
	baseDir string
}

// MemoryEntry places either the contents of a file or literal bytes at Address.
type MemoryEntry struct {
	Address uint16 `yaml:"address"`
	File    string `yaml:"file,omitempty"`
	Bytes   []int  `yaml:"bytes,omitempty"`
}

// Step holds exactly one action.
type Step struct {
	Write     *Write  `yaml:"write,omitempty"`
	Ticks     uint64  `yaml:"ticks,omitempty"`
	Frames    uint64  `yaml:"frames,omitempty"`
	Read      *uint16 `yaml:"read,omitempty"`
	AckDMCIRQ bool    `yaml:"ack_dmc_irq,omitempty"`
}

type Write struct {
	Address uint16 `yaml:"address"`
	Value   int    `yaml:"value"`
}

// Load reads and validates a script file. Memory file paths are resolved
// relative to the script's directory.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte, baseDir string) (*Script, error) {
	var s Script

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	s.baseDir = baseDir
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every memory entry and step.
func (s *Script) Validate() error {
	for i, m := range s.Memory {
		if (m.File == "") == (len(m.Bytes) == 0) {
			return fmt.Errorf("memory entry %d: %w", i, ErrMemorySource)
		}
		for j, b := range m.Bytes {
			if b < 0 || b > 0xFF {
				return fmt.Errorf("memory entry %d, byte %d (%d): %w", i, j, b, ErrValueRange)
			}
		}
	}

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	if st.actions() != 1 {
		return ErrStepAction
	}

	switch {
	case st.Write != nil:
		if !addr.IsAPURegister(st.Write.Address) {
			return fmt.Errorf("write to 0x%04X: %w", st.Write.Address, ErrUnknownRegister)
		}
		if st.Write.Value < 0 || st.Write.Value > 0xFF {
			return fmt.Errorf("write of %d: %w", st.Write.Value, ErrValueRange)
		}
	case st.Read != nil:
		if !addr.IsAPURegister(*st.Read) {
			return fmt.Errorf("read from 0x%04X: %w", *st.Read, ErrUnknownRegister)
		}
	}
	return nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{st.Write != nil, st.Ticks > 0, st.Frames > 0, st.Read != nil, st.AckDMCIRQ} {
		if set {
			n++
		}
	}
	return n
}

// path resolves a memory file path against the script's directory.
func (s *Script) path(file string) string {
	if filepath.IsAbs(file) || s.baseDir == "" {
		return file
	}
	return filepath.Join(s.baseDir, file)
}
