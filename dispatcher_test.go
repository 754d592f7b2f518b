package sw10

import (
	"io"
	"log"
	"testing"
)

func putU32(image []byte, offset uint32, v uint32) {
	image[offset] = byte(v)
	image[offset+1] = byte(v >> 8)
	image[offset+2] = byte(v >> 16)
	image[offset+3] = byte(v >> 24)
}

func putU16(image []byte, offset uint32, v uint16) {
	image[offset] = byte(v)
	image[offset+1] = byte(v >> 8)
}

// buildMinimalTestROM lays out just enough of a ROM image for a note-on
// to resolve a real (non-degenerate) program layer, sample and envelope
// pair: every program number maps to the same single-layer instrument,
// which loops a short ADPCM ramp and sustains at a fixed non-zero
// amplitude once its first envelope segment is reached, so a started
// voice stays active and audible across repeated FillOutputBuffer calls
// rather than immediately decaying to the all-zero ROM's silent/
// terminate-on-loop envelope.
func buildMinimalTestROM() []byte {
	const (
		programTableBase = 0x20000
		layerTableBase    = 0x21000
		sampleDirBase     = 0x22000
		panTableBase      = 0x23000
		pitchEnvBase      = 0x24000
		ampEnvBase        = 0x25000
	)

	image := make([]byte, romSize)
	for section, base := range map[uint32]uint32{
		programTableSection:      programTableBase,
		layerTableSection:        layerTableBase,
		sampleDirectorySection:   sampleDirBase,
		panTableSection:          panTableBase,
		pitchEnvelopeSection:     pitchEnvBase,
		ampEnvelopeSection:       ampEnvBase,
	} {
		putU32(image, rootDirectoryOffset+4*section, base)
	}

	// Every program number (0-255) indexes layer record 0.
	for p := 0; p < 256; p++ {
		putU16(image, programTableBase+2*uint32(p), 0)
	}

	// Layer record 0: single layer (no dual-layer bit), sample index 0,
	// envelope rows 0, everything else zero/unused.
	for i := 0; i < programLayerFieldCount; i++ {
		putU16(image, layerTableBase+2*uint32(i), 0)
	}

	// Sample directory entry 0: loops after 4000 nibbles.
	putU32(image, sampleDirBase+0, 0)    // base
	putU32(image, sampleDirBase+4, 0)    // loopStart
	putU32(image, sampleDirBase+8, 4000) // loopEnd
	putU32(image, sampleDirBase+12, 1)   // flags: looped

	// Amplitude envelope row 0: climbs in one big step to a non-zero
	// plateau (target top byte 0x06, low 3 bits 5) and then, from
	// segment 5's all-zero row, holds there forever (zero rate).
	putU16(image, ampEnvBase+0, 0x1005)
	putU16(image, ampEnvBase+2, 0x3F00)

	return image
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(44100, log.New(io.Discard, "", 0))
	rom, err := NewROM(buildMinimalTestROM())
	if err != nil {
		t.Fatalf("NewROM: %v", err)
	}
	e.rom = rom
	e.playing = true
	return e
}

func TestMessageArgCount(t *testing.T) {
	cases := map[byte]int{0x90: 2, 0x80: 2, 0xB0: 2, 0xE0: 2, 0xC0: 1, 0xD0: 1, 0xF0: 0}
	for status, want := range cases {
		if got := messageArgCount(status); got != want {
			t.Errorf("messageArgCount(%#x) = %d, want %d", status, got, want)
		}
	}
}

func TestDispatchByteRunningStatus(t *testing.T) {
	e := newTestEngine(t)
	e.dispatchByte(0x90) // note-on, channel 0
	e.dispatchByte(60)
	e.dispatchByte(100)

	found := false
	for i := range e.voices {
		if e.voices[i].active && e.voices[i].noteNumber == 60 {
			found = true
		}
	}
	if !found {
		t.Fatal("note-on via running status should have allocated a voice")
	}

	// Running status repeats: a second note-on for a new note without
	// resending the 0x90 status byte.
	e.dispatchByte(64)
	e.dispatchByte(90)
	count := 0
	for i := range e.voices {
		if e.voices[i].active {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 active voices after running-status repeat, got %d", count)
	}
}

func TestDispatchByteRealTimeBytesIgnored(t *testing.T) {
	e := newTestEngine(t)
	e.runningStatus = 0x90
	e.dispatchByte(0xF8) // MIDI clock tick
	if e.pendingCount != 0 {
		t.Fatalf("real-time byte should not perturb pending arg count, got %d", e.pendingCount)
	}
}

func TestPitchBendUpdatesChannelState(t *testing.T) {
	e := newTestEngine(t)
	e.dispatchByte(0xE0)
	e.dispatchByte(0x00)
	e.dispatchByte(0x7F) // MSB 0x7F, LSB 0 -> (0x7F<<7)-8192 = 8064
	if e.channels[0].pitchBend != 8064 {
		t.Fatalf("pitchBend = %d, want 8064", e.channels[0].pitchBend)
	}
}

func TestHandleSysexGeneralMidiReset(t *testing.T) {
	e := newTestEngine(t)
	e.channels[3].program = 40
	e.handleSysex([]byte{0x7E, 0x7F, 0x09, 0x01})
	if e.channels[3].program != 0 {
		t.Fatalf("GM reset should restore program 0, got %d", e.channels[3].program)
	}
}

func TestHandleSysexRequiresCasioHeader(t *testing.T) {
	e := newTestEngine(t)
	e.gov.setUserCeiling(10)
	e.handleSysex([]byte{0x41, 0x0E, 0x03, 0x10, 32}) // wrong manufacturer byte
	if e.gov.requestedCeiling != 10 {
		t.Fatalf("mismatched header should not apply polyphony sysex, requestedCeiling = %d", e.gov.requestedCeiling)
	}
}

func TestHandlePolyphonySysex(t *testing.T) {
	e := newTestEngine(t)
	e.handleSysex([]byte{0x44, 0x0E, 0x03, 0x10, 16})
	if e.gov.requestedCeiling != 24 {
		t.Fatalf("polyphony sysex command 0x10 should set ceiling to 24, got %d", e.gov.requestedCeiling)
	}
}
