package sw10

import "fmt"

// romSize is the fixed wavetable ROM image size expected by the engine.
const romSize = 2 * 1024 * 1024

// rootDirectoryOffset is the byte offset of the ROM's root section
// directory: a flat array of little-endian uint32 section base offsets.
const rootDirectoryOffset = 0x10034

// maxROMSections bounds how many directory entries are ever addressed.
const maxROMSections = 32

// ROM wraps a fixed-size wavetable image and exposes the section/offset
// addressing scheme the instrument tables, envelope curves and sample
// data all share. Section N's base offset lives at
// rootDirectoryOffset + 4*N; every other table is reached by adding a
// byte offset to that base and fetching through FetchU16At or
// FetchU32At.
type ROM struct {
	data [romSize]byte
}

// NewROM copies image into a new ROM, validating its size.
func NewROM(image []byte) (*ROM, error) {
	if len(image) != romSize {
		return nil, fmt.Errorf("sw10: ROM image must be exactly %d bytes, got %d", romSize, len(image))
	}
	r := &ROM{}
	copy(r.data[:], image)
	return r, nil
}

// SectionBase returns the byte offset recorded in the root directory for
// the given section number.
func (r *ROM) SectionBase(section uint32) uint32 {
	if section >= maxROMSections {
		return 0
	}
	return r.FetchU32At(rootDirectoryOffset + 4*section)
}

// FetchU16At reads a little-endian uint16 at an absolute ROM byte offset.
func (r *ROM) FetchU16At(offset uint32) uint16 {
	if int(offset)+2 > len(r.data) {
		return 0
	}
	return uint16(r.data[offset]) | uint16(r.data[offset+1])<<8
}

// FetchI16At reads a little-endian int16 at an absolute ROM byte offset.
func (r *ROM) FetchI16At(offset uint32) int16 {
	return int16(r.FetchU16At(offset))
}

// FetchU32At reads a little-endian uint32 at an absolute ROM byte offset.
func (r *ROM) FetchU32At(offset uint32) uint32 {
	if int(offset)+4 > len(r.data) {
		return 0
	}
	return uint32(r.data[offset]) | uint32(r.data[offset+1])<<8 |
		uint32(r.data[offset+2])<<16 | uint32(r.data[offset+3])<<24
}

// FetchByteAt reads a single byte at an absolute ROM byte offset.
func (r *ROM) FetchByteAt(offset uint32) byte {
	if int(offset) >= len(r.data) {
		return 0
	}
	return r.data[offset]
}

// cursor walks sequential little-endian fields starting at a ROM offset,
// mirroring the session-style table readers used to unpack per-layer
// instrument records.
type cursor struct {
	rom *ROM
	pos uint32
}

func (r *ROM) seek(offset uint32) cursor {
	return cursor{rom: r, pos: offset}
}

func (c *cursor) readU16() uint16 {
	v := c.rom.FetchU16At(c.pos)
	c.pos += 2
	return v
}

func (c *cursor) readI16() int16 {
	return int16(c.readU16())
}

func (c *cursor) readByte() byte {
	v := c.rom.FetchByteAt(c.pos)
	c.pos++
	return v
}

func (c *cursor) skip(n uint32) {
	c.pos += n
}
