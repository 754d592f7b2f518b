package sw10

// programLayerFieldCount is how many sequential 16-bit fields make up one
// program layer record in ROM section 1.
const programLayerFieldCount = 14

// programLayerShiftedFields lists which of the 14 sequential fields are
// stored as a high-byte scale and must be arithmetic-shifted right by 8
// after reading; the rest (sample index, sample offset, fine tune, and
// the two envelope row note selectors) are used at their full 16-bit
// width.
var programLayerShiftedFields = [9]int{3, 4, 5, 6, 7, 8, 11, 12, 13}

// programLayer is one of a program's up to two layer records, unpacked
// from a sequential run of 14 ROM fields. A program whose first layer's
// sampleOffset has bit 15 set plays a second layer alongside the first,
// started and stopped together from the same note-on/note-off.
type programLayer struct {
	sampleIndex int16 // data[0]: high byte selects the note-tracking table bias
	// sampleOffset packs three things: bits 0-11 are the sample directory
	// index (see sampleDirectorySection), bits 12-14 are a transpose shift,
	// and bit 15 marks that a second layer follows this one.
	sampleOffset      int16
	fineTune          int16 // data[2]: per-layer fine tune, field_56
	detuneA           int16 // data[3]>>8 (not consumed by this engine's wavetable model)
	detuneB           int16 // data[4]>>8 (not consumed)
	panOffset         int16 // data[5]>>8, added to channel pan for non-drum voices
	loopShift         int16 // data[6]>>8 (not consumed)
	pitchModSens      int16 // data[7]>>8, the LFO/pressure/modulation mix's fixed term
	lfoDepthIndex     int16 // data[8]>>8, indexes octaveTable's LFO sub-range
	pitchRowNote      int16 // data[9]: pitch envelope row selector
	ampRowNote        int16 // data[10]: amplitude envelope row selector
	pitchConstant     int16 // data[11]>>8, seeds the voice's pitch baseline
	velocityCurveSign int16 // data[12]>>8 (not ported, see DESIGN.md)
	velocityCurveBias int16 // data[13]>>8 (not ported)
}

// dualLayer reports whether this layer's sampleOffset carries the
// second-layer flag.
func (l programLayer) dualLayer() bool { return uint16(l.sampleOffset)&(1<<15) != 0 }

// sampleDirectoryIndex is the low 12 bits of sampleOffset.
func (l programLayer) sampleDirectoryIndex() uint32 { return uint32(l.sampleOffset) & 0xFFF }

// decodeProgramLayer reads one 14-field layer record starting at offset
// and unshifts the nine high-byte-scaled fields.
func decodeProgramLayer(rom *ROM, offset uint32) programLayer {
	c := rom.seek(offset)
	var raw [programLayerFieldCount]int16
	for i := range raw {
		raw[i] = c.readI16()
	}
	for _, i := range programLayerShiftedFields {
		raw[i] >>= 8
	}
	return programLayer{
		sampleIndex:       raw[0],
		sampleOffset:      raw[1],
		fineTune:          raw[2],
		detuneA:           raw[3],
		detuneB:           raw[4],
		panOffset:         raw[5],
		loopShift:         raw[6],
		pitchModSens:      raw[7],
		lfoDepthIndex:     raw[8],
		pitchRowNote:      raw[9],
		ampRowNote:        raw[10],
		pitchConstant:     raw[11],
		velocityCurveSign: raw[12],
		velocityCurveBias: raw[13],
	}
}

// sampleDirectorySection indexes the wavetable's raw ADPCM sample data: a
// flat array of fixed-width records, one per sampleDirectoryIndex, each
// holding the sample's absolute ROM byte offset and its loop bounds in
// nibble units.
const sampleDirectorySection = 2

// sampleDirectoryRecordBytes is the on-disk width of one sampleRecord:
// three uint32 fields (base offset, loop start, loop end in nibbles) plus
// a uint32 flags word whose bit 0 marks the sample as looping.
const sampleDirectoryRecordBytes = 16

type sampleRecord struct {
	base      uint32
	loopStart uint32
	loopEnd   uint32
	looped    bool
}

// lookupSample resolves a layer's sampleDirectoryIndex to its absolute
// ROM sample data and loop bounds.
func lookupSample(rom *ROM, index uint32) sampleRecord {
	offset := rom.SectionBase(sampleDirectorySection) + index*sampleDirectoryRecordBytes
	c := rom.seek(offset)
	base := uint32(c.readU16()) | uint32(c.readU16())<<16
	loopStart := uint32(c.readU16()) | uint32(c.readU16())<<16
	loopEnd := uint32(c.readU16()) | uint32(c.readU16())<<16
	flags := uint32(c.readU16()) | uint32(c.readU16())<<16
	return sampleRecord{base: base, loopStart: loopStart, loopEnd: loopEnd, looped: flags&1 != 0}
}

// layerProgramOffset resolves a channel's active program number and layer
// index to the ROM layer-table base offset, following the driver's double
// indirection: the program number indexes the program table (section 19)
// to find an offset into section 1, which holds the per-layer records
// themselves, 14 fields (28 bytes) per layer, two layers back to back.
func layerProgramOffset(rom *ROM, program, layer int) uint32 {
	programEntry := rom.SectionBase(programTableSection) + 2*uint32(program)
	layerIndex := rom.FetchU16At(programEntry)
	base := rom.SectionBase(layerTableSection) + uint32(layerIndex)
	return base + uint32(layer)*uint32(programLayerFieldCount)*2
}
