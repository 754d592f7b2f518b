package sw10

// reverbRingSize is the length of the shared reverb delay ring. Every
// tap offset below is taken modulo this size, so the ring never needs
// per-tap buffers of their own; a write at one relative offset becomes
// readable at another relative offset once the ring index has advanced
// far enough to bring them into alignment, which is what gives the
// network its delay lines.
const reverbRingSize = 0x8000 // 32768
const reverbRingMask = reverbRingSize - 1

// Allpass tap offsets for the four-stage allpass chain that opens the
// network: each stage reads readOff, writes writeOff, and threads its
// running value forward to the next stage.
const (
	allpass1Read, allpass1Write = 0, 500
	allpass2Read, allpass2Write = 501, 826
	allpass3Read, allpass3Write = 827, 1038
	allpass4Read, allpass4Write = 1039, 1176
)

// Comb tap offsets for the two-stage comb network fed by the allpass
// chain's output: each stage reads a primary tap and a feedback tap,
// writes a shifted-down intermediate value and a fed-back stored value.
const (
	comb1Primary, comb1Feedback         = 1177, 1179
	comb1Intermediate, comb1Stored      = 1178, 3177
	comb2Primary, comb2Feedback         = 3178, 3180
	comb2Intermediate, comb2Stored      = 3179, 5118
	outputTapLeftA, outputTapLeftB      = 1179, 3335
	outputTapRightA, outputTapRightB    = 1339, 3180
)

// reverb implements the Schroeder-style four-allpass, two-comb
// reverberator shared by every voice: a single ring buffer indexed by
// (index+offset)&0x7FFF stands in for the many named delay lines of the
// original driver. shift is the reverb intensity control (0 or 1,
// smaller shift means louder wet signal) set by a reverb SysEx command.
type reverb struct {
	ring    [reverbRingSize]int32
	index   uint32
	enabled bool
	shift   int32
}

func (r *reverb) at(offset uint32) int32 {
	return r.ring[(r.index+offset)&reverbRingMask]
}

func (r *reverb) set(offset uint32, value int32) {
	r.ring[(r.index+offset)&reverbRingMask] = value
}

// process feeds one new input sample (the dry mix, already attenuated)
// through the allpass chain and comb pair, advances the ring cursor, and
// returns the stereo wet output already scaled by the reverb's shift.
func (r *reverb) process(input int32) (left, right int32) {
	x := input

	d := r.at(allpass1Read)
	r.set(allpass1Write, x-(d>>1))
	x = (x >> 1) + d

	d = r.at(allpass2Read)
	r.set(allpass2Write, x-(d>>1))
	x = (x >> 1) + d

	d = r.at(allpass3Read)
	r.set(allpass3Write, x-(d>>1))
	x = (x >> 1) + d

	d = r.at(allpass4Read)
	r.set(allpass4Write, x-(d>>1))
	x = (x >> 1) + d

	carry := x >> 1

	f := r.at(comb1Primary) - ((96 * r.at(comb1Feedback)) >> 8)
	r.set(comb1Intermediate, f>>3)
	r.set(comb1Stored, f+carry)

	f = r.at(comb2Primary) - ((97 * r.at(comb2Feedback)) >> 8)
	r.set(comb2Intermediate, f>>3)
	r.set(comb2Stored, f+carry)

	left = (r.at(outputTapLeftA) + r.at(outputTapLeftB)) >> r.shift
	right = (r.at(outputTapRightA) + r.at(outputTapRightB)) >> r.shift

	r.index = (r.index + 1) & reverbRingMask
	return left, right
}

// mixVoice accumulates one voice's current sample into the dry stereo
// bus using its pan shift coefficients.
func mixVoice(sample, panLeft, panRight int32) (dryLeft, dryRight int32) {
	dryLeft = sample >> panLeft
	dryRight = sample >> panRight
	return
}

// clampSample saturates a mixed 32-bit accumulator into 16-bit signed
// PCM range. The lower bound saturates one count early, to -32767 not
// -32768, matching the asymmetric clamp the ROM mixer applies.
func clampSample(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v <= -32767 {
		return -32767
	}
	return int16(v)
}
