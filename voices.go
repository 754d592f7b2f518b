package sw10

// Instrument and program-table ROM sections.
const (
	programTableSection = 19 // program number -> layer-table offset
	layerTableSection   = 1  // layer record: sample/loop/envelope-row data
	panTableSection     = 17
)

// octaveFoldLow and octaveFoldHigh bound the MIDI note range the ROM's
// sample set actually covers; notes outside this range are folded back
// in by whole octaves rather than simply clamped.
const (
	octaveFoldLow  = 12
	octaveFoldHigh = 108
)

// foldNoteToOctaveRange mirrors the original driver's exact integer
// division formula for bringing an out-of-range note back within
// [octaveFoldLow, octaveFoldHigh] by repeated +-12 semitone steps.
func foldNoteToOctaveRange(note int) int {
	if note < octaveFoldLow {
		return note + 12*((23-note)/12)
	}
	if note > octaveFoldHigh {
		return note - 12*((note-97)/12)
	}
	return note
}

// FindVoice returns the index of the active voice sounding note on
// channel ch, or -1 if none is.
func (e *Engine) FindVoice(ch, note int) int {
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.channel == ch && v.noteNumber == note {
			return i
		}
	}
	return -1
}

// FindAvailable returns the index of an inactive voice slot within
// [0,ceiling), scanning in round-robin order from the pool's last
// allocation point so consecutive note-ons spread across the pool
// rather than always reusing the lowest free index. It returns -1 if
// every slot in range is active.
func (e *Engine) FindAvailable(ceiling int) int {
	if ceiling > len(e.voices) {
		ceiling = len(e.voices)
	}
	if ceiling <= 0 {
		return -1
	}
	for step := 0; step < ceiling; step++ {
		i := (e.recentVoiceIndex + step) % ceiling
		if !e.voices[i].active {
			e.recentVoiceIndex = (i + 1) % ceiling
			return i
		}
	}
	return -1
}

// Defragment moves every active voice whose index lies at or above
// ceiling down into a free slot below ceiling, so a ceiling that has
// just shrunk and then grown back can still find contiguous free space
// without disturbing voices that are still legitimately sounding.
func (e *Engine) Defragment(ceiling int) {
	if ceiling > len(e.voices) {
		ceiling = len(e.voices)
	}
	for i := ceiling; i < len(e.voices); i++ {
		if !e.voices[i].active {
			continue
		}
		for j := 0; j < ceiling; j++ {
			if !e.voices[j].active {
				e.voices[j], e.voices[i] = e.voices[i], e.voices[j]
				break
			}
		}
	}
}

// ReduceTo forcibly silences the quietest active voices until at most
// ceiling remain active. The polyphony governor calls this once it has
// shrunk the ceiling below the current active voice count, so rendering
// never has to fit more voices into a block than the ceiling allows.
func (e *Engine) ReduceTo(ceiling int) {
	for e.countActiveVoices() > ceiling {
		victim, quietest := -1, int32(1<<30)
		for i := range e.voices {
			v := &e.voices[i]
			if v.active && v.ampLevel < quietest {
				victim, quietest = i, v.ampLevel
			}
		}
		if victim < 0 {
			return
		}
		e.voices[victim].free()
	}
}

// stealVoice sacrifices the quietest voice within the current ceiling for
// a new note-on once FindAvailable and Defragment have both failed to
// turn up a free slot, preferring a voice already in release over the
// globally softest one.
func (e *Engine) stealVoice(ceiling int) int {
	if ceiling > len(e.voices) {
		ceiling = len(e.voices)
	}
	best, bestLevel := -1, int32(1<<30)
	for i := 0; i < ceiling; i++ {
		v := &e.voices[i]
		if v.flags.releasing() && v.ampLevel < bestLevel {
			best, bestLevel = i, v.ampLevel
		}
	}
	if best >= 0 {
		return best
	}
	for i := 0; i < ceiling; i++ {
		v := &e.voices[i]
		if v.ampLevel < bestLevel {
			best, bestLevel = i, v.ampLevel
		}
	}
	return best
}

// allocateVoice returns a free or stolen voice slot, defragmenting the
// pool before resorting to stealing.
func (e *Engine) allocateVoice(ceiling int) int {
	if slot := e.FindAvailable(ceiling); slot >= 0 {
		return slot
	}
	e.Defragment(ceiling)
	if slot := e.FindAvailable(ceiling); slot >= 0 {
		return slot
	}
	return e.stealVoice(ceiling)
}

// noteOn allocates and starts a voice for the given channel/note/velocity,
// folding the note into range on melodic channels (percussion-channel
// notes are used as-is, with the drum kit already chosen by
// programChange), and starting a second voice
// alongside the first when the program's first layer carries the
// dual-layer flag.
func (e *Engine) noteOn(ch int, note, velocity int) {
	if velocity == 0 {
		e.noteOff(ch, note)
		return
	}

	c := &e.channels[ch]
	drum := ch == drumChannel

	resolvedNote := note
	if !drum {
		resolvedNote = foldNoteToOctaveRange(note)
	}

	layer0 := decodeProgramLayer(e.rom, layerProgramOffset(e.rom, c.program, 0))
	e.startVoiceLayer(ch, resolvedNote, velocity, 0, layer0, drum)
	if layer0.dualLayer() {
		layer1 := decodeProgramLayer(e.rom, layerProgramOffset(e.rom, c.program, 1))
		e.startVoiceLayer(ch, resolvedNote, velocity, 1, layer1, drum)
	}
}

// startVoiceLayer allocates and initializes one voice slot to play a
// single program layer.
func (e *Engine) startVoiceLayer(ch, resolvedNote, velocity, layerIdx int, layer programLayer, drum bool) {
	c := &e.channels[ch]

	ceiling := e.gov.ceiling
	slot := e.allocateVoice(ceiling)
	if slot < 0 {
		return
	}

	v := &e.voices[slot]
	*v = voice{}
	v.active = true
	v.channel = ch
	v.layer = layerIdx
	v.noteNumber = resolvedNote
	v.velocity = velocity
	v.drum = drum

	sample := lookupSample(e.rom, layer.sampleDirectoryIndex())
	v.sampleBase = sample.base
	v.loopStart = sample.loopStart
	v.loopEnd = sample.loopEnd
	v.looped = sample.looped

	v.pitchRow = uint32(layer.pitchRowNote) * envelopeRowBytes
	v.ampRow = uint32(layer.ampRowNote) * envelopeRowBytes

	v.lfoDepthIndex = int32(layer.lfoDepthIndex)
	v.pitchModSens = int32(layer.pitchModSens)
	v.pitchBaseline = computePitchBaseline(c, layer, resolvedNote)
	v.voiceScale = 127 // same maximal gain scale for every voice; no per-instrument gain is read from ROM, see DESIGN.md

	// A new voice held under an active sostenuto on the same channel
	// inherits the hold from whatever voice it is replacing the sound
	// of, so a sustained chord followed by a sostenuto-held retrigger
	// doesn't cut the pedal hold short.
	if c.sostenutoOn() {
		for j := range e.voices {
			o := &e.voices[j]
			if j != slot && o.active && o.channel == ch && o.noteNumber == resolvedNote && o.flags.held() {
				v.flags.setHeld(true)
				break
			}
		}
	}
	if c.sustainOn() {
		v.flags.setHeld(true)
	}

	if drum {
		e.applyDrumKill(v)
		panEntry := e.rom.SectionBase(panTableSection)
		v.pan = int32(e.rom.FetchI16At(panEntry + 4*uint32(resolvedNote)))
	} else {
		panBase := int32(e.rom.FetchI16At(e.rom.SectionBase(panTableSection)))
		p := c.pan + int32(layer.panOffset)
		if p > 127 {
			p = 127
		} else if p < -127 {
			p = -127
		}
		v.pan = panBase + 2*p + 256
	}

	updatePan(v)
	fetchPitchSegment(v, e.rom)
	fetchAmpSegment(v, e.rom)
	v.ampGain = expInterpolate(v.ampLevel)
	v.channelGain = channelGainFor(c, v.voiceScale)
	v.smoothTarget = (v.ampGain * v.channelGain) >> 14
	v.phaseInc = phaseIncrementFor(c.pitchBend, c.pitchBendSense, c.fineTune, v.pitchBaseline+(v.pitchLevel>>3), e.sampleRate)
}

// computePitchBaseline folds a layer's key-tracking transpose, its fixed
// pitch constant and the voice's fine tune into the constant pitch term
// the phase-increment rebuild adds the LFO/pressure mix and envelope
// level to every control tick.
func computePitchBaseline(c *channel, layer programLayer, resolvedNote int) int32 {
	transposeShift := uint((layer.sampleOffset >> 12) & 0x7)
	fineOctaves := (int32(layer.fineTune) + 128) >> 8
	noteTerm := foldNoteToOctaveRange(resolvedNote + int(c.coarseTune) + int(fineOctaves))

	baseline := (int32(noteTerm) - int32(layer.sampleIndex)) << 8
	baseline >>= transposeShift

	return baseline + int32(layer.pitchConstant) + int32(int8(layer.fineTune))
}

// applyDrumKill silences any still-ringing drum voice sharing a kill
// pair with the incoming note, using the single flat drumKillPairs
// table described in tables.go.
func (e *Engine) applyDrumKill(newVoice *voice) {
	start := drumKillStart(e.channels[drumChannel].program)
	for i := start; drumKillPairs[i] != 0; i += 2 {
		if int(drumKillPairs[i]) != newVoice.noteNumber {
			continue
		}
		killNote := drumKillPairs[i+1]
		for j := range e.voices {
			v := &e.voices[j]
			if v.active && v.drum && int32(v.noteNumber) == killNote {
				v.free()
			}
		}
	}
}

// releaseVoice transitions one voice into its release phase: its
// envelope segment cursors reset and it immediately re-fetches fresh
// release-phase targets rather than waiting for the next scheduler tick.
func (e *Engine) releaseVoice(v *voice) {
	v.flags.setHeld(false)
	v.flags.setNoteOff(true)
	v.flags.resetSegments()
	fetchPitchSegment(v, e.rom)
	if !fetchAmpSegment(v, e.rom) {
		v.free()
	}
}

// noteOff releases a sounding voice on the given channel/note, honoring
// the sustain pedal hold rather than silencing it immediately; sostenuto
// is not consulted here. On the percussion channel only note 88 of drum
// kit 7 (program 128+7) is released; every other drum voice ignores
// note-off and plays its envelope out.
func (e *Engine) noteOff(ch, note int) {
	resolvedNote := note
	if ch != drumChannel {
		resolvedNote = foldNoteToOctaveRange(note)
	} else if e.channels[ch].program != 128+7 || note != 88 {
		return
	}

	for i := range e.voices {
		v := &e.voices[i]
		if !v.active || v.channel != ch || v.noteNumber != resolvedNote {
			continue
		}

		c := &e.channels[ch]
		if c.sustainOn() {
			v.flags.setHeld(true)
			continue
		}
		e.releaseVoice(v)
	}
}

// sustainRelease is invoked when a channel's sustain pedal is released:
// every held voice on that channel transitions into its release phase.
func (e *Engine) sustainRelease(ch int) {
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.channel == ch && v.flags.held() {
			e.releaseVoice(v)
		}
	}
}

// allNotesOff releases (not silences) every voice on a channel that is
// not held by the sustain pedal, as Control Change 123 requires.
func (e *Engine) allNotesOff(ch int) {
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.channel == ch && !v.flags.held() {
			e.releaseVoice(v)
		}
	}
}

// channelSoundsOff hard-kills every voice on a single channel immediately,
// as Control Change 120 (all sounds off) requires.
func (e *Engine) channelSoundsOff(ch int) {
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.channel == ch {
			v.free()
		}
	}
}

// allVoicesSoundsOff hard-kills every voice on every channel immediately,
// used by GM reset and by the MIDI FIFO corruption recovery path.
func (e *Engine) allVoicesSoundsOff() {
	for i := range e.voices {
		e.voices[i].free()
	}
}

// programChange updates a channel's active program number. On the
// percussion channel the incoming program number is first remapped
// through the eight-entry drum-kit lookup table; a program not present
// in that table is not a valid kit selection and the whole message is
// ignored, leaving the channel's current kit in effect.
func (e *Engine) programChange(ch, program int) {
	if ch == drumChannel {
		idx, ok := drumKitIndex(program)
		if !ok {
			return
		}
		program = 128 + idx
	}
	e.channels[ch].program = program
}
