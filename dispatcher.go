package sw10

// messageArgCount returns how many data bytes follow a channel voice
// status byte (masking off the channel nibble).
func messageArgCount(status byte) int {
	switch status & 0xF0 {
	case 0x80, 0x90, 0xA0, 0xB0, 0xE0:
		return 2
	case 0xC0, 0xD0:
		return 1
	}
	return 0
}

// dispatchByte feeds one MIDI byte through a small running-status state
// machine, accumulating data bytes until a channel voice message is
// complete, and separately accumulating System Exclusive bodies until
// the terminating F7.
func (e *Engine) dispatchByte(b byte) {
	if e.inSysex {
		if b == 0xF7 {
			e.handleSysex(e.sysexBuf)
			e.sysexBuf = e.sysexBuf[:0]
			e.inSysex = false
			return
		}
		if b < 0x80 {
			e.sysexBuf = append(e.sysexBuf, b)
		}
		return
	}

	if b == 0xF0 {
		e.inSysex = true
		e.sysexBuf = e.sysexBuf[:0]
		return
	}
	if b >= 0xF8 {
		return // real-time bytes carry no channel-voice state to update
	}

	if b&0x80 != 0 {
		e.runningStatus = b
		e.pendingCount = 0
		return
	}

	if e.runningStatus == 0 {
		return
	}

	needed := messageArgCount(e.runningStatus)
	if needed == 0 {
		return
	}
	e.pendingArgs[e.pendingCount] = b
	e.pendingCount++
	if e.pendingCount < needed {
		return
	}
	e.pendingCount = 0
	e.dispatchChannelMessage(e.runningStatus, e.pendingArgs[0], e.pendingArgs[1])
}

func (e *Engine) dispatchChannelMessage(status, a0, a1 byte) {
	ch := int(status & 0x0F)
	switch status & 0xF0 {
	case 0x80:
		e.noteOff(ch, int(a0))
	case 0x90:
		e.noteOn(ch, int(a0), int(a1))
	case 0xA0:
		// polyphonic key pressure: not modeled, the ROM core has no
		// per-note aftertouch response.
	case 0xB0:
		e.dispatchControlChange(ch, int32(a0), int32(a1))
	case 0xC0:
		e.programChange(ch, int(a0))
	case 0xD0:
		e.channels[ch].channelPressure = int32(a0)
	case 0xE0:
		bend := (int32(a1)<<7 | int32(a0)) - 8192
		e.channels[ch].pitchBend = bend
	}
}

func (e *Engine) dispatchControlChange(ch int, controller, value int32) {
	c := &e.channels[ch]
	wasSustain := c.sustainOn()
	c.controlChange(controller, value)

	switch controller {
	case 64:
		if wasSustain && !c.sustainOn() {
			e.sustainRelease(ch)
		}
	case 120:
		e.channelSoundsOff(ch)
	case 123:
		e.allNotesOff(ch)
	}
}

// SysEx header bytes this core recognizes: a CASIO manufacturer ID
// (0x44), device family 0x0E, and model 0x03.
var sysexHeader = [3]byte{0x44, 0x0E, 0x03}

// handleSysex dispatches a complete System Exclusive body (the bytes
// between F0 and F7, header included). A GM System On message (the
// universal non-realtime "F0 7E <device> 09 01 F7" reset) and a GS reset
// ("F0 41 <device> 42 12 40 00 7F 00 41 F7") carry no CASIO header and
// are checked independently of it, each resetting like a GM reset; everything else
// is a CASIO-header command checked against three independent
// parameter ranges. Each range is guarded by the same header check and
// falls through to the next range's check on a miss rather than
// returning early; because the three switch ranges never overlap
// (polyphony 0x10-0x13, reverb 0x20-0x22, effect 0x40-0x4A) the net
// result is the same as a single dispatch, but the three-block shape is
// kept because that is how the ROM driver is actually structured.
func (e *Engine) handleSysex(body []byte) {
	if len(body) >= 4 && body[0] == 0x7E && body[2] == 0x09 && body[3] == 0x01 {
		e.generalMIDIReset()
		return
	}
	if len(body) >= 9 && body[0] == 0x41 && body[2] == 0x42 && body[3] == 0x12 && body[4] == 0x40 &&
		body[5] == 0x00 && body[6] == 0x7F && body[7] == 0x00 && body[8] == 0x41 {
		e.generalMIDIReset()
		return
	}

	if len(body) < 4 || body[0] != sysexHeader[0] || body[1] != sysexHeader[1] || body[2] != sysexHeader[2] {
		return
	}
	cmd := body[3]

	if body[0] == sysexHeader[0] && body[1] == sysexHeader[1] && body[2] == sysexHeader[2] {
		switch cmd {
		case 0x10, 0x11, 0x12, 0x13:
			e.handlePolyphonySysex(cmd)
		default:
			// falls through
		}
	}

	if body[0] == sysexHeader[0] && body[1] == sysexHeader[1] && body[2] == sysexHeader[2] {
		switch cmd {
		case 0x20, 0x21, 0x22:
			e.handleReverbSysex(cmd)
		default:
		}
	}

	if body[0] == sysexHeader[0] && body[1] == sysexHeader[1] && body[2] == sysexHeader[2] {
		switch {
		case cmd >= 0x40 && cmd <= 0x4A:
			e.handleEffectSysex(cmd)
		default:
		}
	}
}

// handlePolyphonySysex applies one of the four fixed polyphony presets;
// the command byte itself selects the ceiling, there is no accompanying
// data byte.
func (e *Engine) handlePolyphonySysex(cmd byte) {
	switch cmd {
	case 0x10:
		e.gov.setUserCeiling(24)
	case 0x11:
		e.gov.setUserCeiling(32)
	case 0x12:
		e.gov.setUserCeiling(48)
	case 0x13:
		e.gov.setUserCeiling(64)
	}
}

// handleReverbSysex applies one of the three fixed reverb presets: off,
// or on at one of two intensity shifts (a smaller shift is a louder wet
// signal).
func (e *Engine) handleReverbSysex(cmd byte) {
	switch cmd {
	case 0x20:
		e.reverb.enabled = false
	case 0x21:
		e.reverb.enabled = true
		e.reverb.shift = 1
	case 0x22:
		e.reverb.enabled = true
		e.reverb.shift = 0
	}
}

// handleEffectSysex selects the ancillary chorus/delay variant (0-10);
// the command byte low nibble is the variant, there is no data byte.
// Not consumed by this engine's reverb-only mix bus, but the selection
// is retained in Engine.effectType for a future send path.
func (e *Engine) handleEffectSysex(cmd byte) {
	e.effectType = int32(cmd - 0x40)
}

// generalMIDIReset restores every channel to its power-on defaults and
// silences all voices, as issued by a GM System On SysEx (F0 7E 7F 09
// 01 F7) or a GS reset SysEx.
func (e *Engine) generalMIDIReset() {
	for i := range e.channels {
		e.channels[i].resetAll()
	}
	e.allVoicesSoundsOff()
}
