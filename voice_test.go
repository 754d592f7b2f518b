package sw10

import "testing"

func TestVoiceFlagsSegmentPacking(t *testing.T) {
	var f voiceFlags
	f.setPitchSegment(5)
	f.setAmpSegment(6)
	if f.pitchSegment() != 5 {
		t.Fatalf("pitchSegment() = %d, want 5", f.pitchSegment())
	}
	if f.ampSegment() != 6 {
		t.Fatalf("ampSegment() = %d, want 6", f.ampSegment())
	}
}

func TestVoiceFlagsHeldAndNoteOffIndependent(t *testing.T) {
	var f voiceFlags
	f.setHeld(true)
	f.setNoteOff(true)
	if !f.held() || !f.noteOff() {
		t.Fatal("held and noteOff should both be set")
	}
	f.setHeld(false)
	if f.held() {
		t.Fatal("setHeld(false) should clear held without touching noteOff")
	}
	if !f.noteOff() {
		t.Fatal("clearing held should not clear noteOff")
	}
}

func TestVoiceFlagsReleasingRequiresNoteOffAndNotHeld(t *testing.T) {
	var f voiceFlags
	if f.releasing() {
		t.Fatal("a fresh voice should not be releasing")
	}
	f.setNoteOff(true)
	if !f.releasing() {
		t.Fatal("note-off with no hold should be releasing")
	}
	f.setHeld(true)
	if f.releasing() {
		t.Fatal("a held voice should not be releasing even with note-off set")
	}
}

func TestVoiceFreeResetsLifecycle(t *testing.T) {
	v := &voice{}
	v.active = true
	v.noteNumber = 60
	v.flags.setNoteOff(true)
	v.free()
	if v.active {
		t.Fatal("free() should clear active")
	}
	if v.noteNumber != idleNote {
		t.Fatalf("free() should set noteNumber to idleNote, got %d", v.noteNumber)
	}
	if v.flags != 0 {
		t.Fatalf("free() should clear flags, got %#x", v.flags)
	}
}
