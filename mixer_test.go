package sw10

import "testing"

func TestClampSampleSaturates(t *testing.T) {
	if got := clampSample(100000); got != 32767 {
		t.Fatalf("clampSample(100000) = %d, want 32767", got)
	}
	if got := clampSample(-100000); got != -32767 {
		t.Fatalf("clampSample(-100000) = %d, want -32767 (the ROM mixer's asymmetric floor)", got)
	}
	if got := clampSample(1234); got != 1234 {
		t.Fatalf("clampSample(1234) = %d, want 1234", got)
	}
}

func TestMixVoiceAppliesPanShifts(t *testing.T) {
	left, right := mixVoice(1000, 1, 3)
	if left != 500 {
		t.Fatalf("left = %d, want 500", left)
	}
	if right != 125 {
		t.Fatalf("right = %d, want 125", right)
	}
}

func TestReverbSilenceStaysSilent(t *testing.T) {
	var r reverb
	for i := 0; i < 8192; i++ {
		l, w := r.process(0)
		if l != 0 || w != 0 {
			t.Fatalf("reverb fed silence produced nonzero output at tick %d: %d/%d", i, l, w)
		}
	}
}

func TestReverbImpulseProducesTail(t *testing.T) {
	var r reverb
	r.process(10000)
	sawNonzero := false
	for i := 0; i < reverbRingSize; i++ {
		l, w := r.process(0)
		if l != 0 || w != 0 {
			sawNonzero = true
			break
		}
	}
	if !sawNonzero {
		t.Fatal("an impulse should produce a nonzero reverb tail somewhere in one full ring cycle")
	}
}
