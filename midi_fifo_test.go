package sw10

import "testing"

func TestFIFOEmptyInitially(t *testing.T) {
	var f midiFIFO
	if !f.empty() {
		t.Fatal("fresh FIFO should be empty")
	}
	if _, result := f.fifoNext(0); result != dequeueEmpty {
		t.Fatalf("fifoNext on empty FIFO = %v, want dequeueEmpty", result)
	}
}

func TestFIFOReadyAfterLatencyGuard(t *testing.T) {
	var f midiFIFO
	f.pushByte(1000, 0x90)

	if _, result := f.fifoNext(1000); result != dequeueHeld {
		t.Fatalf("fifoNext before latency guard elapses = %v, want dequeueHeld", result)
	}
	v, result := f.fifoNext(1000 + latencyGuardMillis + 1)
	if result != dequeueReady {
		t.Fatalf("fifoNext after latency guard = %v, want dequeueReady", result)
	}
	if v != 0x90 {
		t.Fatalf("dequeued value = %#x, want 0x90", v)
	}
	if !f.empty() {
		t.Fatal("FIFO should be empty after the only byte is committed")
	}
}

func TestFIFOPreservesByteOrder(t *testing.T) {
	var f midiFIFO
	f.addMidiData(0, []byte{0x90, 60, 100})

	now := uint32(latencyGuardMillis + 1)
	var got []byte
	for {
		v, result := f.fifoNext(now)
		if result == dequeueEmpty {
			break
		}
		if result != dequeueReady {
			t.Fatalf("unexpected dequeue result %v", result)
		}
		got = append(got, v)
	}
	want := []byte{0x90, 60, 100}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestFIFOStaleEventIsCorrupt(t *testing.T) {
	var f midiFIFO
	f.pushByte(0, 0x90)

	_, result := f.fifoNext(staleWindowMillis + 1)
	if result != dequeueCorrupt {
		t.Fatalf("fifoNext on stale event = %v, want dequeueCorrupt", result)
	}
}

func TestFIFODropsOnOverrunRatherThanCorrupting(t *testing.T) {
	var f midiFIFO
	for i := 0; i < int(midiFIFOCapacity); i++ {
		f.pushByte(0, byte(i))
	}
	if f.empty() {
		t.Fatal("FIFO should hold as many bytes as fit")
	}
}

func TestSaturatingSub(t *testing.T) {
	if got := saturatingSub(5, 10); got != 0 {
		t.Fatalf("saturatingSub(5, 10) = %d, want 0", got)
	}
	if got := saturatingSub(10, 5); got != 5 {
		t.Fatalf("saturatingSub(10, 5) = %d, want 5", got)
	}
}
