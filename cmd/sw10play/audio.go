package main

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/sw10emu/synthcore"
)

// otoOutput streams stereo 16-bit PCM from an Engine into the host audio
// device. Grounded on the oto/v3 wiring idiom used for direct engine
// playback: an atomic engine pointer guards the hot Read() path so
// setupPlayer can be called again for a new session without a lock.
type otoOutput struct {
	ctx     *oto.Context
	player  *oto.Player
	engine  atomic.Pointer[sw10.Engine]
	pcmBuf  []int16
	started bool
	mutex   sync.Mutex
}

func newOtoOutput(sampleRate int) (*otoOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &otoOutput{ctx: ctx}, nil
}

func (o *otoOutput) setupPlayer(e *sw10.Engine) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.engine.Store(e)
	o.player = o.ctx.NewPlayer(o)
	o.pcmBuf = make([]int16, 4096)
}

// Read fills p with interleaved little-endian int16 stereo samples
// rendered on demand from the current engine.
func (o *otoOutput) Read(p []byte) (int, error) {
	e := o.engine.Load()
	if e == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	frames := len(p) / 4
	if cap(o.pcmBuf) < frames*2 {
		o.pcmBuf = make([]int16, frames*2)
	}
	samples := o.pcmBuf[:frames*2]
	e.FillOutputBuffer(samples)

	for i, s := range samples {
		p[2*i] = byte(s)
		p[2*i+1] = byte(uint16(s) >> 8)
	}
	return len(p), nil
}

func (o *otoOutput) start() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if !o.started && o.player != nil {
		o.player.Play()
		o.started = true
	}
}

func (o *otoOutput) close() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.player != nil {
		_ = o.player.Close()
		o.player = nil
	}
	o.started = false
}
