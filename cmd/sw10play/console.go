package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// pianoKeys maps a one-octave run of QWERTY keys to MIDI note numbers
// starting at middle C, the same "typing keyboard as piano" layout
// trackers and softsynth demos have used for decades.
var pianoKeys = map[byte]int{
	'z': 60, 's': 61, 'x': 62, 'd': 63, 'c': 64, 'v': 65, 'g': 66,
	'b': 67, 'h': 68, 'n': 69, 'j': 70, 'm': 71, ',': 72,
}

// consoleHost reads raw stdin in a background goroutine and turns
// recognized keys into note-on/note-off pairs against a channel.
// Grounded on the raw-mode stdin reader idiom: MakeRaw, a nonblocking
// syscall.Read loop, and a restore-on-Stop cleanup path.
type consoleHost struct {
	onNote  func(note int, on bool)
	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
	fd      int
	oldTerm *term.State
}

func newConsoleHost(onNote func(note int, on bool)) *consoleHost {
	return &consoleHost{
		onNote: onNote,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (h *consoleHost) start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sw10play: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldTerm = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "sw10play: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(h.fd, h.oldTerm)
		close(h.done)
		return
	}

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)
		down := make(map[byte]bool)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				b := buf[0]
				if b == 0x03 { // Ctrl-C
					return
				}
				// A raw terminal reports key-down only, never key-up, so
				// there is no natural note-off trigger; space releases
				// every currently-down key instead of auto-timing out.
				if b == ' ' {
					for k, wasDown := range down {
						if wasDown {
							h.onNote(pianoKeys[k], false)
							down[k] = false
						}
					}
					continue
				}
				if note, ok := pianoKeys[b]; ok && !down[b] {
					down[b] = true
					h.onNote(note, true)
				}
				continue
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

func (h *consoleHost) stop() {
	h.stopped.Do(func() { close(h.stopCh) })
	<-h.done
	_ = syscall.SetNonblock(h.fd, false)
	if h.oldTerm != nil {
		_ = term.Restore(h.fd, h.oldTerm)
	}
}
