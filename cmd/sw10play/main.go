// Command sw10play is a minimal host for the CASIO SW-10 General MIDI
// software synthesizer core: it loads a ROM image, opens an audio
// output stream, and either plays a scripted Lua score or turns the
// local keyboard into a one-octave piano.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/sw10emu/synthcore"
)

func main() {
	romPath := flag.String("rom", "", "path to the 2 MiB wavetable ROM image")
	scriptPath := flag.String("script", "", "optional Lua score file to play and exit")
	sampleRate := flag.Uint("rate", 44100, "output sample rate in Hz")
	polyphony := flag.Uint("polyphony", 32, "initial polyphony ceiling")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "sw10play: -rom is required")
		os.Exit(2)
	}

	if err := run(*romPath, *scriptPath, uint32(*sampleRate), int(*polyphony)); err != nil {
		log.Fatalf("sw10play: %v", err)
	}
}

func run(romPath, scriptPath string, sampleRate uint32, polyphony int) error {
	image, err := loadROMImage(romPath, 2*1024*1024)
	if err != nil {
		return err
	}

	e := sw10.NewEngine(sampleRate, log.New(os.Stderr, "sw10: ", log.LstdFlags))
	if err := e.SetParameter(sw10.ParameterROMAddress, image); err != nil {
		return err
	}
	if err := e.SetParameter(sw10.ParameterPolyphony, polyphony); err != nil {
		return err
	}
	if err := e.PlaybackStart(); err != nil {
		return err
	}
	defer e.PlaybackStop()

	output, err := newOtoOutput(int(sampleRate))
	if err != nil {
		return fmt.Errorf("opening audio output: %w", err)
	}
	output.setupPlayer(e)
	output.start()
	defer output.close()

	if scriptPath != "" {
		return runScore(e, scriptPath)
	}

	return runInteractive(e)
}

// runInteractive turns the terminal into a one-octave piano until the
// user presses Ctrl-C, coordinating the console reader goroutine and
// the interrupt signal with an errgroup the way a multi-goroutine CLI
// host naturally does.
func runInteractive(e *sw10.Engine) error {
	fmt.Println("sw10play: z s x d c v g b h n j m , play C4..C5, space releases, Ctrl-C quits")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	var channel byte = 0
	console := newConsoleHost(func(note int, on bool) {
		status := byte(0x80)
		velocity := byte(0)
		if on {
			status = 0x90
			velocity = 100
		}
		e.AddMidiData(0, []byte{status | channel, byte(note), velocity})
	})
	console.start()

	g := new(errgroup.Group)
	g.Go(func() error {
		select {
		case <-sigCh:
		case <-console.done:
		}
		console.stop()
		return nil
	})

	<-console.done
	return g.Wait()
}
