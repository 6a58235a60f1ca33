// Package gomidi exports tracks as Standard MIDI Files.
package gomidi

import (
	"fmt"
	"io"

	"github.com/vsariola/psymachine"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Resolution is the number of MIDI ticks per quarter note in the exported
// files.
const Resolution = 960

type Options struct {
	BPM          float64 // defaults to 120
	TicksPerBeat int     // track rows per beat, defaults to 4
	Channel      uint8
	Velocity     uint8 // defaults to 100
}

// WriteTrack writes the track as a format 1 file with a tempo track and one
// note track. A note sounds from its row until the next note or note-off, or
// until the end of the track; empty rows hold the previous note. Note tokens
// that are not note names (see psymachine.NoteValue) are skipped.
func WriteTrack(w io.Writer, track psymachine.Track, opts Options) error {
	if opts.BPM <= 0 {
		opts.BPM = 120
	}
	if opts.TicksPerBeat < 1 {
		opts.TicksPerBeat = 4
	}
	if opts.Velocity == 0 {
		opts.Velocity = 100
	}
	ticksPerRow := uint32(max(Resolution/opts.TicksPerBeat, 1))
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(Resolution)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(opts.BPM))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return fmt.Errorf("error adding tempo track: %w", err)
	}

	var notes smf.Track
	var last uint32 // absolute tick of the previous event
	sounding := -1
	add := func(tick uint32, msg midi.Message) {
		notes.Add(tick-last, msg)
		last = tick
	}
	for row, c := range track {
		tick := uint32(row) * ticksPerRow
		switch c.Kind {
		case psymachine.KindNote:
			key, ok := psymachine.NoteValue(c.Note)
			if !ok || key > 127 {
				continue
			}
			if sounding >= 0 {
				add(tick, midi.NoteOff(opts.Channel, uint8(sounding)))
			}
			add(tick, midi.NoteOn(opts.Channel, uint8(key), opts.Velocity))
			sounding = key
		case psymachine.KindOff:
			if sounding >= 0 {
				add(tick, midi.NoteOff(opts.Channel, uint8(sounding)))
				sounding = -1
			}
		}
	}
	end := uint32(len(track)) * ticksPerRow
	if sounding >= 0 {
		add(end, midi.NoteOff(opts.Channel, uint8(sounding)))
	}
	notes.Close(end - last)
	if err := s.Add(notes); err != nil {
		return fmt.Errorf("error adding note track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}
