package psymachine

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// Params is the validated, bounded input of the generator. Notes[0] is the
	// base note, the rest are the other notes; Notes is never empty.
	//
	// The weights are percentages. They are not clamped here: values outside
	// [0, 100] saturate when the generator rolls them.
	Params struct {
		Notes []string

		BaseNoteWeight         int
		OtherNoteWeight        int
		RemoveWeight           int
		AddWeight              int
		ChangeWeight           int
		NoteOffWeight          int
		NoteOffVariationWeight int
		FlutterWeight          int

		TrackLength    int
		ArpeggioLength int // never larger than TrackLength
		TicksPerBeat   int // at least 1
		Instrument     string
		Seed           int32

		NoteOnFirstTick bool
		NoteOffOnBeat   bool
	}

	// ValidationError is returned when the input cannot be turned into Params.
	// Msg is meant to be shown to the user as is.
	ValidationError struct {
		Msg string
	}
)

const (
	DefaultTrackLength    = 256
	DefaultArpeggioLength = 64
	DefaultTicksPerBeat   = 8
)

// ErrNoBaseNote is the message of the ValidationError returned when the note
// fields contain no notes.
const ErrNoBaseNote = "Base note is required."

func (e *ValidationError) Error() string {
	return e.Msg
}

// Step returns the distance, in rows, between the rows the generator places
// notes on: a quarter of a beat, but at least one row.
func (p *Params) Step() int {
	return max(1, p.TicksPerBeat/4)
}

// Params validates the preset and converts it to generator parameters.
// Numbers that do not parse, or parse to zero, fall back to their defaults;
// the arpeggio is shortened to the track length and ticks per beat is at
// least 1. The only error is a *ValidationError when there are no notes.
func (p Preset) Params() (Params, error) {
	notes := ParseNotes(strings.TrimSpace(p.BaseNote) + " " + strings.TrimSpace(p.OtherNotes))
	if len(notes) == 0 {
		return Params{}, &ValidationError{Msg: ErrNoBaseNote}
	}
	ret := Params{
		Notes:                  notes,
		BaseNoteWeight:         parseInt(p.BaseNoteP, 0),
		OtherNoteWeight:        parseInt(p.OtherNotesP, 0),
		RemoveWeight:           parseInt(p.RemoveNoteP, 0),
		AddWeight:              parseInt(p.AddNoteP, 0),
		ChangeWeight:           parseInt(p.ChangeNoteP, 0),
		NoteOffWeight:          parseInt(p.NoteOffP, 0),
		NoteOffVariationWeight: parseInt(p.NoteOffVariationP, 0),
		FlutterWeight:          parseInt(p.NoteFlutterP, 0),
		TrackLength:            parseInt(p.TrackLen, DefaultTrackLength),
		ArpeggioLength:         parseInt(p.ArpeggioLen, DefaultArpeggioLength),
		TicksPerBeat:           parseInt(p.TicksPerBeat, DefaultTicksPerBeat),
		Instrument:             strings.TrimSpace(p.InstrumentNumber),
		Seed:                   parseSeed(p.Seed),
		NoteOnFirstTick:        p.NoteOnFirstTick,
		NoteOffOnBeat:          p.NoteOffOnBeat,
	}
	if ret.TrackLength < 1 {
		ret.TrackLength = DefaultTrackLength
	}
	if ret.ArpeggioLength < 1 {
		ret.ArpeggioLength = DefaultArpeggioLength
	}
	ret.ArpeggioLength = min(ret.ArpeggioLength, ret.TrackLength)
	ret.TicksPerBeat = max(ret.TicksPerBeat, 1)
	return ret, nil
}

// ParseNotes splits the text on whitespace and upper-cases every token. The
// order of the tokens is kept and duplicates are not removed, as the position
// of a note in the list matters to the generator.
func ParseNotes(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	upper := cases.Upper(language.Und)
	ret := make([]string, len(fields))
	for i, f := range fields {
		ret[i] = upper.String(f)
	}
	return ret
}

func parseInt(s string, def int) int {
	return int(parseInt64(s, int64(def)))
}

// parseInt64 reads the leading decimal integer of s. When there is no
// integer, or the integer is zero or out of range, def is returned.
func parseInt64(s string, def int64) int64 {
	v, err := strconv.ParseInt(leadingInteger(s), 10, 64)
	if err != nil || v == 0 {
		return def
	}
	return v
}

// parseSeed reads the leading decimal integer of s as a double and wraps it
// to 32 bits, so seeds of any length map to a seed of the web form. Seeds
// that do not parse, or wrap to zero, are 0.
func parseSeed(s string) int32 {
	f, err := strconv.ParseFloat(leadingInteger(s), 64)
	if err != nil {
		return 0
	}
	return int32(int64(math.Mod(f, 1<<32)))
}

// leadingInteger returns the optionally signed run of digits at the start of
// s, ignoring leading whitespace and anything after the digits; or an empty
// string if there are no digits.
func leadingInteger(s string) string {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return ""
	}
	return s[:end]
}
