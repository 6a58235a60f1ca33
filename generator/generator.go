// Package generator turns Params into a Track. Generation is a fixed list of
// passes over one track buffer, all reading from the same Source; the order
// of the passes, and the number of values each one reads, is what makes the
// result reproducible from a seed.
package generator

import "github.com/vsariola/psymachine"

type pass func(src Source, p *psymachine.Params, track psymachine.Track)

var passes = []pass{
	firstTick,
	arpeggio,
	arpeggioNoteOffs,
	loopArpeggio,
	variations,
	flutter,
	noteOffsOnBeat,
	func(_ Source, _ *psymachine.Params, track psymachine.Track) { CleanNoteOffs(track) },
}

// Generate returns the track for the parameters, seeded with p.Seed.
func Generate(p psymachine.Params) psymachine.Track {
	return GenerateFrom(NewRand(p.Seed), p)
}

// GenerateFrom returns the track for the parameters, reading all random values
// from src. The lengths are clamped the same way Preset.Params does, so that
// hand-built Params cannot index outside the track. Params without notes give
// an empty track.
func GenerateFrom(src Source, p psymachine.Params) psymachine.Track {
	p.TrackLength = max(p.TrackLength, 0)
	p.ArpeggioLength = max(min(p.ArpeggioLength, p.TrackLength), 0)
	p.TicksPerBeat = max(p.TicksPerBeat, 1)
	track := psymachine.NewTrack(p.TrackLength)
	if len(p.Notes) == 0 || len(track) == 0 {
		return track
	}
	for _, f := range passes {
		f(src, &p, track)
	}
	return track
}

// firstTick always makes the draws for a note on the first row, so that the
// stream read by the later passes does not depend on NoteOnFirstTick.
func firstTick(src Source, p *psymachine.Params, track psymachine.Track) {
	ForceRandomNote(src, p, track, 0)
	if !p.NoteOnFirstTick {
		track[0] = psymachine.Empty
	}
}

func arpeggio(src Source, p *psymachine.Params, track psymachine.Track) {
	for a := 0; a < p.ArpeggioLength; a += p.Step() {
		RandomNote(src, p, track, a)
	}
}

func arpeggioNoteOffs(src Source, p *psymachine.Params, track psymachine.Track) {
	for a := 0; a < p.ArpeggioLength; a++ {
		if track[a].IsEmpty() && Chance(src, p.NoteOffWeight) {
			track[a] = psymachine.Off
		}
	}
}

// loopArpeggio repeats the arpeggio until the end of the track. The source
// row advances through the already copied rows, which tiles the arpeggio.
func loopArpeggio(_ Source, p *psymachine.Params, track psymachine.Track) {
	for a, b := p.ArpeggioLength, 0; a < len(track); a, b = a+1, b+1 {
		track[a] = track[b]
	}
}

// variations changes, removes and adds notes in the rows after the arpeggio,
// then sprinkles note-offs in the rows left empty.
func variations(src Source, p *psymachine.Params, track psymachine.Track) {
	for a := p.ArpeggioLength; a < len(track); a += p.Step() {
		if !track[a].IsEmpty() {
			if Chance(src, p.ChangeWeight) {
				ForceRandomNote(src, p, track, a)
			}
			if Chance(src, p.RemoveWeight) {
				track[a] = psymachine.Empty
			}
		} else if Chance(src, p.AddWeight) {
			ForceRandomNote(src, p, track, a)
		}
	}
	for a := p.ArpeggioLength; a < len(track); a++ {
		if track[a].IsEmpty() && Chance(src, p.NoteOffVariationWeight) {
			track[a] = psymachine.Off
		}
	}
}

func noteOffsOnBeat(_ Source, p *psymachine.Params, track psymachine.Track) {
	if !p.NoteOffOnBeat {
		return
	}
	for a := 0; a < len(track); a += p.TicksPerBeat {
		track[a] = psymachine.Off
	}
}

// CleanNoteOffs keeps only the first note-off of every run of note-off and
// empty rows; the rest of the run is cleared. Cleaning a cleaned track does
// nothing.
func CleanNoteOffs(track psymachine.Track) {
	for a := 0; a < len(track); a++ {
		if !track[a].IsOff() {
			continue
		}
		for a+1 < len(track) && !track[a+1].IsNote() {
			a++
			track[a] = psymachine.Empty
		}
	}
}
