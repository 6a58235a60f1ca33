package generator

import "github.com/vsariola/psymachine"

// RandomNote may place a note at pos. A coin flip decides whether the base
// note or the other notes are tried first; each is placed only if its weight
// roll succeeds, so the cell can also be left as it was.
func RandomNote(src Source, p *psymachine.Params, track psymachine.Track, pos int) {
	if Intn(src, 2) == 0 {
		if Chance(src, p.BaseNoteWeight) {
			track[pos] = psymachine.Note(p.Notes[0])
		} else if Chance(src, p.OtherNoteWeight) {
			track[pos] = otherNote(src, p)
		}
	} else {
		if Chance(src, p.OtherNoteWeight) {
			track[pos] = otherNote(src, p)
		} else if Chance(src, p.BaseNoteWeight) {
			track[pos] = psymachine.Note(p.Notes[0])
		}
	}
}

// ForceRandomNote always places a note at pos: the same coin flip picks which
// weight is rolled, and when the roll fails the other kind of note is placed
// instead.
func ForceRandomNote(src Source, p *psymachine.Params, track psymachine.Track, pos int) {
	if Intn(src, 2) == 0 {
		if Chance(src, p.BaseNoteWeight) {
			track[pos] = psymachine.Note(p.Notes[0])
		} else {
			track[pos] = otherNote(src, p)
		}
	} else {
		if Chance(src, p.OtherNoteWeight) {
			track[pos] = otherNote(src, p)
		} else {
			track[pos] = psymachine.Note(p.Notes[0])
		}
	}
}

// otherNote picks one of the notes after the base note uniformly. With only
// a base note in the vocabulary the draw is still made, and the base note is
// returned.
func otherNote(src Source, p *psymachine.Params) psymachine.Cell {
	i := 1 + Intn(src, len(p.Notes)-1)
	if i >= len(p.Notes) {
		i = 0
	}
	return psymachine.Note(p.Notes[i])
}
