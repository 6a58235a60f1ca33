package generator

import "github.com/vsariola/psymachine"

// flutterState is the random walk over the vocabulary carried through the
// flutter pass: cursor is the index of the next note to place and weight the
// chance of placing it on the next pulse row.
type flutterState struct {
	weight int
	cursor int
}

// flutter lays short runs of neighbouring notes over the whole track. After
// every placed note the walk becomes certain to continue, until a random check
// resets it to a random note at half the chance.
func flutter(src Source, p *psymachine.Params, track psymachine.Track) {
	if p.FlutterWeight == 0 {
		return
	}
	n := len(p.Notes)
	s := flutterState{weight: p.FlutterWeight, cursor: Intn(src, n)}
	for a := 0; a < len(track); a += p.Step() {
		if !Chance(src, s.weight) {
			continue
		}
		track[a] = psymachine.Note(p.Notes[s.cursor])
		s.weight = 100
		if Intn(src, 2) == 0 {
			s.up(src, n)
		} else {
			s.down(src, n)
		}
	}
}

func (s *flutterState) up(src Source, n int) {
	if s.cursor >= Intn(src, n)+2 {
		s.reset(src, n)
	}
	s.cursor = min(s.cursor+1, n-1)
}

func (s *flutterState) down(src Source, n int) {
	if s.cursor <= Intn(src, n)-2 {
		s.reset(src, n)
	}
	s.cursor = max(s.cursor-1, 0)
}

func (s *flutterState) reset(src Source, n int) {
	s.weight = 50
	s.cursor = Intn(src, n)
}
