package psymachine

var noteNames = []string{
	"C-",
	"C#",
	"D-",
	"D#",
	"E-",
	"F-",
	"F#",
	"G-",
	"G#",
	"A-",
	"A#",
	"B-",
}

// NoteValue returns the key number of a Renoise note name such as "C-4" or
// "F#5", where C-0 is key 0 and C-4 is key 48. ok is false if the token is
// not a note name.
func NoteValue(token string) (key int, ok bool) {
	if len(token) != 3 {
		return 0, false
	}
	octave := token[2]
	if octave < '0' || octave > '9' {
		return 0, false
	}
	for i, n := range noteNames {
		if token[:2] == n {
			return int(octave-'0')*12 + i, true
		}
	}
	return 0, false
}
