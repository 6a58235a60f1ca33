// Package psymachine contains the data types shared by the generator, the
// document formatters and the service: the textual Preset as the user edits
// it, the normalized Params the generator consumes and the Track it returns.
package psymachine

type (
	// CellKind tells whether a track position is silent, starts a note or
	// releases the previous note.
	CellKind byte

	// Cell is the state of one track position. Note is only meaningful when
	// Kind is KindNote, and is always one of the tokens of the vocabulary the
	// track was generated from.
	Cell struct {
		Kind CellKind
		Note string
	}

	// Track is the ordered list of cells produced by the generator, one per
	// row. Index 0 is the first row of the pattern.
	Track []Cell
)

const (
	KindEmpty CellKind = iota
	KindNote
	KindOff
)

// OffMarker is the textual representation of a note-off cell, as written to
// the documents.
const OffMarker = "OFF"

var (
	Empty = Cell{}
	Off   = Cell{Kind: KindOff}
)

// Note returns a cell starting the given note token.
func Note(token string) Cell {
	return Cell{Kind: KindNote, Note: token}
}

func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }
func (c Cell) IsNote() bool  { return c.Kind == KindNote }
func (c Cell) IsOff() bool   { return c.Kind == KindOff }

// String returns the note token for note cells, OffMarker for note-off cells
// and an empty string for empty cells.
func (c Cell) String() string {
	switch c.Kind {
	case KindNote:
		return c.Note
	case KindOff:
		return OffMarker
	}
	return ""
}

// NewTrack returns a track of the given length with all cells empty.
func NewTrack(length int) Track {
	return make(Track, max(length, 0))
}

// Copy makes a deep copy of a Track.
func (t Track) Copy() Track {
	ret := make(Track, len(t))
	copy(ret, t)
	return ret
}

// Notes returns the number of note cells in the track.
func (t Track) Notes() (ret int) {
	for _, c := range t {
		if c.IsNote() {
			ret++
		}
	}
	return
}
