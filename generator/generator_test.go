package generator_test

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/vsariola/psymachine"
	"github.com/vsariola/psymachine/generator"
)

func allWeights(w int) psymachine.Params {
	return psymachine.Params{
		Notes:                  []string{"C-4", "E-4", "G-4"},
		BaseNoteWeight:         w,
		OtherNoteWeight:        w,
		RemoveWeight:           w,
		AddWeight:              w,
		ChangeWeight:           w,
		NoteOffWeight:          w,
		NoteOffVariationWeight: w,
		FlutterWeight:          w,
		TrackLength:            8,
		ArpeggioLength:         4,
		TicksPerBeat:           4,
		Seed:                   1,
		NoteOnFirstTick:        true,
	}
}

func kinds(track psymachine.Track) []psymachine.CellKind {
	ret := make([]psymachine.CellKind, len(track))
	for i, c := range track {
		ret[i] = c.Kind
	}
	return ret
}

func TestDeterminism(t *testing.T) {
	preset := psymachine.DefaultPreset()
	preset.Seed = "12345"
	params, err := preset.Params()
	if err != nil {
		t.Fatalf("could not validate preset: %v", err)
	}
	a := generator.Generate(params)
	b := generator.Generate(params)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed gave different tracks:\n%v\n%v", a, b)
	}
	preset.Seed = "12346"
	params, _ = preset.Params()
	if c := generator.Generate(params); reflect.DeepEqual(a, c) {
		t.Fatalf("different seeds gave identical tracks")
	}
}

// rows renders a track sixteen rows per line, with "---" for empty rows.
func rows(track psymachine.Track) string {
	var sb strings.Builder
	for i, c := range track {
		switch {
		case i == 0:
		case i%16 == 0:
			sb.WriteString("\n")
		default:
			sb.WriteString(" ")
		}
		if c.IsEmpty() {
			sb.WriteString("---")
		} else {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}

const defaultPresetSeed4242 = `E-4 --- --- --- E-4 --- --- OFF A-4 --- F-5 --- A-5 --- B-5 OFF
A-5 --- B-5 OFF --- --- B-4 OFF E-5 --- F-5 OFF E-5 OFF F-5 OFF
E-4 OFF B-4 OFF A-4 --- B-4 OFF E-5 OFF B-4 --- E-5 --- F-5 ---
E-5 OFF F-5 OFF E-5 OFF F-5 --- OFF --- --- --- A-4 --- A-5 ---
B-5 --- A-5 --- B-5 --- F-4 OFF A-4 --- B-4 --- E-5 --- OFF ---
--- --- E-4 OFF E-5 OFF B-5 OFF A-5 --- B-5 OFF A-5 OFF F-5 OFF
A-5 OFF B-5 OFF F-5 --- A-5 OFF F-5 OFF A-5 --- B-5 OFF A-5 ---
B-5 OFF E-4 OFF A-4 OFF B-4 OFF E-5 OFF B-4 OFF E-4 OFF E-4 ---
E-4 OFF --- --- E-4 OFF --- --- A-4 --- B-5 --- A-5 OFF A-4 OFF
--- --- E-4 OFF A-5 OFF F-5 OFF A-5 --- B-5 OFF A-4 OFF B-4 OFF
E-5 OFF F-5 OFF A-5 --- E-4 OFF B-5 OFF F-4 --- A-5 --- E-4 OFF
E-5 OFF F-4 OFF A-4 OFF F-4 --- OFF --- --- --- E-4 --- F-5 ---
E-4 --- B-5 --- B-5 --- A-5 OFF B-5 --- E-6 --- F-5 --- A-5 OFF
F-5 --- E-5 OFF A-4 OFF B-4 OFF --- --- E-4 OFF --- --- F-5 OFF
B-4 OFF E-5 OFF F-5 --- E-5 OFF F-5 OFF E-5 --- F-5 OFF B-4 ---
E-5 OFF F-5 OFF A-5 OFF F-5 --- E-5 OFF F-5 OFF A-4 --- B-4 ---`

func TestDefaultPresetTrack(t *testing.T) {
	preset := psymachine.DefaultPreset()
	preset.Seed = "4242"
	params, err := preset.Params()
	if err != nil {
		t.Fatalf("could not validate preset: %v", err)
	}
	if got := rows(generator.Generate(params)); got != defaultPresetSeed4242 {
		t.Fatalf("got\n%v\nexpected\n%v", got, defaultPresetSeed4242)
	}
}

func TestInvariants(t *testing.T) {
	for seed := 1; seed <= 200; seed++ {
		preset := psymachine.DefaultPreset()
		preset.Seed = strconv.Itoa(seed)
		preset.TrackLen = strconv.Itoa(16 + seed%50)
		preset.ArpeggioLen = strconv.Itoa(1 + seed%20)
		preset.TicksPerBeat = strconv.Itoa(1 + seed%9)
		preset.NoteOffOnBeat = seed%3 == 0
		preset.NoteOnFirstTick = seed%2 == 0
		params, err := preset.Params()
		if err != nil {
			t.Fatalf("could not validate preset: %v", err)
		}
		track := generator.Generate(params)
		if len(track) != params.TrackLength {
			t.Fatalf("seed %v: track length %v, expected %v", seed, len(track), params.TrackLength)
		}
		for i, c := range track {
			if c.IsNote() && !slices.Contains(params.Notes, c.Note) {
				t.Fatalf("seed %v: row %v has note %q outside the vocabulary", seed, i, c.Note)
			}
		}
		cleaned := track.Copy()
		generator.CleanNoteOffs(cleaned)
		if !reflect.DeepEqual(cleaned, track) {
			t.Fatalf("seed %v: cleaning a generated track changed it", seed)
		}
	}
}

func TestAllWeightsCertain(t *testing.T) {
	track := generator.Generate(allWeights(100))
	for i, c := range track {
		if !c.IsNote() {
			t.Fatalf("row %v: expected a note, got %v", i, c)
		}
	}
}

func TestAllWeightsCertainWithoutFlutter(t *testing.T) {
	params := allWeights(100)
	params.FlutterWeight = 0
	got := kinds(generator.Generate(params))
	n, o, e := psymachine.KindNote, psymachine.KindOff, psymachine.KindEmpty
	expected := []psymachine.CellKind{n, n, n, n, o, e, e, e}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("got %v, expected %v", got, expected)
	}
	params.NoteOffOnBeat = true
	got = kinds(generator.Generate(params))
	expected = []psymachine.CellKind{o, n, n, n, o, e, e, e}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("with note-offs on beat: got %v, expected %v", got, expected)
	}
}

func TestAllWeightsZero(t *testing.T) {
	params := allWeights(0)
	params.NoteOnFirstTick = false
	track := generator.Generate(params)
	if !reflect.DeepEqual(track, psymachine.NewTrack(8)) {
		t.Fatalf("expected an empty track, got %v", track)
	}
}

func TestArpeggioRepeats(t *testing.T) {
	params := allWeights(0)
	params.BaseNoteWeight = 60
	params.OtherNoteWeight = 60
	params.NoteOffWeight = 30
	params.TrackLength = 48
	params.ArpeggioLength = 16
	params.TicksPerBeat = 1
	params.Seed = 77
	track := generator.Generate(params)
	// without variations, the cleaned loop is the cleaned arpeggio repeated,
	// except where a note-off run crosses the loop boundary
	for i := 16; i < len(track); i++ {
		if track[i].IsNote() && track[i] != track[i%16] {
			t.Fatalf("row %v: got %v, expected %v", i, track[i], track[i%16])
		}
	}
}

func TestArpeggioLongerThanTrack(t *testing.T) {
	preset := psymachine.DefaultPreset()
	preset.TrackLen = "12"
	preset.ArpeggioLen = "100"
	preset.Seed = "3"
	params, err := preset.Params()
	if err != nil {
		t.Fatalf("could not validate preset: %v", err)
	}
	if params.ArpeggioLength != 12 {
		t.Fatalf("arpeggio length %v, expected 12", params.ArpeggioLength)
	}
	if track := generator.Generate(params); len(track) != 12 {
		t.Fatalf("track length %v, expected 12", len(track))
	}
}

func TestHandBuiltParams(t *testing.T) {
	params := allWeights(50)
	params.ArpeggioLength = 100
	params.TicksPerBeat = 0
	if track := generator.Generate(params); len(track) != 8 {
		t.Fatalf("track length %v, expected 8", len(track))
	}
	params.Notes = nil
	if track := generator.Generate(params); track.Notes() != 0 {
		t.Fatalf("expected no notes without a vocabulary, got %v", track)
	}
}

func TestCleanNoteOffs(t *testing.T) {
	c, o, e := psymachine.Note("C-4"), psymachine.Off, psymachine.Empty
	tests := []struct {
		input, expected psymachine.Track
	}{
		{psymachine.Track{o, o, e, c, o, e, o}, psymachine.Track{o, e, e, c, o, e, e}},
		{psymachine.Track{e, o, c, c, e, o}, psymachine.Track{e, o, c, c, e, o}},
		{psymachine.Track{e, e, o, o, o}, psymachine.Track{e, e, o, e, e}},
		{psymachine.Track{}, psymachine.Track{}},
	}
	for _, test := range tests {
		got := test.input.Copy()
		generator.CleanNoteOffs(got)
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("CleanNoteOffs(%v): got %v, expected %v", test.input, got, test.expected)
		}
		again := got.Copy()
		generator.CleanNoteOffs(again)
		if !reflect.DeepEqual(again, got) {
			t.Errorf("CleanNoteOffs is not idempotent on %v", test.input)
		}
	}
}
