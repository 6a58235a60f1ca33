package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsariola/psymachine"
	"github.com/vsariola/psymachine/generator"
	"github.com/vsariola/psymachine/gomidi"
	"github.com/vsariola/psymachine/renoise"
	"github.com/vsariola/psymachine/version"
	"github.com/vsariola/psymachine/view"
)

type textFlag struct {
	name  string
	usage string
	field func(*psymachine.Preset) *string
}

var textFlags = []textFlag{
	{"base", "Base note.", func(p *psymachine.Preset) *string { return &p.BaseNote }},
	{"other", "Other notes, separated by spaces.", func(p *psymachine.Preset) *string { return &p.OtherNotes }},
	{"base-p", "Chance of the base note, in percent.", func(p *psymachine.Preset) *string { return &p.BaseNoteP }},
	{"other-p", "Chance of the other notes, in percent.", func(p *psymachine.Preset) *string { return &p.OtherNotesP }},
	{"remove-p", "Chance of removing a note after the arpeggio, in percent.", func(p *psymachine.Preset) *string { return &p.RemoveNoteP }},
	{"add-p", "Chance of adding a note after the arpeggio, in percent.", func(p *psymachine.Preset) *string { return &p.AddNoteP }},
	{"change-p", "Chance of changing a note after the arpeggio, in percent.", func(p *psymachine.Preset) *string { return &p.ChangeNoteP }},
	{"off-p", "Chance of a note-off in the arpeggio, in percent.", func(p *psymachine.Preset) *string { return &p.NoteOffP }},
	{"off-variation-p", "Chance of a note-off after the arpeggio, in percent.", func(p *psymachine.Preset) *string { return &p.NoteOffVariationP }},
	{"flutter-p", "Chance of note flutter, in percent.", func(p *psymachine.Preset) *string { return &p.NoteFlutterP }},
	{"length", "Length of the pattern, in rows.", func(p *psymachine.Preset) *string { return &p.TrackLen }},
	{"arpeggio", "Length of the arpeggio, in rows.", func(p *psymachine.Preset) *string { return &p.ArpeggioLen }},
	{"instrument", "Instrument written on the note rows.", func(p *psymachine.Preset) *string { return &p.InstrumentNumber }},
	{"ticks", "Rows per beat.", func(p *psymachine.Preset) *string { return &p.TicksPerBeat }},
	{"seed", "Random seed; 0 or less picks one from the clock.", func(p *psymachine.Preset) *string { return &p.Seed }},
}

func main() {
	presetIn := flag.String("i", "", "Read the preset from this .json, .yml or .pmp file. Flags given on the command line override its fields.")
	outPath := flag.String("o", "", "Write the pattern document to this file instead of standard output.")
	midiPath := flag.String("m", "", "Also write the pattern as a Standard MIDI File to this path.")
	bpm := flag.Float64("bpm", 120, "Tempo of the MIDI file.")
	presetOut := flag.String("save", "", "Save the preset to this file; the extension (.json, .yml or .pmp) sets the format.")
	tmplDir := flag.String("t", "", "Render the document with the templates in this directory instead of the standard template.")
	tmplName := flag.String("template", renoise.DefaultTemplate, "Name of the template to execute.")
	preview := flag.Bool("p", false, "Print a tracker view of the pattern instead of the document.")
	safe := flag.Bool("n", false, "Never overwrite files; if a file already exists and would be overwritten, give an error.")
	versionFlag := flag.Bool("v", false, "Print version.")
	help := flag.Bool("h", false, "Show help.")

	defaults := psymachine.DefaultPreset()
	values := make([]*string, len(textFlags))
	for i, f := range textFlags {
		values[i] = flag.String(f.name, *f.field(&defaults), f.usage)
	}
	offOnBeat := flag.Bool("off-on-beat", false, "Put a note-off on the first row of every beat.")
	onFirstTick := flag.Bool("note-on-first-tick", false, "Always start the pattern with a note.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	preset := defaults
	if *presetIn != "" {
		b, err := os.ReadFile(*presetIn)
		if err != nil {
			fail("could not read file %v: %v", *presetIn, err)
		}
		if preset, err = psymachine.ReadPreset(*presetIn, b); err != nil {
			fail("could not read preset %v: %v", *presetIn, err)
		}
	}
	// only flags given on the command line override the preset
	flag.Visit(func(f *flag.Flag) {
		for i, t := range textFlags {
			if t.name == f.Name {
				*t.field(&preset) = *values[i]
			}
		}
		switch f.Name {
		case "off-on-beat":
			preset.NoteOffOnBeat = *offOnBeat
		case "note-on-first-tick":
			preset.NoteOnFirstTick = *onFirstTick
		}
	})
	if *presetOut != "" {
		contents, err := psymachine.WritePreset(*presetOut, preset)
		if err != nil {
			fail("could not marshal the preset: %v", err)
		}
		if err := output(*presetOut, contents, *safe); err != nil {
			fail("error outputting preset: %v", err)
		}
	}
	params, err := preset.Params()
	if err != nil {
		var verr *psymachine.ValidationError
		if errors.As(err, &verr) {
			fail("%v", verr.Msg)
		}
		fail("invalid preset: %v", err)
	}
	var formatter *renoise.Formatter
	if *tmplDir != "" {
		formatter, err = renoise.NewFromTemplates(*tmplDir, *tmplName)
	} else {
		formatter, err = renoise.New()
	}
	if err != nil {
		fail("error creating formatter: %v", err)
	}
	track := generator.Generate(params)
	doc, err := formatter.Document(track, params.Instrument)
	if err != nil {
		fail("rendering the pattern failed: %v", err)
	}
	if *preview {
		fmt.Println(view.Render(track, params.Instrument, params.TicksPerBeat, view.DefaultStyles()))
	}
	if *outPath != "" {
		if err := output(*outPath, []byte(doc), *safe); err != nil {
			fail("error outputting pattern: %v", err)
		}
	} else if !*preview {
		fmt.Print(doc)
	}
	if *midiPath != "" {
		var buf bytes.Buffer
		opts := gomidi.Options{BPM: *bpm, TicksPerBeat: params.TicksPerBeat}
		if err := gomidi.WriteTrack(&buf, track, opts); err != nil {
			fail("exporting MIDI failed: %v", err)
		}
		if err := output(*midiPath, buf.Bytes(), *safe); err != nil {
			fail("error outputting MIDI file: %v", err)
		}
	}
}

// output writes contents to a file, creating the parent directories. Files
// that already have the same contents are left untouched.
func output(filename string, contents []byte, safe bool) error {
	original, err := os.ReadFile(filename)
	if err == nil {
		if bytes.Equal(original, contents) {
			return nil
		}
		if safe {
			return fmt.Errorf("file %v would be overwritten", filename)
		}
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %v", dir, err)
		}
	}
	if err := os.WriteFile(filename, contents, 0644); err != nil {
		return fmt.Errorf("could not write file %v: %v", filename, err)
	}
	return nil
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Psymachine. Generates a random arpeggio pattern and prints it as a Renoise pattern clipboard document.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
