package psymachine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Preset is the generator input as the user types it: every numeric field is
// kept as text, so that a preset can be saved and loaded without losing what
// the user wrote, and is only interpreted when converted to Params. The key
// names are the ones used by the web form and the preset files.
type Preset struct {
	BaseNote          string `json:"baseNote" yaml:"baseNote"`
	OtherNotes        string `json:"otherNotes" yaml:"otherNotes"`
	BaseNoteP         string `json:"baseNoteP" yaml:"baseNoteP"`
	OtherNotesP       string `json:"otherNotesP" yaml:"otherNotesP"`
	RemoveNoteP       string `json:"removeNoteP" yaml:"removeNoteP"`
	AddNoteP          string `json:"addNoteP" yaml:"addNoteP"`
	ChangeNoteP       string `json:"changeNoteP" yaml:"changeNoteP"`
	NoteOffP          string `json:"noteOffP" yaml:"noteOffP"`
	NoteOffVariationP string `json:"noteOffVariationP" yaml:"noteOffVariationP"`
	NoteFlutterP      string `json:"noteFlutterP" yaml:"noteFlutterP"`
	TrackLen          string `json:"trackLen" yaml:"trackLen"`
	ArpeggioLen       string `json:"arpeggioLen" yaml:"arpeggioLen"`
	InstrumentNumber  string `json:"instrumentNumber" yaml:"instrumentNumber"`
	TicksPerBeat      string `json:"ticksPerBeat" yaml:"ticksPerBeat"`
	Seed              string `json:"seed" yaml:"seed"`
	NoteOffOnBeat     bool   `json:"noteOffOnBeat" yaml:"noteOffOnBeat"`
	NoteOnFirstTick   bool   `json:"noteOnFirstTick" yaml:"noteOnFirstTick"`
}

// presetField binds a key name to one field of a Preset. Exactly one of text
// and flag is non-nil.
type presetField struct {
	key  string
	text *string
	flag *bool
	def  string
}

// DefaultPreset returns the preset new sessions start from.
func DefaultPreset() Preset {
	return Preset{
		BaseNote:          "E-4",
		OtherNotes:        "F-4 A-4 B-4 E-5 F-5 A-5 B-5 E-6",
		BaseNoteP:         "40",
		OtherNotesP:       "50",
		RemoveNoteP:       "5",
		AddNoteP:          "20",
		ChangeNoteP:       "20",
		NoteOffP:          "40",
		NoteOffVariationP: "20",
		NoteFlutterP:      "20",
		TrackLen:          "256",
		ArpeggioLen:       "64",
		InstrumentNumber:  "0",
		TicksPerBeat:      "8",
		Seed:              "0",
	}
}

// fields returns the fields of the preset in the order of the legacy .pmp
// layout, together with the value an empty line falls back to.
func (p *Preset) fields() []presetField {
	return []presetField{
		{key: "baseNote", text: &p.BaseNote},
		{key: "otherNotes", text: &p.OtherNotes},
		{key: "baseNoteP", text: &p.BaseNoteP, def: "40"},
		{key: "otherNotesP", text: &p.OtherNotesP, def: "50"},
		{key: "removeNoteP", text: &p.RemoveNoteP, def: "5"},
		{key: "addNoteP", text: &p.AddNoteP, def: "20"},
		{key: "changeNoteP", text: &p.ChangeNoteP, def: "20"},
		{key: "noteOffP", text: &p.NoteOffP, def: "40"},
		{key: "noteOffVariationP", text: &p.NoteOffVariationP, def: "20"},
		{key: "noteFlutterP", text: &p.NoteFlutterP, def: "20"},
		{key: "trackLen", text: &p.TrackLen, def: "256"},
		{key: "arpeggioLen", text: &p.ArpeggioLen, def: "64"},
		{key: "instrumentNumber", text: &p.InstrumentNumber, def: "0"},
		{key: "ticksPerBeat", text: &p.TicksPerBeat, def: "8"},
		{key: "seed", text: &p.Seed, def: "0"},
		{key: "noteOffOnBeat", flag: &p.NoteOffOnBeat},
		{key: "noteOnFirstTick", flag: &p.NoteOnFirstTick},
	}
}

// UnmarshalJSON only overwrites the fields present in the input, so decoding
// into a copy of a default preset fills the missing fields from the defaults.
// Text fields accept JSON strings as well as numbers; flags follow the usual
// truthiness rules of the web form (non-empty strings and non-zero numbers
// are true).
func (p *Preset) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, f := range p.fields() {
		val, ok := raw[f.key]
		if !ok {
			continue
		}
		var v interface{}
		d := json.NewDecoder(bytes.NewReader(val))
		d.UseNumber()
		if err := d.Decode(&v); err != nil {
			return fmt.Errorf("invalid value for %v: %v", f.key, err)
		}
		if f.flag != nil {
			*f.flag = truthy(v)
			continue
		}
		switch t := v.(type) {
		case nil:
		case string:
			*f.text = t
		case json.Number:
			*f.text = formatNumber(t)
		case bool:
			*f.text = strconv.FormatBool(t)
		default:
			return fmt.Errorf("invalid value for %v: expected a string or a number", f.key)
		}
	}
	return nil
}

// formatNumber writes a JSON number the shortest way, so that 3.0 and 1e1
// become "3" and "10".
func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	}
	return true
}
