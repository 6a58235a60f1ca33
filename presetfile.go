package psymachine

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadPreset decodes a preset file. Files with the .pmp extension are read
// in the legacy flat layout; anything else is tried as .json and then as
// .yml. Fields missing from a .json or .yml file keep their default values.
func ReadPreset(filename string, b []byte) (Preset, error) {
	if strings.EqualFold(filepath.Ext(filename), ".pmp") {
		return ReadLegacyPreset(b)
	}
	preset := DefaultPreset()
	if errJSON := json.Unmarshal(b, &preset); errJSON != nil {
		preset = DefaultPreset()
		if errYaml := yaml.Unmarshal(b, &preset); errYaml != nil {
			return Preset{}, fmt.Errorf("preset could not be unmarshaled as a .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return preset, nil
}

// WritePreset encodes a preset in the format given by the extension of the
// filename: .json, .pmp or, for anything else, .yml.
func WritePreset(filename string, p Preset) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return json.MarshalIndent(p, "", "  ")
	case ".pmp":
		return WriteLegacyPreset(p), nil
	}
	return yaml.Marshal(p)
}

// ReadLegacyPreset decodes the legacy flat layout: one field per line, in
// the order of the parameter fields, with the flags written as "1" for true.
// Empty lines fall back to the default of the field; lines missing from the
// end of the file are treated as empty. Blank lines keep their position, so a
// blank line never shifts the fields after it; files written by tools that
// dropped blank lines instead must have them restored first.
func ReadLegacyPreset(b []byte) (Preset, error) {
	lines := strings.Split(string(b), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return Preset{}, errors.New("invalid .pmp file: expected at least the note lines")
	}
	var p Preset
	for i, f := range p.fields() {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if f.flag != nil {
			*f.flag = line == "1"
			continue
		}
		if line == "" {
			line = f.def
		}
		*f.text = line
	}
	return p, nil
}

// WriteLegacyPreset encodes a preset in the legacy flat layout. Numeric
// fields left empty are written as "0", which reads back to the same
// parameters.
func WriteLegacyPreset(p Preset) []byte {
	var sb strings.Builder
	for _, f := range p.fields() {
		switch {
		case f.flag != nil:
			if *f.flag {
				sb.WriteString("1")
			} else {
				sb.WriteString("0")
			}
		case f.def == "":
			sb.WriteString(strings.Join(strings.Fields(*f.text), " "))
		case strings.TrimSpace(*f.text) == "":
			sb.WriteString("0")
		default:
			sb.WriteString(strings.TrimSpace(*f.text))
		}
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}
