// Package renoise renders tracks as Renoise pattern clipboard documents, which
// can be pasted directly into a Renoise note column.
package renoise

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/psymachine"
)

// DefaultTemplate is the name of the template a Formatter executes unless
// told otherwise.
const DefaultTemplate = "pattern.xml"

type Formatter struct {
	Template *template.Template
	Name     string
}

//go:embed templates/*
var templateFS embed.FS

// New returns a Formatter using the built-in pattern clipboard template.
func New() (*Formatter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.*")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Formatter{Template: tmpl, Name: DefaultTemplate}, nil
}

// NewFromTemplates returns a Formatter using the templates in a directory.
// The directory should contain a template called pattern.xml; name selects
// another one.
func NewFromTemplates(templateDirectory string, name string) (*Formatter, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %v`, templateDirectory, err)
	}
	if name == "" {
		name = DefaultTemplate
	}
	if tmpl.Lookup(name) == nil {
		return nil, fmt.Errorf(`template directory "%v" has no template "%v"`, templateDirectory, name)
	}
	return &Formatter{Template: tmpl, Name: name}, nil
}

// Document renders the track, one line element per row. Note rows carry the
// instrument; note-off rows carry only the OffMarker.
func (f *Formatter) Document(track psymachine.Track, instrument string) (string, error) {
	data := struct {
		Track      psymachine.Track
		Instrument string
	}{track, instrument}
	result := bytes.NewBufferString("")
	if err := f.Template.ExecuteTemplate(result, f.Name, &data); err != nil {
		return "", fmt.Errorf(`could not execute template "%v": %v`, f.Name, err)
	}
	return result.String(), nil
}
