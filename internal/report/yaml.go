package report

import (
	"io"

	"github.com/Iron-Ham/tmux-layout/internal/topology"
	"gopkg.in/yaml.v3"
)

// Document is the machine-readable form of a saved layout.
type Document struct {
	File     string    `yaml:"file"`
	Sessions []Session `yaml:"sessions"`
}

// Session is one session of a Document with its windows in saved order.
type Session struct {
	Name    string   `yaml:"name"`
	Windows []Window `yaml:"windows"`
}

// Window is one window of a Session.
type Window struct {
	Name      string `yaml:"name"`
	Directory string `yaml:"directory"`
}

// NewDocument groups t by session, keeping first-seen session order.
func NewDocument(path string, t topology.Topology) Document {
	doc := Document{File: path, Sessions: []Session{}}
	grouped := t.BySession()
	for _, name := range t.Sessions() {
		s := Session{Name: name}
		for _, rec := range grouped[name] {
			s.Windows = append(s.Windows, Window{Name: rec.Window, Directory: rec.Directory})
		}
		doc.Sessions = append(doc.Sessions, s)
	}
	return doc
}

// WriteYAML encodes the layout in t to w as YAML.
func WriteYAML(w io.Writer, path string, t topology.Topology) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(path, t)); err != nil {
		return err
	}
	return enc.Close()
}
