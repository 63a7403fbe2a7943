package rpath

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding for a [Result].
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an unsupported [Format] was requested.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a [Format] by name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Entry is a single dependency of a [Result].
type Entry struct {
	// Path is the dependency directory as given.
	Path string `json:"path" yaml:"path"`
	// Relative is the path from the origin to the dependency.
	Relative string `json:"relative" yaml:"relative"`
	// Value is Relative prefixed with the token.
	Value string `json:"value" yaml:"value"`
}

// Result is a computed RPATH.
type Result struct {
	// Origin is the absolute origin directory.
	Origin  string
	Token   string
	Entries []Entry
}

// String returns the entry values joined by [ListSeparator]. It is empty when
// there are no entries.
func (r Result) String() string {
	values := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		values = append(values, e.Value)
	}

	return strings.Join(values, ListSeparator)
}

type document struct {
	Origin  string  `json:"origin"  yaml:"origin"`
	Token   string  `json:"token"   yaml:"token"`
	RPath   string  `json:"rpath"   yaml:"rpath"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Encode writes r to w in the given [Format]. [FormatText] writes
// [Result.String] followed by a newline.
func (r Result) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		if _, err := io.WriteString(w, r.String()+"\n"); err != nil {
			return fmt.Errorf("write text: %w", err)
		}

		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")

		if err := enc.Encode(r.document()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(r.document()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func (r Result) document() document {
	entries := r.Entries
	if entries == nil {
		entries = []Entry{}
	}

	return document{
		Origin:  r.Origin,
		Token:   r.Token,
		RPath:   r.String(),
		Entries: entries,
	}
}
