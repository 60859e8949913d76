// Package guideline loads the brand guideline document that is injected into
// every prompt. The document is read once at startup and never reloaded.
package guideline

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"hsl-agent/internal/domain"
)

type Document struct {
	text string
}

func NewDocument(text string) Document {
	return Document{text: text}
}

func (d Document) Text() string { return d.text }

func (d Document) Len() int { return len(d.text) }

// Load reads the guideline file at path. Any failure is a *domain.ConfigError.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &domain.ConfigError{Op: "read guidelines", Err: err}
	}
	if !utf8.Valid(data) {
		return Document{}, &domain.ConfigError{
			Op:  "read guidelines",
			Err: fmt.Errorf("%s: %w", path, errNotUTF8),
		}
	}
	return Document{text: string(data)}, nil
}

var errNotUTF8 = errors.New("not valid UTF-8 text")
