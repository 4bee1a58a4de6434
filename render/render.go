package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrUnknownFormat = errors.New("unknown document format")
	ErrRender        = errors.New("document rendering failed")
)

// Renderer draws a View in one output format. Implementations must not keep
// state between calls.
type Renderer interface {
	Extension() string
	ContentType() string
	Render(w io.Writer, v View) error
}

var renderers = map[string]Renderer{}

// Register makes a renderer available under format. Backends call it from
// their init function.
func Register(format string, r Renderer) {
	renderers[strings.ToLower(format)] = r
}

func Get(format string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return r, nil
}

func Formats() []string {
	out := make([]string, 0, len(renderers))
	for name := range renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Document is a rendered invoice ready to be handed to a Sink.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Produce renders v with the renderer registered for format.
func Produce(format string, v View) (*Document, error) {
	r, err := Get(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, format, err)
	}

	return &Document{
		Name:        v.InvoiceNumber + "." + r.Extension(),
		ContentType: r.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// Sink receives finished documents.
type Sink interface {
	Save(doc *Document) error
}

// DirSink writes documents into a directory.
type DirSink string

func (d DirSink) Save(doc *Document) error {
	if err := os.MkdirAll(string(d), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(string(d), filepath.Base(doc.Name)), doc.Data, 0o644)
}
