package render_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payoutdesk/render"
	"payoutdesk/render/rendertest"
)

type textRenderer struct{}

func (textRenderer) Extension() string   { return "txt" }
func (textRenderer) ContentType() string { return "text/plain" }
func (textRenderer) Render(w io.Writer, v render.View) error {
	for _, line := range v.Lines() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

type brokenRenderer struct{ textRenderer }

func (brokenRenderer) Render(io.Writer, render.View) error { return errors.New("out of ink") }

func TestRegistry(t *testing.T) {
	render.Register("TXT", textRenderer{})

	r, err := render.Get("txt")
	require.NoError(t, err)
	assert.Equal(t, "txt", r.Extension())
	assert.Contains(t, render.Formats(), "txt")

	_, err = render.Get("docx")
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestProduce(t *testing.T) {
	render.Register("txt", textRenderer{})
	render.Register("broken", brokenRenderer{})
	view := render.BuildView(rendertest.MMKSnapshot(), rendertest.Brand)

	doc, err := render.Produce("txt", view)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001.txt", doc.Name)
	assert.Equal(t, "text/plain", doc.ContentType)
	assert.Contains(t, string(doc.Data), "Invoice No: INV-000001")

	_, err = render.Produce("broken", view)
	assert.ErrorIs(t, err, render.ErrRender)
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	doc := &render.Document{Name: "INV-000007.pdf", Data: []byte("%PDF-1.3")}

	require.NoError(t, render.DirSink(dir).Save(doc))

	data, err := os.ReadFile(filepath.Join(dir, "INV-000007.pdf"))
	require.NoError(t, err)
	assert.Equal(t, doc.Data, data)
}
