package sales

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderPage(t *testing.T) {
	grid := newTestGrid(t, &stubBackend{rows: makeSales(12)})
	_, err := grid.ToggleRow(context.Background(), 2)
	require.NoError(t, err)

	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{Grid: grid, Renderer: renderer})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderPage(context.Background(), &buf))
	assert.Equal(t, DefaultPageTemplate, renderer.lastTemplate)
	assert.NotZero(t, buf.Len())

	payload := renderer.lastPayload
	assert.Equal(t, "Ventas", payload["title"])
	assert.Equal(t, "1", payload["page_number"])
	assert.Equal(t, "2", payload["page_count"])
	assert.Equal(t, "1", payload["selected_count"])
	assert.Equal(t, true, payload["has_selection"])
	assert.Equal(t, string(HeaderIndeterminate), payload["header_state"])
	assert.Equal(t, "2024-05-05", payload["start_date"])

	rows := payload["rows"].([]map[string]any)
	require.Len(t, rows, 10)
	assert.Equal(t, "2", rows[1]["id"])
	assert.Equal(t, true, rows[1]["selected"])
	cells := rows[1]["cells"].([]string)
	assert.Equal(t, "2", cells[0])
	assert.Equal(t, "Passenger 02", cells[1])

	headers := payload["headers"].([]map[string]any)
	assert.Len(t, headers, len(DefaultColumns()))
	assert.Equal(t, true, headers[0]["select"])
}

func TestControllerRendersEmbeddedTemplate(t *testing.T) {
	grid := newTestGrid(t, &stubBackend{rows: makeSales(12)})
	grid.ToggleAllOnPage(context.Background())

	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller := NewController(ControllerOptions{Grid: grid, Renderer: renderer})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderPage(context.Background(), &buf))
	html := buf.String()
	assert.Contains(t, html, `<tr data-id="1">`)
	assert.Contains(t, html, `value="10"`)
	assert.Contains(t, html, `href="#edit-10"`)
	assert.Contains(t, html, "Eliminar (10)")
	assert.Contains(t, html, "Página 1 de 2")
	assert.NotContains(t, html, ".000000")
}

func TestControllerRendersEmptyGrid(t *testing.T) {
	grid := newTestGrid(t, &stubBackend{})
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewController(ControllerOptions{Grid: grid, Renderer: renderer}).RenderPage(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Sin resultados.")
	assert.Contains(t, buf.String(), "Página 1 de 1")
	assert.NotContains(t, buf.String(), "Eliminar")
}

func TestControllerRenderError(t *testing.T) {
	grid := newTestGrid(t, &stubBackend{rows: makeSales(1)})
	controller := NewController(ControllerOptions{Grid: grid, Renderer: &stubRenderer{err: errors.New("boom")}, Template: "custom"})
	err := controller.RenderPage(context.Background(), io.Discard)
	assert.ErrorContains(t, err, "custom")
}

func TestControllerRequiresDependencies(t *testing.T) {
	_, err := NewController(ControllerOptions{}).ViewPayload(context.Background())
	assert.Error(t, err)
	assert.Error(t, NewController(ControllerOptions{}).RenderPage(context.Background(), io.Discard))
}
