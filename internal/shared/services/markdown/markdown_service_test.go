package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("**Replaced** fuser\n\n- [x] tested\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Replaced</strong>")
	assert.Contains(t, out, "tested")
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeHTML(t *testing.T) {
	r := NewRenderer()

	out := r.SanitizeHTML(`<div onclick="steal()">Printer <b>offline</b><img src=x onerror=alert(1)></div>`)
	assert.Contains(t, out, "<b>offline</b>")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "onerror")
}
