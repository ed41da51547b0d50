package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func styleOf(t *testing.T, f fields) string {
	t.Helper()
	n := El("section")
	applyBackground(n, f, "#default")
	got, _ := n.Attr("style")
	return got
}

func TestBackgroundImageWins(t *testing.T) {
	style := styleOf(t, fields{
		"backgroundImage":   "/bg.jpg",
		"backgroundType":    "gradient",
		"gradientStops":     []any{"#000", "#fff"},
		"backgroundColor":   "#123456",
	})
	assert.Contains(t, style, "background-image:url('/bg.jpg')")
	assert.NotContains(t, style, "linear-gradient")
	assert.NotContains(t, style, "background-color")
}

func TestGradientWhenStopsPresent(t *testing.T) {
	style := styleOf(t, fields{
		"backgroundType":    "gradient",
		"gradientDirection": "to bottom",
		"gradientStops":     []any{"#0f2027", "#2c5364"},
	})
	assert.Equal(t, "background-image:linear-gradient(to bottom, #0f2027, #2c5364)", style)
}

func TestGradientDirectionDefaultsToRight(t *testing.T) {
	style := styleOf(t, fields{
		"backgroundType": "gradient",
		"gradientStops":  []any{"#111", "#222"},
	})
	assert.Contains(t, style, "linear-gradient(to right, #111, #222)")
}

func TestGradientWithoutStopsFallsBackToColor(t *testing.T) {
	style := styleOf(t, fields{
		"backgroundType":  "gradient",
		"backgroundColor": "#abc",
	})
	assert.Equal(t, "background-color:#abc", style)
}

func TestFlatColorFallback(t *testing.T) {
	assert.Equal(t, "background-color:#default", styleOf(t, fields{}))
	assert.Equal(t, "background-color:#333", styleOf(t, fields{"backgroundColor": "#333"}))
}
