package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/hexboard/internal/game"
	"github.com/samdwyer/hexboard/internal/scoring"
)

func testBoard(t *testing.T) *game.Board {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seed = 11
	cfg.FixedPorts = true
	g, err := game.New(cfg)
	require.NoError(t, err)
	b, err := g.NewBoard(context.Background())
	require.NoError(t, err)
	return b
}

func testRenderer(t *testing.T, buf *bytes.Buffer) *Renderer {
	t.Helper()
	geom, err := scoring.StandardGeometry()
	require.NoError(t, err)
	return NewRenderer(buf, geom)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	b := testBoard(t)

	require.NoError(t, testRenderer(t, &buf).Render(b))
	lines := strings.Split(buf.String(), "\n")

	// Title, then the five rows of the island.
	wantCells := []int{3, 4, 5, 4, 3}
	wantIndent := []int{6, 3, 0, 3, 6}
	for i, want := range wantCells {
		line := lines[1+i]
		assert.Len(t, strings.Fields(line), want, "row %d = %q", i, line)
		assert.Equal(t, wantIndent[i], len(line)-len(strings.TrimLeft(line, " ")), "row %d indent", i)
	}

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "D--"), "desert should appear exactly once, without a number")
	assert.Equal(t, 4, strings.Count(out, "*"), "two 6s and two 8s are starred")
	assert.Equal(t, 9, strings.Count(out, "  slot "), "one line per port")
	assert.Contains(t, out, "slot  0  3:1 generic")
	assert.Contains(t, out, "slot 16  2:1 ore")
	for _, section := range []string{"Ports", "Production", "Best intersections"} {
		assert.Contains(t, out, "\n"+section+"\n")
	}
	assert.NotContains(t, out, "\x1b[", "plain output contains escape codes")
}

func TestRenderTop(t *testing.T) {
	var buf bytes.Buffer
	b := testBoard(t)

	require.NoError(t, testRenderer(t, &buf).WithTop(0).Render(b))
	assert.NotContains(t, buf.String(), "Best intersections")

	buf.Reset()
	require.NoError(t, testRenderer(t, &buf).WithTop(2).Render(b))
	assert.Equal(t, 2, strings.Count(buf.String(), "cells "))
}

func TestRenderColor(t *testing.T) {
	var buf bytes.Buffer
	b := testBoard(t)

	require.NoError(t, testRenderer(t, &buf).WithColor(DefaultPalette()).Render(b))
	assert.Equal(t, 19, strings.Count(buf.String(), "\x1b[38;2;"), "every cell is colored")
	assert.Equal(t, 4, strings.Count(buf.String(), ";1m"), "two 6s and two 8s are bold")
}

func TestPaint(t *testing.T) {
	green := MustParseHexColor("#2E7D32")
	tests := []struct {
		name  string
		style tcell.Style
		want  string
	}{
		{"default", tcell.StyleDefault, "W5"},
		{"foreground", tcell.StyleDefault.Foreground(green), "\x1b[38;2;46;125;50mW5\x1b[0m"},
		{"bold", tcell.StyleDefault.Foreground(green).Bold(true), "\x1b[38;2;46;125;50;1mW5\x1b[0m"},
		{"bold only", tcell.StyleDefault.Bold(true), "\x1b[1mW5\x1b[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paint("W5", tt.style))
		})
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	b := testBoard(t)

	require.NoError(t, testRenderer(t, &buf).RenderJSON(b))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"id", "layout", "ports", "intersections", "resources"} {
		assert.Contains(t, decoded, key)
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	b := testBoard(t)

	require.NoError(t, testRenderer(t, &buf).RenderYAML(b))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "id: "), "board id should lead in block style, got %q", out[:min(len(out), 40)])
	for _, key := range []string{"layout", "ports", "intersections", "resources", "attempts"} {
		assert.NotContains(t, out, `"`+key+`"`, "key %q is quoted", key)
		assert.Contains(t, out, "\n"+key+":")
	}
	assert.NotContains(t, out, "{", "flow mapping in output")
	assert.NotContains(t, out, "[", "flow sequence in output")

	var decoded struct {
		ID     string           `yaml:"id"`
		Layout []map[string]any `yaml:"layout"`
		Ports  []map[string]any `yaml:"ports"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, b.ID.String(), decoded.ID)
	assert.Len(t, decoded.Layout, 19)
	assert.Len(t, decoded.Ports, 9)

	deserts := 0
	for _, c := range decoded.Layout {
		if c["number"] == nil {
			deserts++
		}
	}
	assert.Equal(t, 1, deserts, "only the desert has no number")
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"2E7D32", true},
		{"#fff", false},
		{"#GG0000", false},
		{"", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		assert.Equal(t, tt.valid, err == nil, "ParseHexColor(%q) error = %v", tt.input, err)
	}

	r, g, b := MustParseHexColor("#2E7D32").RGB()
	assert.Equal(t, []int32{0x2E, 0x7D, 0x32}, []int32{r, g, b})
}

func TestDefaultPaletteCoversTerrains(t *testing.T) {
	p := DefaultPalette()
	assert.Len(t, p, 6)
	for terrain, style := range p {
		fg, _, _ := style.Decompose()
		assert.NotEqual(t, tcell.ColorDefault, fg, "%s has no foreground color", terrain)
	}
}
