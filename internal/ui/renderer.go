// Package ui renders generated boards as text, JSON or YAML.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/hexboard/internal/board"
	"github.com/samdwyer/hexboard/internal/game"
	"github.com/samdwyer/hexboard/internal/scoring"
)

const (
	cellWidth = 6
	barScale  = 1 // Pips per bar character
)

// DefaultTop is how many intersections Render lists.
const DefaultTop = 5

// Renderer writes boards to an output stream.
type Renderer struct {
	w       io.Writer
	geom    *scoring.Geometry
	palette Palette
	top     int
}

// NewRenderer creates a renderer that lays cells out by geom.
func NewRenderer(w io.Writer, geom *scoring.Geometry) *Renderer {
	return &Renderer{w: w, geom: geom, top: DefaultTop}
}

// WithColor turns on terrain colors from the palette.
func (r *Renderer) WithColor(p Palette) *Renderer {
	r.palette = p
	return r
}

// WithTop sets how many intersections are listed.
func (r *Renderer) WithTop(n int) *Renderer {
	r.top = max(n, 0)
	return r
}

// Render draws the board as rows of cells, followed by the harbours,
// per-resource production and the best intersections.
func (r *Renderer) Render(b *game.Board) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Board %s (%d attempts)\n", b.ID, b.Attempts)
	for _, row := range r.geom.Rows() {
		line := strings.Repeat(" ", r.geom.Indent(row)*cellWidth/2)
		for _, id := range row {
			c, ok := b.Layout.Cell(id)
			if !ok {
				return fmt.Errorf("board has no cell %d", id)
			}
			line += r.cell(c)
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}

	sb.WriteString("\nPorts\n")
	for _, p := range b.Ports {
		fmt.Fprintf(&sb, "  slot %2d  %d:1 %-8s %3d\n", p.WaterSlot, p.Type.Ratio(), p.Type, p.Angle)
	}

	sb.WriteString("\nProduction\n")
	for _, res := range board.Resources {
		pips := b.Resources[res]
		fmt.Fprintf(&sb, "  %-6s %3d  %s\n", res, pips, strings.Repeat("#", pips/barScale))
	}

	if r.top > 0 && len(b.Intersections) > 0 {
		sb.WriteString("\nBest intersections\n")
		for _, p := range scoring.Best(b.Intersections, r.top) {
			mark := ""
			if p.High() {
				mark = "  !"
			}
			fmt.Fprintf(&sb, "  (%3d,%3d) %2d  cells %s%s\n", p.X, p.Y, p.Pips, joinInts(p.Cells), mark)
		}
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// RenderJSON writes the board as indented JSON.
func (r *Renderer) RenderJSON(b *game.Board) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// RenderYAML writes the board as YAML with the same keys and key order as
// the JSON output.
func (r *Renderer) RenderYAML(b *game.Board) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}

	// JSON is valid YAML; decoding into a node keeps the key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("convert board to yaml: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles JSON input leaves on every
// node. Strings that would read back as another type stay quoted.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// cell formats one cell as its terrain letter and number, hot numbers
// starred (and bold when colored), padded to cellWidth.
func (r *Renderer) cell(c board.Cell) string {
	num := "--"
	if c.HasNumber() {
		num = strconv.Itoa(c.Number)
	}

	text := fmt.Sprintf("%c%s", c.Terrain.Rune(), num)
	visible := len(text)
	if style, ok := r.palette[c.Terrain]; ok {
		text = paint(text, style.Bold(c.IsHot()))
	}
	if c.IsHot() {
		text += "*"
		visible++
	}
	return text + strings.Repeat(" ", cellWidth-visible)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
