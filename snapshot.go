package main

import (
	"fmt"
)

// glyphKind maps the external grid alphabet (spec.md §6) to internal Kind
// values. The character set itself is an external collaborator's concern
// (spec.md §1 treats "the character constants of the grid alphabet" as
// given to the core through an interface); this table is that interface's
// one fixed implementation, since every retrieved example hard-codes its
// own glyph set the same way.
var glyphKind = map[byte]Kind{
	' ': KindVoid,
	'#': KindStone,
	'@': KindHead,
	'*': KindBody,
	'$': KindTail,
	'x': KindDeadHead,
	'+': KindDeadBody,
	'%': KindDeadTail,
	'1': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
}

var kindGlyph = func() map[Kind]byte {
	m := make(map[Kind]byte, len(glyphKind))
	for glyph, kind := range glyphKind {
		m[kind] = glyph
	}
	return m
}()

// RawCell is one external-snapshot cell: the glyph as the game server sends
// it, plus its color (0..7, meaningful only for live/dead snake segments).
type RawCell struct {
	Glyph byte
	Color Color
}

// ErrMalformedSnapshot is returned by EncodeSnapshot and ParseGrid for any
// row-width mismatch or unrecognized glyph, per spec.md §7's "Malformed
// input" error class: the tick that produced it must not be allowed to
// corrupt the persistent old_state.
type ErrMalformedSnapshot struct {
	Reason string
}

func (e *ErrMalformedSnapshot) Error() string {
	return fmt.Sprintf("malformed snapshot: %s", e.Reason)
}

// EncodeSnapshot builds a fresh Grid from a [y][x]-indexed array of raw
// (glyph, color) pairs, the External Input grid snapshot of spec.md §6.
func EncodeSnapshot(width, height int, rows [][]RawCell) (*Grid, error) {
	if len(rows) != height {
		return nil, &ErrMalformedSnapshot{Reason: fmt.Sprintf("expected %d rows, got %d", height, len(rows))}
	}
	g := NewGrid(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, &ErrMalformedSnapshot{Reason: fmt.Sprintf("row %d: expected %d cells, got %d", y, width, len(row))}
		}
		for x, raw := range row {
			kind, ok := glyphKind[raw.Glyph]
			if !ok {
				return nil, &ErrMalformedSnapshot{Reason: fmt.Sprintf("row %d col %d: unknown glyph %q", y, x, raw.Glyph)}
			}
			g.Set(Position{X: x, Y: y}, Cell{Kind: kind, Color: raw.Color})
		}
	}
	return g, nil
}

// ParseGrid parses the textual round-trip format of spec.md §6: each row is
// a string of 2*W characters, two per cell (kind glyph, then the color
// digit 1..9 or a space). It rejects rows of the wrong or inconsistent
// width.
func ParseGrid(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, &ErrMalformedSnapshot{Reason: "no rows"}
	}
	width := len(lines[0]) / 2
	if width*2 != len(lines[0]) {
		return nil, &ErrMalformedSnapshot{Reason: fmt.Sprintf("row 0 has odd length %d", len(lines[0]))}
	}
	g := NewGrid(width, len(lines))
	for y, line := range lines {
		if len(line) != width*2 {
			return nil, &ErrMalformedSnapshot{Reason: fmt.Sprintf("row %d: expected %d characters, got %d", y, width*2, len(line))}
		}
		for x := 0; x < width; x++ {
			glyph := line[x*2]
			colorCh := line[x*2+1]

			kind, ok := glyphKind[glyph]
			if !ok {
				return nil, &ErrMalformedSnapshot{Reason: fmt.Sprintf("row %d col %d: unknown glyph %q", y, x, glyph)}
			}

			var color Color
			if colorCh != ' ' {
				if colorCh < '0' || colorCh > '9' {
					return nil, &ErrMalformedSnapshot{Reason: fmt.Sprintf("row %d col %d: invalid color digit %q", y, x, colorCh)}
				}
				color = Color(colorCh - '0')
			}
			g.Set(Position{X: x, Y: y}, Cell{Kind: kind, Color: color})
		}
	}
	return g, nil
}

// Serialize renders g back into the textual round-trip format: for every
// cell, the kind glyph followed by its color digit (1..9) or a space.
// Serialize(ParseGrid(lines)) reproduces lines for any well-formed input.
func (g *Grid) Serialize() []string {
	lines := make([]string, g.Height)
	buf := make([]byte, g.Width*2)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Get(Position{X: x, Y: y})
			buf[x*2] = kindGlyph[c.Kind]
			if c.Color >= 1 && c.Color <= 9 {
				buf[x*2+1] = byte('0' + c.Color)
			} else {
				buf[x*2+1] = ' '
			}
		}
		lines[y] = string(buf)
	}
	return lines
}
