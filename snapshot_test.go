package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSnapshotRoundTrip(t *testing.T) {
	rows := [][]RawCell{
		{{Glyph: '#', Color: 0}, {Glyph: ' ', Color: 0}, {Glyph: '#', Color: 0}},
		{{Glyph: '#', Color: 0}, {Glyph: '@', Color: 3}, {Glyph: '#', Color: 0}},
		{{Glyph: '#', Color: 0}, {Glyph: '$', Color: 3}, {Glyph: '#', Color: 0}},
	}
	g, err := EncodeSnapshot(3, 3, rows)
	assert.NoError(t, err)
	assert.Equal(t, Cell{Kind: KindHead, Color: 3}, g.Get(Position{X: 1, Y: 1}))
	assert.Equal(t, Cell{Kind: KindTail, Color: 3}, g.Get(Position{X: 1, Y: 2}))
	assert.Equal(t, Cell{Kind: KindStone}, g.Get(Position{X: 0, Y: 0}))
}

func TestEncodeSnapshotWrongRowCount(t *testing.T) {
	_, err := EncodeSnapshot(2, 2, [][]RawCell{{{Glyph: ' '}, {Glyph: ' '}}})
	assert.Error(t, err)
	var malformed *ErrMalformedSnapshot
	assert.ErrorAs(t, err, &malformed)
}

func TestEncodeSnapshotUnknownGlyph(t *testing.T) {
	_, err := EncodeSnapshot(1, 1, [][]RawCell{{{Glyph: '?'}}})
	assert.Error(t, err)
}

func TestParseGridAndSerializeRoundTrip(t *testing.T) {
	lines := []string{
		"# # ",
		"@3$3",
	}
	g, err := ParseGrid(lines)
	assert.NoError(t, err)
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, 2, g.Height)
	assert.Equal(t, Cell{Kind: KindHead, Color: 3}, g.Get(Position{X: 0, Y: 1}))
	assert.Equal(t, Cell{Kind: KindTail, Color: 3}, g.Get(Position{X: 1, Y: 1}))

	assert.Equal(t, lines, g.Serialize())
}

func TestParseGridInconsistentWidth(t *testing.T) {
	_, err := ParseGrid([]string{"# ", "#   "})
	assert.Error(t, err)
}

func TestParseGridInvalidColorDigit(t *testing.T) {
	_, err := ParseGrid([]string{"@x"})
	assert.Error(t, err)
}
