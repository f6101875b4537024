package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainRenderer_Display(t *testing.T) {
	var buf bytes.Buffer
	NewPlainRenderer(&buf).Display(MustGrid([][]CellState{{1, 0}, {0, 1}}))
	assert.Equal(t, "██  \n  ██\n", buf.String())
}

func TestPlainRenderer_DisplaySequence(t *testing.T) {
	seq, err := Generate(MustGrid(plus), 1)
	assert.NoError(t, err)

	var buf bytes.Buffer
	NewPlainRenderer(&buf).DisplaySequence(seq)
	assert.Contains(t, buf.String(), "Gen: 0 | Living: 5")
	assert.Contains(t, buf.String(), "Gen: 1 | Living: 0")
}

func TestPlainRenderer_AnimateClearsEachFrame(t *testing.T) {
	seq, err := Generate(MustGrid(plus), 2)
	assert.NoError(t, err)

	var buf bytes.Buffer
	NewPlainRenderer(&buf).Animate(seq, 0)

	out := buf.String()
	assert.Equal(t, seq.Len(), strings.Count(out, "\x1b[2J"))
	assert.Contains(t, out, "Gen: 0/2 | Living: 5")
	assert.Contains(t, out, "Gen: 2/2 | Living: 0")
	// the last frame follows the last clear
	last := out[strings.LastIndex(out, "\x1b[2J"):]
	assert.Contains(t, last, "Gen: 2/2")
}
