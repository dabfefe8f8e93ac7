package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFontStyle(t *testing.T) {
	assert.Equal(t, "", FontStyle(false, false))
	assert.Equal(t, "B", FontStyle(true, false))
	assert.Equal(t, "I", FontStyle(false, true))
	assert.Equal(t, "BI", Style{Bold: true, Italic: true}.FontStyle())
}

func TestTableWidth(t *testing.T) {
	tb := Table{Widths: []float64{78, 234, 62.4, 72.8, 72.8}}
	assert.InDelta(t, 520.0, tb.Width(), 1e-9)
}

func TestCells(t *testing.T) {
	cells := Cells("a", "", "c")
	assert.Equal(t, []Cell{{Text: "a"}, {}, {Text: "c"}}, cells)
}

func TestBlocksAreClosed(t *testing.T) {
	blocks := []Block{Text{}, Spacer{}, Table{}, Image{}, Barcode{}}
	kinds := map[string]int{}
	for _, b := range blocks {
		switch b.(type) {
		case Text:
			kinds["text"]++
		case Spacer:
			kinds["spacer"]++
		case Table:
			kinds["table"]++
		case Image:
			kinds["image"]++
		case Barcode:
			kinds["barcode"]++
		}
	}
	assert.Len(t, kinds, 5)
}
