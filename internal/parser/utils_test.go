package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumnName_Whitespace(t *testing.T) {
	t.Parallel()

	if got := NormalizeColumnName("  Health\nStatus\t "); got != "Health Status" {
		t.Fatalf("want=%q got=%q", "Health Status", got)
	}
	if got := NormalizeColumnName("Term   Source  ID"); got != "Term Source ID" {
		t.Fatalf("want=%q got=%q", "Term Source ID", got)
	}
}

func TestNormalizeSheetName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "chip-seq input dna", NormalizeSheetName(" ChIP-seq_input_DNA "))
	assert.Equal(t, "rna-seq", NormalizeSheetName("RNA-seq"))
	assert.Equal(t, "faang", NormalizeSheetName("FAANG"))
}

func TestCellString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "", CellString(math.NaN()))
	assert.Equal(t, "", CellString("NaN"))
	assert.Equal(t, "", CellString("null"))
	assert.Equal(t, "12.5", CellString(12.5))
	assert.Equal(t, "3", CellString(3))
	assert.Equal(t, "true", CellString(true))
	assert.Equal(t, " keep ", CellString(" keep "))
}

func TestRowsFromValues(t *testing.T) {
	t.Parallel()

	rows := RowsFromValues([][]any{{"S1", nil, 1.0}, {}})
	assert.Equal(t, [][]string{{"S1", "", "1"}, {}}, rows)
}
