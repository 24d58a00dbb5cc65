package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeaders_Rules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "dotted term source attaches to previous",
			in:   []string{"Health Status", "Term Source ID.1"},
			want: []string{"Health Status", "Health Status Term Source ID"},
		},
		{
			name: "bare term source attaches to previous",
			in:   []string{"Health Status", "Term Source ID", "Cell Type", "Term Source ID.1"},
			want: []string{"Health Status", "Health Status Term Source ID", "Cell Type", "Cell Type Term Source ID"},
		},
		{
			name: "bare term source after unpaired column is renamed too",
			in:   []string{"Sample Name", "Term Source ID", "Material"},
			want: []string{"Sample Name", "Sample Name Term Source ID", "Material"},
		},
		{
			name: "consecutive duplicates kept",
			in:   []string{"Sample Name", "Sample Name"},
			want: []string{"Sample Name", "Sample Name"},
		},
		{
			name: "long consecutive run kept",
			in:   []string{"Child Of", "Child Of", "Child Of", "Material"},
			want: []string{"Child Of", "Child Of", "Child Of", "Material"},
		},
		{
			name: "non consecutive duplicate prefixed with previous",
			in:   []string{"A", "B", "A"},
			want: []string{"A", "B", "B_A"},
		},
		{
			name: "dotted suffix uses previous emitted not raw",
			in:   []string{"Sample Name", "Health Status", "Term Source ID", "Child Of", "Child Of.1"},
			want: []string{"Sample Name", "Health Status", "Health Status Term Source ID", "Child Of", "Child Of Child Of"},
		},
		{
			name: "first header never dotted",
			in:   []string{"a.b", "c"},
			want: []string{"a.b", "c"},
		},
		{
			name: "first header term source stays",
			in:   []string{"Term Source ID", "x"},
			want: []string{"Term Source ID", "x"},
		},
		{
			name: "dotted wins over duplicate",
			in:   []string{"X", "Y.1", "Y.1"},
			want: []string{"X", "X Y", "X Y Y"},
		},
		{
			name: "chained dotted suffixes",
			in:   []string{"Cell Type", "Term Source ID.1", "Term Source ID.2"},
			want: []string{"Cell Type", "Cell Type Term Source ID", "Cell Type Term Source ID Term Source ID"},
		},
		{
			name: "empty names pass through",
			in:   []string{"A", "", "B", ""},
			want: []string{"A", "", "B", ""},
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizeHeaders(tc.in))
		})
	}
}

func TestNormalizeHeaders_LengthInvariant(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		nil,
		{"A"},
		{"A", "A", "A", "B", "A", "B.1", "Term Source ID", "", "", "C.2.3"},
		{"x.1", "x.1", "x.1"},
		{"Term Source ID", "Term Source ID", "Term Source ID"},
	}
	for _, in := range inputs {
		if got := NormalizeHeaders(in); len(got) != len(in) {
			t.Fatalf("length mismatch in=%v got=%v", in, got)
		}
	}
}

func TestNormalizeHeaders_IdempotentWithoutDotsOrDuplicates(t *testing.T) {
	t.Parallel()

	in := []string{"Sample Name", "Material", "Organism", "Sex", "Breed"}
	once := NormalizeHeaders(in)
	assert.Equal(t, in, once)
	assert.Equal(t, once, NormalizeHeaders(once))
}
