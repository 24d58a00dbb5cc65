package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formvalidator/internal/model"
)

func TestSheetClassifier_Defaults(t *testing.T) {
	t.Parallel()

	c := DefaultSheetClassifier()
	expect := map[string]model.SheetKind{
		"faang":                         model.SheetKindAnalysis,
		"ENA":                           model.SheetKindAnalysis,
		" eva ":                         model.SheetKindAnalysis,
		"RNA-seq":                       model.SheetKindExperiment,
		"ChIP-seq_input_DNA":            model.SheetKindExperiment,
		"chip-seq dna-binding proteins": model.SheetKindExperiment,
		"WGS":                           model.SheetKindExperiment,
		"organism":                      model.SheetKindSample,
		"specimen from organism":        model.SheetKindSample,
		"":                              model.SheetKindSample,
	}
	for name, want := range expect {
		if got := c.Classify(name).Kind(); got != want {
			t.Fatalf("sheet %q kind want=%s got=%s", name, want, got)
		}
	}
}

func TestSheetClassifier_Custom(t *testing.T) {
	t.Parallel()

	c := NewSheetClassifier([]string{"my_archive"}, []string{"Long Read Seq"})
	assert.True(t, c.Classify("My Archive").IsAnalysis)
	assert.True(t, c.Classify("long_read_seq").IsExperiment)
	assert.False(t, c.Classify("faang").IsAnalysis)
}

func TestSheetRecognizer_Confidence(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer(nil)

	res := r.Recognize("organism", []string{"Sample Name", " Material ", "Organism", "Sex"})
	assert.Equal(t, model.SheetKindSample, res.Kind)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
	assert.Empty(t, res.MissingHeaders)

	res = r.Recognize("ChIP-seq DNA-binding proteins", []string{"Sample Descriptor", "chip target"})
	assert.Equal(t, model.SheetKindExperiment, res.Kind)
	assert.InDelta(t, 2.0/3.0, res.Confidence, 1e-9)
	assert.Equal(t, []string{"Assay Type"}, res.MissingHeaders)

	res = r.Recognize("faang", nil)
	assert.Equal(t, model.SheetKindAnalysis, res.Kind)
	assert.Zero(t, res.Confidence)
	assert.Len(t, res.MissingHeaders, 3)
}
