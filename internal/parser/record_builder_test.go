package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formvalidator/internal/model"
)

func recordJSON(t *testing.T, r *model.Record) string {
	t.Helper()
	data, err := json.Marshal(r)
	require.NoError(t, err)
	return string(data)
}

func TestBuildRecords_PairedTerm(t *testing.T) {
	t.Parallel()

	records := BuildRecords(
		[]string{"Health Status", "Health Status Term Source ID"},
		[][]string{{"Alive", "PATO:0001421"}},
		"organism",
	)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"Health Status":[{"text":"Alive","term":"PATO:0001421"}]}`, recordJSON(t, records[0]))
}

func TestBuildRecords_PairedTermWithoutTermColumn(t *testing.T) {
	t.Parallel()

	records := BuildRecords(
		[]string{"Cell Type", "Material"},
		[][]string{{" liver cell ", "organism"}, {"", "organism"}},
		"specimen",
	)
	require.Len(t, records, 2)
	assert.Equal(t, `{"Cell Type":[{"text":"liver cell","term":""}],"Material":"organism"}`, recordJSON(t, records[0]))
	assert.Equal(t, `{"Cell Type":[],"Material":"organism"}`, recordJSON(t, records[1]))
}

func TestBuildRecords_RepeatedSkipsEmpty(t *testing.T) {
	t.Parallel()

	records := BuildRecords(
		[]string{"Child Of", "Child Of", "Child Of"},
		[][]string{{"A", "", "B"}, {"", "  ", ""}},
		"specimen",
	)
	require.Len(t, records, 2)

	v, ok := records[0].Get("Child Of")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, v)

	v, ok = records[1].Get("Child Of")
	require.True(t, ok)
	assert.Equal(t, []string{}, v)
}

func TestBuildRecords_SheetConditionalSecondaryProject(t *testing.T) {
	t.Parallel()

	headers := []string{"Secondary Project"}
	rows := [][]string{{"P1"}}

	sample := BuildRecords(headers, rows, "organism")
	assert.Equal(t, `{"Secondary Project":"P1"}`, recordJSON(t, sample[0]))

	analysis := BuildRecords(headers, rows, "faang")
	assert.Equal(t, `{"Secondary Project":["P1"]}`, recordJSON(t, analysis[0]))

	experiment := BuildRecords(headers, rows, "RNA-seq")
	assert.Equal(t, `{"Secondary Project":["P1"]}`, recordJSON(t, experiment[0]))
}

func TestBuildRecords_SecondaryProjectFirstNonEmptyWins(t *testing.T) {
	t.Parallel()

	headers := []string{"Secondary Project", "Secondary Project", "Secondary Project"}
	records := BuildRecords(headers, [][]string{
		{"", "P2", "P3"},
		{"P1", "P2", ""},
		{"", "", ""},
	}, "organism")

	require.Len(t, records, 3)
	for i, want := range []string{"P2", "P1", ""} {
		v, ok := records[i].Get("Secondary Project")
		require.True(t, ok)
		assert.Equal(t, want, v, "row %d", i)
	}
}

func TestBuildRecords_ArchiveListFieldsDependOnSheet(t *testing.T) {
	t.Parallel()

	headers := []string{"File Names", "File Names", "Checksums"}
	rows := [][]string{{"a.bam", "b.bam", "abc"}}

	analysis := BuildRecords(headers, rows, "ENA")
	assert.Equal(t, `{"File Names":["a.bam","b.bam"],"Checksums":["abc"]}`, recordJSON(t, analysis[0]))

	// sample 模板中同名列走普通列的重复提升
	sample := BuildRecords(headers, rows, "specimen")
	assert.Equal(t, `{"File Names":["a.bam","b.bam"],"Checksums":"abc"}`, recordJSON(t, sample[0]))
}

func TestBuildRecords_AnalysisValueObjects(t *testing.T) {
	t.Parallel()

	headers := []string{"experiment type", "experiment type", "platform"}
	rows := [][]string{{"RNA-seq", "", "Illumina"}}

	analysis := BuildRecords(headers, rows, "faang")
	assert.Equal(t,
		`{"experiment type":[{"value":"RNA-seq"}],"platform":[{"value":"Illumina"}]}`,
		recordJSON(t, analysis[0]))

	experiment := BuildRecords(headers, rows, "wgs")
	assert.Equal(t,
		`{"experiment type":["RNA-seq",""],"platform":"Illumina"}`,
		recordJSON(t, experiment[0]))
}

func TestBuildRecords_TargetObject(t *testing.T) {
	t.Parallel()

	headers := []string{"Sample Descriptor", "Experiment Target", "Experiment Target Term", "chip target", "chip target Term Source ID"}
	records := BuildRecords(headers, [][]string{
		{"S1", "polyA RNA", "CHEBI:33697", "H3K4me3", ""},
		{"S2", "", "", "", ""},
	}, "ChIP-seq_DNA-binding_proteins")

	require.Len(t, records, 2)
	assert.Equal(t,
		`{"Sample Descriptor":"S1","Experiment Target":{"text":"polyA RNA","term":"CHEBI:33697"},"chip target":{"text":"H3K4me3","term":""}}`,
		recordJSON(t, records[0]))
	// 空值不产生对象字段
	assert.Equal(t, `{"Sample Descriptor":"S2"}`, recordJSON(t, records[1]))
}

func TestBuildRecords_EndToEnd(t *testing.T) {
	t.Parallel()

	raw := []string{"Sample Name", "Health Status", "Term Source ID", "Child Of", "Child Of.1"}
	headers := NormalizeHeaders(raw)
	require.Equal(t,
		[]string{"Sample Name", "Health Status", "Health Status Term Source ID", "Child Of", "Child Of Child Of"},
		headers)

	records := BuildRecords(headers, [][]string{{"S1", "Alive", "PATO:1", "P1", "P2"}}, "organism")
	require.Len(t, records, 1)
	assert.Equal(t,
		`{"Sample Name":"S1","Health Status":[{"text":"Alive","term":"PATO:1"}],"Child Of":["P1"],"Child Of Child Of":"P2"}`,
		recordJSON(t, records[0]))
}

func TestBuildRecords_RowShapes(t *testing.T) {
	t.Parallel()

	headers := []string{"Sample Name", "Material", "Organism"}
	rows := [][]string{
		{"S1"},
		{"S2", "organism", "Sus scrofa", "extra", "cells"},
		{"NaN", "null", "Bos taurus"},
		{},
	}
	records := BuildRecords(headers, rows, "organism")
	require.Len(t, records, len(rows))

	assert.Equal(t, `{"Sample Name":"S1","Material":"","Organism":""}`, recordJSON(t, records[0]))
	assert.Equal(t, `{"Sample Name":"S2","Material":"organism","Organism":"Sus scrofa"}`, recordJSON(t, records[1]))
	assert.Equal(t, `{"Sample Name":"","Material":"","Organism":"Bos taurus"}`, recordJSON(t, records[2]))
	assert.Equal(t, 3, records[3].Len())
}

func TestBuildRecords_EmptyRows(t *testing.T) {
	t.Parallel()

	records := BuildRecords([]string{"Sample Name"}, nil, "organism")
	assert.Empty(t, records)
}

func TestBuildRecordsWithReport_Warnings(t *testing.T) {
	t.Parallel()

	headers := []string{"Health Status", "Sex", "Health Status Term Source ID", "Material", "Material Term Source ID"}
	records, warnings := BuildRecordsWithReport(headers, [][]string{{"Alive", "female", "PATO:1", "organism", "OBI:1"}}, "organism")

	require.Len(t, records, 1)
	require.Len(t, warnings, 3)
	assert.Equal(t, WarnTermColumnMissing, warnings[0].Code)
	assert.Equal(t, 0, warnings[0].Column)
	assert.Equal(t, WarnOrphanTermColumn, warnings[1].Code)
	assert.Equal(t, 2, warnings[1].Column)
	assert.Equal(t, WarnOrphanTermColumn, warnings[2].Code)
	assert.Equal(t, 4, warnings[2].Column)

	// 提示不改变记录
	assert.Equal(t,
		`{"Health Status":[{"text":"Alive","term":""}],"Sex":"female","Health Status Term Source ID":"PATO:1","Material":"organism","Material Term Source ID":"OBI:1"}`,
		recordJSON(t, records[0]))
}

func TestPlanColumns_ConsumesTermColumnOnce(t *testing.T) {
	t.Parallel()

	headers := []string{"Cell Type", "Cell Type Term Source ID", "Cell Type", "Sample Name"}
	steps, warnings := planColumns(headers, samplePolicySet)

	assert.Empty(t, warnings)
	require.Len(t, steps, 3)
	assert.Equal(t, 0, steps[0].Index)
	assert.Equal(t, 1, steps[0].TermIndex)
	assert.Equal(t, 2, steps[0].Width())
	assert.Equal(t, 2, steps[1].Index)
	assert.Equal(t, -1, steps[1].TermIndex)
	assert.False(t, steps[2].Claimed)

	records := BuildRecords(headers, [][]string{{"hepatocyte", "CL:1", "kupffer", "S1"}}, "specimen")
	assert.Equal(t,
		`{"Cell Type":[{"text":"hepatocyte","term":"CL:1"},{"text":"kupffer","term":""}],"Sample Name":"S1"}`,
		recordJSON(t, records[0]))
}

func TestBuildRecords_TargetObjectOverwrite(t *testing.T) {
	t.Parallel()

	// 后出现的非空值覆盖对象，尾部空值不影响
	headers := []string{"Experiment Target", "Experiment Target", "Experiment Target"}
	records := BuildRecords(headers, [][]string{{"a", "b", ""}}, "wgs")
	require.Len(t, records, 1)
	assert.Equal(t, `{"Experiment Target":{"text":"b","term":""}}`, recordJSON(t, records[0]))

	headers = []string{"Experiment Target", "Experiment Target Term", "Experiment Target"}
	records = BuildRecords(headers, [][]string{
		{"polyA RNA", "CHEBI:33697", "total RNA"},
		{"polyA RNA", "CHEBI:33697", ""},
	}, "RNA-seq")
	require.Len(t, records, 2)
	assert.Equal(t, `{"Experiment Target":{"text":"total RNA","term":""}}`, recordJSON(t, records[0]))
	assert.Equal(t, `{"Experiment Target":{"text":"polyA RNA","term":"CHEBI:33697"}}`, recordJSON(t, records[1]))
}

func TestHeaderCursor(t *testing.T) {
	t.Parallel()

	cur := newHeaderCursor([]string{"a", "b", "c"})
	idx, h := cur.current()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "a", h)

	next, ok := cur.peek(1)
	assert.True(t, ok)
	assert.Equal(t, "b", next)

	cur.advance(2)
	_, ok = cur.peek(1)
	assert.False(t, ok)
	idx, h = cur.current()
	assert.Equal(t, 2, idx)
	assert.Equal(t, "c", h)

	cur.advance(2)
	assert.True(t, cur.done())
}
