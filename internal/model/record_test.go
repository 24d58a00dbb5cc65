package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_AddPromotesRepeatedName(t *testing.T) {
	t.Parallel()

	r := NewRecord()
	r.Add("Sample Name", "S1")
	f, ok := r.Field("Sample Name")
	require.True(t, ok)
	assert.Equal(t, FieldScalar, f.Kind)

	r.Add("Sample Name", "S2")
	r.Add("Sample Name", "")
	assert.Equal(t, FieldList, f.Kind)
	assert.Equal(t, []string{"S1", "S2", ""}, f.List)
	assert.Equal(t, 1, r.Len())
}

func TestRecord_MarshalJSONKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	r := NewRecord()
	r.Add("Zeta", "z")
	r.Ensure("Health Status", FieldTermList).Terms = append(
		r.Ensure("Health Status", FieldTermList).Terms, Term{Text: "Alive", Term: "PATO:1"})
	r.Ensure("Child Of", FieldList)
	r.Add("Alpha", "a")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Zeta":"z","Health Status":[{"text":"Alive","term":"PATO:1"}],"Child Of":[],"Alpha":"a"}`,
		string(data))
	assert.Equal(t, []string{"Zeta", "Health Status", "Child Of", "Alpha"}, r.Keys())
}

func TestField_JSONValueEmptyLists(t *testing.T) {
	t.Parallel()

	cases := map[FieldKind]string{
		FieldList:      `[]`,
		FieldTermList:  `[]`,
		FieldValueList: `[]`,
		FieldScalar:    `""`,
	}
	for kind, want := range cases {
		f := &Field{Name: "x", Kind: kind}
		data, err := json.Marshal(f.JSONValue())
		require.NoError(t, err)
		assert.Equal(t, want, string(data), "kind=%s", kind)
	}
}
