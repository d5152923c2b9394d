package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstcopilot/gstcopilot/internal/model"
)

const sample2B = "Invoice ID,Supplier GSTIN,2B Amount\nINV123,29ABCDE1234F1Z5,10000\nINV124,29ABCDE1234F1Z5,8500"

func TestParse(t *testing.T) {
	recs := Parse(sample2B)
	require.Len(t, recs, 2)
	assert.Equal(t, model.Record{
		"Invoice ID":     "INV123",
		"Supplier GSTIN": "29ABCDE1234F1Z5",
		"2B Amount":      "10000",
	}, recs[0])
	assert.Equal(t, "INV124", recs[1]["Invoice ID"])
	assert.Equal(t, "8500", recs[1]["2B Amount"])
}

func TestParse_TrimsAndCRLF(t *testing.T) {
	recs := Parse(" Invoice ID , 2B Amount \r\n INV1 ,  ₹500 \r\n")
	require.Len(t, recs, 1)
	assert.Equal(t, "INV1", recs[0]["Invoice ID"])
	assert.Equal(t, "₹500", recs[0]["2B Amount"])
}

func TestParse_ShortAndLongRows(t *testing.T) {
	recs := Parse("a,b,c\n1\n1,2,3,4,5")
	require.Len(t, recs, 2)

	assert.Equal(t, model.Record{"a": "1", "b": "", "c": ""}, recs[0])
	assert.Equal(t, model.Record{"a": "1", "b": "2", "c": "3"}, recs[1])
	for _, r := range recs {
		assert.Len(t, r, 3, "every record carries exactly the header fields")
	}
}

func TestParse_BlankLines(t *testing.T) {
	recs := Parse("\n\n  \nid,amt\n\nA,1\n   \n ,  \nB,2\n\n")
	require.Len(t, recs, 3)
	assert.Equal(t, "A", recs[0]["id"])
	assert.Equal(t, model.Record{"id": "", "amt": ""}, recs[1], "a delimiter-only line is an empty record")
	assert.Equal(t, "B", recs[2]["id"])
}

func TestParse_DelimiterOnlyLineIsUnkeyed(t *testing.T) {
	recs := Parse("Invoice ID,2B Amount\n,\nINV1,5")
	require.Len(t, recs, 2)
	assert.Empty(t, recs[0]["Invoice ID"])
	assert.Equal(t, "INV1", recs[1]["Invoice ID"])
}

func TestParse_DelimiterOnlyLineBeforeHeader(t *testing.T) {
	recs := Parse(",,\nid,amt\nA,1")
	require.Len(t, recs, 1)
	assert.Equal(t, model.Record{"id": "A", "amt": "1"}, recs[0])
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n"))
	assert.Empty(t, Parse("Invoice ID,2B Amount\n"))
}

func TestParse_QuotedFieldsAreNotSpecial(t *testing.T) {
	recs := Parse("id,amt\nA,\"1,500\"")
	require.Len(t, recs, 1)
	assert.Equal(t, "\"1", recs[0]["amt"])
}

func TestFromGrid(t *testing.T) {
	grid := [][]string{
		{},
		{"Invoice ID", "Supplier GSTIN", "3B Amount"},
		{"INV123", "", "8500"},
		{"", "", ""},
		{"INV124"},
	}
	recs := FromGrid(grid)
	require.Len(t, recs, 2)
	assert.Equal(t, "8500", recs[0]["3B Amount"])
	assert.Empty(t, recs[0]["Supplier GSTIN"])
	assert.Equal(t, "", recs[1]["3B Amount"])
	_, ok := recs[1].Get("3B Amount")
	assert.True(t, ok, "padded fields are present")
}

func TestMissingColumns(t *testing.T) {
	recs := Parse("Invoice ID,Supplier GSTIN,3B amount\nINV1,G,5")
	assert.Equal(t, []string{"3B Amount"}, MissingColumns(recs, "Invoice ID", "Supplier GSTIN", "3B Amount"))
	assert.Empty(t, MissingColumns(recs, "Invoice ID", "3B amount"))
	assert.Nil(t, MissingColumns(nil, "Invoice ID"))
}
