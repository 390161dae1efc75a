package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVSimpleRows(t *testing.T) {
	rows := ParseCSV("a,b,c\n1,2,3\n")
	require.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, rows)
}

func TestParseCSVQuotedComma(t *testing.T) {
	rows := ParseCSV(`name,address` + "\n" + `John,"123 Main St, Apt 4"` + "\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "123 Main St, Apt 4", rows[1][1])
}

func TestParseCSVEscapedQuote(t *testing.T) {
	rows := ParseCSV(`note` + "\n" + `"she said ""hi"""` + "\n")
	require.Len(t, rows, 2)
	assert.Equal(t, `she said "hi"`, rows[1][0])
}

func TestParseCSVQuotedNewline(t *testing.T) {
	rows := ParseCSV("note,city\n\"line one\nline two\",Austin\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "line one\nline two", rows[1][0])
	assert.Equal(t, "Austin", rows[1][1])
}

func TestParseCSVLineEndings(t *testing.T) {
	for _, eol := range []string{"\n", "\r\n", "\r"} {
		rows := ParseCSV("a,b" + eol + "1,2" + eol)
		require.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows, "eol %q", eol)
	}
}

func TestParseCSVDropsBlankRows(t *testing.T) {
	rows := ParseCSV("a,b\n\n , \n1,2\n,,\n")
	require.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestParseCSVNoTrailingNewline(t *testing.T) {
	rows := ParseCSV("a,b\n1,2")
	require.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestParseCSVRoundTrip(t *testing.T) {
	fields := []string{"John Smith", "buyer", "450000"}
	rows := ParseCSV(strings.Join(fields, ",") + "\n")
	require.Equal(t, [][]string{fields}, rows)
}

func TestRowToRecord(t *testing.T) {
	header := []string{" Client_Name ", "DEAL_TYPE", "city"}
	rec := RowToRecord(header, []string{"John", "buyer"})

	assert.Equal(t, "John", rec["client_name"])
	assert.Equal(t, "buyer", rec["deal_type"])
	// short row resolves to empty string, not a missing key
	v, ok := rec["city"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestExampleCSVShape(t *testing.T) {
	rows := ParseCSV(ExampleCSV())
	require.Len(t, rows, 4)
	require.Len(t, rows[0], 18)
	assert.Equal(t, "client_name", rows[0][0])
	assert.Equal(t, "close_date", rows[0][17])
	for _, row := range rows[1:] {
		assert.Len(t, row, 18)
	}
}
