package corpus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `en,ja,year,alt,input
apple,りんご,1,,1
run,走る,1,jog,
dog,犬,2,,yes
,空,2,,
apple,りんご,3,,
`

func TestParseRows(t *testing.T) {
	rows, err := readCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	words, result, err := ParseRows(rows, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, words, 3)

	assert.Equal(t, "apple", words[0].Source)
	assert.Equal(t, "りんご", words[0].Target)
	assert.Equal(t, "1", words[0].Category)
	assert.True(t, words[0].InputEligible)
	assert.Equal(t, 2, words[0].Row)

	assert.Equal(t, "jog", words[1].AltSource)
	assert.False(t, words[1].InputEligible)
	assert.True(t, words[2].InputEligible)

	assert.Equal(t, 5, result.TotalProcessed)
	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Duplicates)
	assert.Len(t, result.Errors, 1)
}

func TestParseRowsWithoutInputColumn(t *testing.T) {
	rows := [][]string{
		{"en", "ja"},
		{"cat", "猫"},
	}
	words, _, err := ParseRows(rows, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.True(t, words[0].InputEligible)
	assert.Empty(t, words[0].Category)
}

func TestParseRowsAlternateHeaders(t *testing.T) {
	rows := [][]string{
		{},
		{"EN", "JA", "Year", "en2"},
		{"big", "大きい", "2", "large"},
	}
	words, _, err := ParseRows(rows, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "2", words[0].Category)
	assert.Equal(t, "large", words[0].AltSource)
	assert.Equal(t, 3, words[0].Row)
}

func TestParseRowsByteOrderMark(t *testing.T) {
	rows := [][]string{
		{"\ufeffen", "ja", "year"},
		{"run", "走る", "1"},
	}
	words, _, err := ParseRows(rows, DefaultColumns())
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "run", words[0].Source)
	assert.Equal(t, "1", words[0].Category)
}

func TestLoaderReadsCSVWithByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeff"+sampleCSV), 0o644))

	config := DefaultImportConfig()
	config.Source = path

	words, result, err := NewLoader(config, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, words, 3)
	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, "apple", words[0].Source)
}

func TestParseRowsMissingColumns(t *testing.T) {
	_, _, err := ParseRows([][]string{{"word", "translation"}}, DefaultColumns())
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestParseRowsEmpty(t *testing.T) {
	words, result, err := ParseRows(nil, DefaultColumns())
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.Zero(t, result.TotalProcessed)
}

func TestWordID(t *testing.T) {
	assert.Equal(t, WordID("apple", "りんご"), WordID("apple", "りんご"))
	assert.NotEqual(t, WordID("apple", "りんご"), WordID("りんご", "apple"))
	assert.NotEqual(t, WordID("ab", "c"), WordID("a", "bc"))
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"TRUE", true},
		{" yes ", true},
		{"y", true},
		{"x", true},
		{"○", true},
		{"", false},
		{"0", false},
		{"no", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTruthy(tt.value))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		source string
		format Format
		want   Format
	}{
		{"explicit", "words.csv", FormatXLSX, FormatXLSX},
		{"query parameter", "https://docs.google.com/export?format=xlsx&gid=0", FormatAuto, FormatXLSX},
		{"extension", "/tmp/words.XLSX", FormatAuto, FormatXLSX},
		{"csv default", "https://example.com/pub?output=csv", FormatAuto, FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat(tt.source, tt.format))
		})
	}
}

func TestLoaderFetchesCSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	config := DefaultImportConfig()
	config.Source = server.URL + "/pub?output=csv"

	words, result, err := NewLoader(config, server.Client()).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, words, 3)
	assert.Equal(t, 3, result.Loaded)
}

func TestLoaderHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	config := DefaultImportConfig()
	config.Source = server.URL

	_, _, err := NewLoader(config, nil).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoaderReadsXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"en", "ja", "year", "input"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"apple", "りんご", 1, "○"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"dog", "犬", 2, ""}))

	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))

	config := DefaultImportConfig()
	config.Source = path

	words, _, err := NewLoader(config, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "1", words[0].Category)
	assert.True(t, words[0].InputEligible)
	assert.False(t, words[1].InputEligible)
}

func TestLoaderMissingFile(t *testing.T) {
	config := DefaultImportConfig()
	config.Source = filepath.Join(t.TempDir(), "missing.csv")

	_, _, err := NewLoader(config, nil).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
