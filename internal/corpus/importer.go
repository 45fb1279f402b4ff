package corpus

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/wordquiz/pkg/models"
)

// Format is the file format of the word sheet
type Format string

const (
	// FormatAuto detects the format from the source URL or extension
	FormatAuto Format = ""
	// FormatCSV is a comma-separated export
	FormatCSV Format = "csv"
	// FormatXLSX is an Excel workbook export
	FormatXLSX Format = "xlsx"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	Source    string        // http(s) URL or local path of the word sheet
	Format    Format        // File format, detected when empty
	SheetName string        // Sheet to read from XLSX workbooks, first sheet if empty
	Columns   Columns       // Header names of the word fields
	Timeout   time.Duration // Timeout for fetching remote sheets
}

// Columns lists the accepted header names for each word field
type Columns struct {
	Source    []string
	Target    []string
	AltSource []string
	Category  []string
	Input     []string
}

// DefaultColumns returns the header names of the published word sheet
func DefaultColumns() Columns {
	return Columns{
		Source:    []string{"en"},
		Target:    []string{"ja"},
		AltSource: []string{"alt", "en2"},
		Category:  []string{"year", "Year"},
		Input:     []string{"input"},
	}
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Columns: DefaultColumns(),
		Timeout: 15 * time.Second,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Loaded         int
	Skipped        int
	Duplicates     int
	Errors         []string
}

// Loader reads the word sheet from a URL or a local file
type Loader struct {
	config ImportConfig
	client *http.Client
}

// NewLoader creates a loader; a nil client uses one with the configured timeout
func NewLoader(config ImportConfig, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	return &Loader{config: config, client: client}
}

// Load fetches and parses the word sheet
func (l *Loader) Load(ctx context.Context) ([]models.Word, *ImportResult, error) {
	if l.config.Source == "" {
		return nil, nil, errors.New("word sheet source is not set")
	}

	data, err := l.read(ctx)
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	switch detectFormat(l.config.Source, l.config.Format) {
	case FormatXLSX:
		rows, err = readXLSX(bytes.NewReader(data), l.config.SheetName)
	default:
		rows, err = readCSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, nil, err
	}
	return ParseRows(rows, l.config.Columns)
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !isRemote(l.config.Source) {
		data, err := os.ReadFile(l.config.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to open word sheet: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.config.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch word sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch word sheet: HTTP error: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read word sheet: %w", err)
	}
	return data, nil
}

// readCSV reads all records from a CSV export
func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true    // Spreadsheet exports are not always strict
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return rows, nil
}

// readXLSX reads all rows of one sheet from an Excel workbook
func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// detectFormat picks the explicit format, then the export's format= query
// parameter, then the file extension
func detectFormat(source string, format Format) Format {
	if format != FormatAuto {
		return format
	}
	if u, err := url.Parse(source); err == nil {
		if f := strings.ToLower(u.Query().Get("format")); f == string(FormatXLSX) {
			return FormatXLSX
		}
		if strings.ToLower(filepath.Ext(u.Path)) == ".xlsx" {
			return FormatXLSX
		}
	}
	return FormatCSV
}
