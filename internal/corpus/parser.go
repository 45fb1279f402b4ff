package corpus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/example/wordquiz/pkg/models"
)

// wordNamespace scopes content-derived word identifiers
var wordNamespace = uuid.MustParse("6f1c2a8e-3b5d-4e7a-9c0f-2d4b6a8e1f35")

// ErrMissingColumns is returned when the header row lacks the source or target column
var ErrMissingColumns = errors.New("word sheet header is missing a required column")

// WordID derives a stable identifier from the word's directional fields,
// so performance records survive reordering of the sheet
func WordID(source, target string) string {
	return uuid.NewSHA1(wordNamespace, []byte(source+"\x00"+target)).String()
}

// IsTruthy reports whether an input-column value marks the word as usable in free-text mode
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y", "x", "○":
		return true
	}
	return false
}

type columnIndex struct {
	source, target, altSource, category, input int
}

// ParseRows converts sheet rows into words. The first non-empty row is the header;
// rows missing either directional field are skipped and repeated source/target
// pairs keep their first occurrence.
func ParseRows(rows [][]string, columns Columns) ([]models.Word, *ImportResult, error) {
	result := &ImportResult{Errors: make([]string, 0)}

	headerAt := -1
	for i, row := range rows {
		if !blank(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return []models.Word{}, result, nil
	}

	// UTF-8 exports from Excel start with a byte order mark
	header := append([]string(nil), rows[headerAt]...)
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	idx := columnIndex{
		source:    lookup(header, columns.Source),
		target:    lookup(header, columns.Target),
		altSource: lookup(header, columns.AltSource),
		category:  lookup(header, columns.Category),
		input:     lookup(header, columns.Input),
	}
	if idx.source < 0 || idx.target < 0 {
		return nil, nil, fmt.Errorf("%w: need %v and %v", ErrMissingColumns, columns.Source, columns.Target)
	}

	words := make([]models.Word, 0, len(rows)-headerAt-1)
	seen := make(map[string]bool)

	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		result.TotalProcessed++
		rowNum := i + 1

		word := models.Word{
			Source:    cell(row, idx.source),
			Target:    cell(row, idx.target),
			AltSource: cell(row, idx.altSource),
			Category:  cell(row, idx.category),
			Row:       rowNum,
		}
		// Without an input column every word may be typed
		word.InputEligible = idx.input < 0 || IsTruthy(cell(row, idx.input))

		if !word.Valid() {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing source or target", rowNum))
			continue
		}

		word.ID = WordID(word.Source, word.Target)
		if seen[word.ID] {
			result.Duplicates++
			continue
		}
		seen[word.ID] = true

		words = append(words, word)
		result.Loaded++
	}

	return words, result, nil
}

// lookup finds the first header matching one of the names, exact match first
func lookup(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
	}
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
