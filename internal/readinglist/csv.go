package readinglist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lepinkainen/shelfscan/internal/csvutil"
)

// LoadCSV reads a Goodreads library export into reading-list entries.
// Records without a title are skipped with a warning.
func LoadCSV(path string) ([]Entry, error) {
	entries, err := csvutil.ProcessCSV(path, parseEntry, csvutil.ProcessorOptions{SkipInvalid: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load reading list: %w", err)
	}
	return entries, nil
}

func parseEntry(row map[string]string) (Entry, error) {
	title := strings.TrimSpace(row["Title"])
	if title == "" {
		return Entry{}, fmt.Errorf("record has no title")
	}

	return Entry{
		Title:          title,
		Author:         strings.TrimSpace(row["Author"]),
		ISBN:           sanitizeISBNValue(row["ISBN"]),
		ISBN13:         sanitizeISBNValue(row["ISBN13"]),
		ExclusiveShelf: row["Exclusive Shelf"],
		MyRating:       parseFloatField(row["My Rating"]),
		DateRead:       row["Date Read"],
		DateAdded:      row["Date Added"],
	}, nil
}

// sanitizeISBNValue strips the `="0306406152"` formula wrapper Goodreads
// uses to keep spreadsheets from eating leading zeros.
func sanitizeISBNValue(value string) string {
	value = strings.TrimPrefix(value, "=")
	return strings.Trim(value, `"`)
}

func parseFloatField(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}
