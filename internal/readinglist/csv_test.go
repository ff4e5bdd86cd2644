package readinglist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const goodreadsExport = `Book Id,Title,Author,Author l-f,Additional Authors,ISBN,ISBN13,My Rating,Average Rating,Publisher,Binding,Number of Pages,Year Published,Original Publication Year,Date Read,Date Added,Bookshelves,Bookshelves with positions,Exclusive Shelf,My Review,Spoiler,Private Notes,Read Count,Owned Copies
123,Dune,Frank Herbert,"Herbert, Frank",,"=""0441172717""","=""9780441172719""",5,4.25,Ace,Paperback,412,1990,1965,2023/06/01,2023/05/15,sci-fi,sci-fi (#1),read,,,,1,0
456,Hyperion,Dan Simmons,"Simmons, Dan",,"","=""9780553283686""",0,4.23,Spectra,Paperback,482,1990,1989,,2024/01/02,,,to-read,,,,0,0
789,,Nobody,"Nobody",,"","",0,0,,,,,,,,,,read,,,,0,0
`

func writeExport(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "goodreads_library_export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	entries, err := LoadCSV(writeExport(t, goodreadsExport))
	require.NoError(t, err)
	// The titleless record is skipped
	require.Len(t, entries, 2)

	dune := entries[0]
	require.Equal(t, "Dune", dune.Title)
	require.Equal(t, "Frank Herbert", dune.Author)
	require.Equal(t, "0441172717", dune.ISBN)
	require.Equal(t, "9780441172719", dune.ISBN13)
	require.Equal(t, "read", dune.ExclusiveShelf)
	require.Equal(t, 5.0, dune.MyRating)
	require.Equal(t, "2023/06/01", dune.DateRead)
	require.Equal(t, "2023/05/15", dune.DateAdded)

	hyperion := entries[1]
	require.Equal(t, "Hyperion", hyperion.Title)
	require.Empty(t, hyperion.ISBN)
	require.Equal(t, "9780553283686", hyperion.ISBN13)
	require.Equal(t, "to-read", hyperion.ExclusiveShelf)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestSanitizeISBNValue(t *testing.T) {
	require.Equal(t, "0441172717", sanitizeISBNValue(`="0441172717"`))
	require.Equal(t, "0441172717", sanitizeISBNValue(`"0441172717"`))
	require.Equal(t, "0441172717", sanitizeISBNValue("0441172717"))
	require.Equal(t, "", sanitizeISBNValue(`=""`))
}
