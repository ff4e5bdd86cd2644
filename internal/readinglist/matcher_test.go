package readinglist

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stretchr/testify/require"
)

func TestMatchByIdentifier(t *testing.T) {
	entries := []Entry{
		{
			Title:          "Teh Hobbit", // typo on purpose
			Author:         "Tolkien",
			ISBN13:         "978-0-345-33968-3",
			ExclusiveShelf: "read",
			MyRating:       5,
			DateRead:       "2024/01/15",
		},
	}

	info := Match("The Hobbit", "J.R.R. Tolkien", "9780345339683", entries)
	require.NotNil(t, info)
	assert.Equal(t, "read", info.Shelf)
	assert.Equal(t, 5.0, info.MyRating)
	assert.Equal(t, "2024/01/15", info.DateRead)
}

func TestMatchByTenDigitISBNField(t *testing.T) {
	entries := []Entry{
		{Title: "Anything", ISBN: `="0306406152"`, ExclusiveShelf: "to-read"},
	}

	info := Match("Completely Different", "Nobody", "0306406152", entries)
	require.NotNil(t, info)
	assert.Equal(t, "to-read", info.Shelf)
}

func TestMatchByTitleAndAuthor(t *testing.T) {
	entries := []Entry{
		{
			Title:          "Harry Potter and the Philosopher's Stone",
			Author:         "J.K. Rowling",
			ExclusiveShelf: "read",
			MyRating:       4,
		},
	}

	t.Run("exact normalized", func(t *testing.T) {
		info := Match("harry potter and the philosophers stone", "jk rowling", "", entries)
		require.NotNil(t, info)
		require.Equal(t, 4.0, info.MyRating)
	})

	t.Run("author substring", func(t *testing.T) {
		info := Match("Harry Potter and the Philosopher's Stone", "Rowling", "", entries)
		require.NotNil(t, info)
	})

	t.Run("title mismatch", func(t *testing.T) {
		info := Match("Harry Potter and the Chamber of Secrets", "J.K. Rowling", "", entries)
		require.Nil(t, info)
	})

	t.Run("author mismatch", func(t *testing.T) {
		info := Match("Harry Potter and the Philosopher's Stone", "Stephen King", "", entries)
		require.Nil(t, info)
	})
}

func TestMatchWithoutAnySignal(t *testing.T) {
	entries := []Entry{
		{Title: "Dune", Author: "Frank Herbert"},
	}

	require.Nil(t, Match("Neuromancer", "William Gibson", "", entries))
	require.Nil(t, Match("", "", "", entries))
}

func TestIdentifierBeatsTitleWithinEntry(t *testing.T) {
	// A retitled edition still matches on its identifier before the
	// later textual match is even considered.
	entries := []Entry{
		{Title: "Dune Messiah", Author: "Frank Herbert", ISBN13: "9780441172696", ExclusiveShelf: "read"},
		{Title: "Dune", Author: "Frank Herbert", ExclusiveShelf: "to-read"},
	}

	info := Match("Dune", "Frank Herbert", "9780441172696", entries)
	require.NotNil(t, info)
	require.Equal(t, "read", info.Shelf)
}

func TestMatchEmptyList(t *testing.T) {
	require.Nil(t, Match("Dune", "Frank Herbert", "9780441172719", nil))
}
