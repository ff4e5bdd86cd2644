// Package readinglist matches resolved books against a user's reading
// list and provides the SQLite-backed list store.
package readinglist

import (
	"regexp"
	"strings"
)

// Entry is one reading-list row. The engine only ever reads entries;
// list maintenance happens elsewhere.
type Entry struct {
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	ISBN           string  `json:"isbn"`
	ISBN13         string  `json:"isbn13"`
	ExclusiveShelf string  `json:"exclusive_shelf"`
	MyRating       float64 `json:"my_rating"`
	DateRead       string  `json:"date_read"`
	DateAdded      string  `json:"date_added"`
}

// MatchInfo carries the shelf and personal-rating metadata of a matched
// reading-list entry.
type MatchInfo struct {
	Shelf     string  `json:"shelf"`
	MyRating  float64 `json:"my_rating"`
	DateRead  string  `json:"date_read,omitempty"`
	DateAdded string  `json:"date_added,omitempty"`
}

var (
	nonDigits  = regexp.MustCompile(`\D`)
	nonWordish = regexp.MustCompile(`[^\w\s]`)
)

// stripToDigits removes everything but digits, so "978-0306406157" and
// `="0306406152"` style export artifacts compare equal.
func stripToDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// normalize lower-cases, trims, and strips punctuation for title/author
// comparison.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return nonWordish.ReplaceAllString(s, "")
}

// Match finds the first reading-list entry matching the given book
// identity. Identifier equality wins over any textual comparison: an
// entry whose ISBN matches is a match even when the title differs.
// Returns nil when no entry matches.
//
// The scan is linear; lists are user-library sized, so no index is kept.
func Match(title, author, bookISBN string, entries []Entry) *MatchInfo {
	bookDigits := stripToDigits(bookISBN)
	normTitle := normalize(title)
	normAuthor := normalize(author)

	for i := range entries {
		entry := &entries[i]

		if bookDigits != "" {
			if stripToDigits(entry.ISBN) == bookDigits || stripToDigits(entry.ISBN13) == bookDigits {
				return infoFor(entry)
			}
		}

		if normTitle == "" || normalize(entry.Title) != normTitle {
			continue
		}

		entryAuthor := normalize(entry.Author)
		if authorsMatch(normAuthor, entryAuthor) {
			return infoFor(entry)
		}
	}

	return nil
}

// authorsMatch accepts exact equality or either name containing the
// other, which covers "J.K. Rowling" against "Rowling".
func authorsMatch(a, b string) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func infoFor(entry *Entry) *MatchInfo {
	return &MatchInfo{
		Shelf:     entry.ExclusiveShelf,
		MyRating:  entry.MyRating,
		DateRead:  entry.DateRead,
		DateAdded: entry.DateAdded,
	}
}
