package resolver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lepinkainen/shelfscan/internal/isbn"
)

// goodreadsURL builds a deterministic Goodreads link: a direct
// identifier-based URL when one is known, otherwise a text search.
func goodreadsURL(id isbn.Identifier, title, author string) string {
	if id != "" {
		return "https://www.goodreads.com/book/isbn/" + string(id)
	}

	q := url.QueryEscape(strings.TrimSpace(title + " " + author))
	return "https://www.goodreads.com/search?q=" + q
}

// amazonURL builds a deterministic Amazon link. Product pages need the
// 10-digit identifier form; when none is obtainable the link falls back
// to a marketplace search. The affiliate tag is always appended.
func amazonURL(id isbn.Identifier, title, author, affiliateTag string) string {
	if asin, ok := tenDigitForm(id); ok {
		return fmt.Sprintf("https://www.amazon.com/dp/%s?tag=%s", asin, url.QueryEscape(affiliateTag))
	}

	terms := strings.TrimSpace(title + " " + author)
	if id != "" {
		terms = strings.TrimSpace(terms + " " + string(id))
	}

	return fmt.Sprintf("https://www.amazon.com/s?k=%s&tag=%s",
		url.QueryEscape(terms), url.QueryEscape(affiliateTag))
}

func tenDigitForm(id isbn.Identifier) (isbn.Identifier, bool) {
	switch len(id) {
	case 10:
		return id, true
	case 13:
		converted, err := isbn.To10(id)
		if err != nil {
			return "", false
		}
		return converted, true
	default:
		return "", false
	}
}
