package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoodreadsURL(t *testing.T) {
	t.Run("direct link with identifier", func(t *testing.T) {
		require.Equal(t,
			"https://www.goodreads.com/book/isbn/9780441172719",
			goodreadsURL("9780441172719", "Dune", "Frank Herbert"))
	})

	t.Run("search link without identifier", func(t *testing.T) {
		require.Equal(t,
			"https://www.goodreads.com/search?q=Dune+Frank+Herbert",
			goodreadsURL("", "Dune", "Frank Herbert"))
	})
}

func TestAmazonURL(t *testing.T) {
	t.Run("product link from ISBN-10", func(t *testing.T) {
		require.Equal(t,
			"https://www.amazon.com/dp/0306406152?tag=shelfscan-20",
			amazonURL("0306406152", "Dune", "Frank Herbert", "shelfscan-20"))
	})

	t.Run("product link converts ISBN-13", func(t *testing.T) {
		require.Equal(t,
			"https://www.amazon.com/dp/0306406152?tag=shelfscan-20",
			amazonURL("9780306406157", "Dune", "Frank Herbert", "shelfscan-20"))
	})

	t.Run("search with identifier when no 10-digit form exists", func(t *testing.T) {
		got := amazonURL("9791234567896", "Dune", "Frank Herbert", "shelfscan-20")
		require.Equal(t,
			"https://www.amazon.com/s?k=Dune+Frank+Herbert+9791234567896&tag=shelfscan-20",
			got)
	})

	t.Run("search without any identifier", func(t *testing.T) {
		require.Equal(t,
			"https://www.amazon.com/s?k=Dune+Frank+Herbert&tag=shelfscan-20",
			amazonURL("", "Dune", "Frank Herbert", "shelfscan-20"))
	})
}
