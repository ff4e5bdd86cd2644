package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// GoogleBooksAPIKey is the API key for the Google Books volumes API
	GoogleBooksAPIKey string
	// DatabaseURL is the Postgres connection string for the rating store
	DatabaseURL string
	// AmazonAffiliateTag is appended to generated Amazon purchase links
	AmazonAffiliateTag string
	// CacheDBFile is the path to the SQLite cache database
	CacheDBFile string
	// ReadingListDBFile is the path to the SQLite reading list database
	ReadingListDBFile string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("readinglist.dbfile", "./readinglist.db")

	// Get values from viper
	GoogleBooksAPIKey = viper.GetString("GoogleBooksAPIKey")
	DatabaseURL = viper.GetString("DatabaseURL")
	AmazonAffiliateTag = viper.GetString("AmazonAffiliateTag")
	CacheDBFile = viper.GetString("cache.dbfile")
	ReadingListDBFile = viper.GetString("readinglist.dbfile")
}

// SetCacheDBFile sets the cache database path
func SetCacheDBFile(path string) {
	CacheDBFile = path
}

// SetAmazonAffiliateTag sets the Amazon affiliate tag
func SetAmazonAffiliateTag(tag string) {
	AmazonAffiliateTag = tag
}
