// Package cmd wires the shelfscan command line interface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/lepinkainen/shelfscan/internal/config"
	"github.com/spf13/viper"
)

var (
	resolveOne  = runResolve
	resolveMany = runBatch
	importList  = runReadingListAdd
	clearCache  = runCacheClear
)

// CLI represents the complete command structure for the shelfscan application
type CLI struct {
	// Global flags
	CacheDBFile       string `help:"Path to cache SQLite database file" default:"./cache.db"`
	ReadingListDBFile string `help:"Path to reading list SQLite database file" default:"./readinglist.db"`
	AffiliateTag      string `help:"Amazon affiliate tag appended to purchase links"`

	Resolve     ResolveCmd     `cmd:"" help:"Resolve a single book by title and author"`
	Batch       BatchCmd       `cmd:"" help:"Resolve a JSON file of book candidates and rank the results"`
	ReadingList ReadingListCmd `cmd:"" name:"readinglist" help:"Manage stored reading lists"`
	Cache       CacheCmd       `cmd:"" help:"Manage the resolution cache"`
}

// ResolveCmd represents the resolve command
type ResolveCmd struct {
	Title  string `short:"t" help:"Book title" required:""`
	Author string `short:"a" help:"Book author"`
	User   string `short:"u" help:"Annotate the result against this user's reading list"`
}

// BatchCmd represents the batch command
type BatchCmd struct {
	Input string `short:"f" help:"Path to JSON file of candidates ([{\"title\":...,\"author\":...}])" required:""`
	User  string `short:"u" help:"Annotate results against this user's reading list"`
}

// ReadingListCmd represents the readinglist command and its subcommands
type ReadingListCmd struct {
	Add ReadingListAddCmd `cmd:"" help:"Import a Goodreads library export CSV into a user's reading list"`
}

// ReadingListAddCmd imports a Goodreads library export
type ReadingListAddCmd struct {
	Input string `short:"f" help:"Path to Goodreads library export CSV file" required:""`
	User  string `short:"u" help:"User the reading list belongs to" required:""`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Clear cached books and ratings"`
}

// CacheClearCmd clears the cache
type CacheClearCmd struct {
	All bool `help:"Clear everything, not just expired entries" default:"false"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("shelfscan"),
		kong.Description("Resolve book metadata and ratings from multiple sources."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("readinglist.dbfile", "./readinglist.db")

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	for key, env := range map[string]string{
		"GoogleBooksAPIKey":  "GOOGLE_BOOKS_API_KEY",
		"DatabaseURL":        "DATABASE_URL",
		"AmazonAffiliateTag": "AMAZON_AFFILIATE_TAG",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("readinglist.dbfile", cli.ReadingListDBFile)

	config.SetCacheDBFile(cli.CacheDBFile)
	config.ReadingListDBFile = cli.ReadingListDBFile
	if cli.AffiliateTag != "" {
		config.SetAmazonAffiliateTag(cli.AffiliateTag)
	}
}

// Run methods for each command

func (r *ResolveCmd) Run() error {
	return resolveOne(r.Title, r.Author, r.User)
}

func (b *BatchCmd) Run() error {
	return resolveMany(b.Input, b.User)
}

func (a *ReadingListAddCmd) Run() error {
	return importList(a.Input, a.User)
}

func (c *CacheClearCmd) Run() error {
	return clearCache(c.All)
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
