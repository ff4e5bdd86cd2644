package main

import (
	"github.com/lepinkainen/shelfscan/cmd"

	_ "github.com/joho/godotenv/autoload"
)

var execute = cmd.Execute

func main() {
	execute()
}
