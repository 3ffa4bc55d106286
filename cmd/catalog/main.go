package main

import (
	"github.com/mytheresa/catalog-api/cmd/catalog/commands"
)

var (
	version = "dev" // will be set during build
)

func main() {
	commands.Version = version
	commands.Execute()
}
