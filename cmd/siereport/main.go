package main

import (
	"os"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/commands"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
