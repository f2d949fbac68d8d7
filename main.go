package main

import (
	"os"

	"github.com/adalundhe/spawnjoin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
