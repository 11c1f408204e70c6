package main

import (
	"os"

	"github.com/llehouerou/plconv/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
