package main

import (
	"os"

	"github.com/finconsgroup/zooadmin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
