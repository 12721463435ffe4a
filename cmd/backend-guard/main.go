package main

import (
	"os"

	"github.com/lumosapi/backend-guard/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
