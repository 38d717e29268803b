// contentlint - Content validation for habit tracker content
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/contentlint

package main

import (
	"os"

	"github.com/ariel-frischer/contentlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
