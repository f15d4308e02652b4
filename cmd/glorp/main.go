// Command glorp is the CLI entry point for the glorp interpreter.
package main

import (
	"os"

	"github.com/glorp-lang/glorp/cmd/glorp/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
