// Command fizzpipe writes the FizzBuzz sequence to standard output at
// maximum sustainable throughput until it is terminated or its reader
// goes away.
//
// Usage:
//
//	fizzpipe [--quiet]
//	fizzpipe version
package main

import (
	"fizzpipe/cmd/fizzpipe/commands"
	"fizzpipe/internal/appshell"
)

func main() {
	appshell.Main(commands.Run)
}
