// plugboard CLI - command-line interface for the plugboard engine
package main

import (
	"github.com/plugboard/plugboard/pkg/cli"
)

func main() {
	cli.Execute()
}
