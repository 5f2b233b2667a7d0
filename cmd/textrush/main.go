// textrush extracts and replaces dictionary keywords in text.
package main

import (
	"os"

	"github.com/cognicore/textrush/cmd/textrush/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
