// Command cborcat is a small inspection tool for the CBOR subset rcbor
// produces: it encodes sample fixtures, decodes hex-encoded input back
// into Go values, and walks an arbitrary encoded item printing its
// structure without needing to know the schema in advance.
package main

import (
	"os"

	"github.com/argon-chat/rcbor/cmd/cborcat/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
