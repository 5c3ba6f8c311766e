// Idiomatic entrypoint for the Cobra CLI; actual command wiring lives in
// cmd/root.go.

package main

import (
	"github.com/pageflight/pageflight/cmd"
)

func main() {
	cmd.Execute()
}
