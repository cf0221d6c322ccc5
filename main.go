package main

import (
	"fmt"
	"os"

	"github.com/peakfindr/peakfindr/internal/bootstrap"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// main is the desktop entry used by fyne package; cmd/peakfindr adds the
// terminal front-end and flags.
func main() {
	fmt.Printf("Peakfindr v%s starting...\n", version)

	if err := bootstrap.RunGUI(bootstrap.Options{}, version); err != nil {
		fmt.Fprintf(os.Stderr, "peakfindr: %v\n", err)
		os.Exit(1)
	}
}
