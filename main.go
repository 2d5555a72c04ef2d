package main

import (
	"fmt"
	"os"

	"vigo/editor"
)

func main() {
	args := os.Args[1:]

	ed := editor.NewEditor()
	if err := ed.EnableRawMode(); err != nil {
		// raw mode never installed, nothing to restore or repaint
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer ed.RestoreTerminal()

	if err := ed.Init(); err != nil {
		ed.Die("%v", err)
	}
	if len(args) >= 1 {
		if err := ed.Open(args[0]); err != nil {
			ed.Die("%v", err)
		}
	}

	if err := ed.Run(); err != nil {
		ed.Die("%v", err)
	}
}
