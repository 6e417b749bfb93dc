package main

import (
	"errors"
	"os"

	"github.com/cppx-tools/cppxgen/internal/console"
	"github.com/cppx-tools/cppxgen/internal/gen"
	"github.com/cppx-tools/cppxgen/internal/lexer"
	"github.com/cppx-tools/cppxgen/internal/scanner"
)

const version = "1.0.0"

func banner() {
	console.Outf("cppxgen v%s\n", version)
	console.Outf("Converts extended C++ files (.cppx) to standard C++ files (.h and .cpp)\n")
	console.Outf("Usage:\n  cppxgen [directory]\n\n")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	banner()

	// Extra arguments are ignored, only the first one counts.
	baseDir := "./"
	if len(args) > 0 {
		baseDir = args[0]
	}

	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		console.Errorf("Could not access directory: %s\n", baseDir)
		return 1
	}
	console.Outf("Processing directory: %s\n", baseDir)

	files, err := scanner.Files(baseDir)
	if err != nil {
		console.Errorf("Could not read directory %s: %v\n", baseDir, err)
		return 1
	}
	if len(files) == 0 {
		console.Warnf("No extend C++ files (%s) found in '%s' or in its subdirectories\n", scanner.Ext, baseDir)
		return 0
	}

	console.Outf("Found %d files to process:\n", len(files))
	for _, f := range files {
		if f.Size < 0 {
			console.Outf("  %s\n", f.Path)
			continue
		}
		console.Outf("  %s (%d bytes)\n", f.Path, f.Size)
	}

	for _, f := range files {
		if f.Size == 0 {
			console.Warnf("File is empty: %s\n", f.Path)
		}
		if err := gen.GenerateFile(f.Path); err != nil {
			var lexErr *lexer.Error
			if errors.As(err, &lexErr) {
				console.Errorf("Error at %s (line %d): %v\n", f.Path, lexErr.Line, lexErr)
			} else {
				console.Errorf("Error at %s: %v\n", f.Path, err)
			}
		}
	}
	return 0
}
