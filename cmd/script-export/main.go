// cmd/script-export/main.go
//
// Entry point for the script exporter.
//
//	script-export <script.json|script.yaml> <output-dir>
//
// Flow:
// 1. Load the script document (any failure aborts before output is touched)
// 2. Render every artifact in memory
// 3. Create the output directory and write the artifacts
// 4. Print a summary of what was written

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdgeek/murder-mystery-generator/internal/artifact"
	"github.com/gdgeek/murder-mystery-generator/internal/config"
	"github.com/gdgeek/murder-mystery-generator/internal/logging"
	"github.com/gdgeek/murder-mystery-generator/internal/render"
	"github.com/gdgeek/murder-mystery-generator/internal/report"
	"github.com/gdgeek/murder-mystery-generator/internal/script"
)

const usage = "usage: script-export <script.json|script.yaml> <output-dir>"

var errUsage = errors.New(usage)

func main() {
	log := logging.New(os.Stderr)
	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, log *logging.Logger) error {
	if len(args) != 2 {
		return errUsage
	}
	inputPath, outputDir := args[0], args[1]

	doc, err := script.Load(inputPath)
	if err != nil {
		return err
	}
	log.Info("loaded %s (%d players)", inputPath, len(doc.PlayerHandbooks()))
	switch ph := doc.Root().Get("playerHandbooks"); {
	case !ph.Present():
		log.Warn("%s declares no player handbooks", inputPath)
	case ph.Kind() != script.KindSequence:
		log.Warn("playerHandbooks is a %s, treating it as a single handbook", ph.Kind())
	}

	arts := render.New(config.Default()).Render(doc)

	store := artifact.NewStore(outputDir)
	results, err := store.WriteAll(arts)
	if err != nil {
		return fmt.Errorf("export to %s: %w", outputDir, err)
	}
	fmt.Fprintln(stdout, report.Summary(store.Dir(), results))
	return nil
}
