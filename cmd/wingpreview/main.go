// Package main shows the generated wing in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/seraph/internal/feather"
	"github.com/Faultbox/seraph/internal/logger"
	"github.com/Faultbox/seraph/internal/preview"
	"github.com/Faultbox/seraph/internal/wing"
)

func main() {
	seed := flag.Uint64("seed", 1, "feather placement seed")
	count := flag.Int("feathers", feather.DefaultCount, "feathers per layer")
	literal := flag.Bool("literal", false, "use the literal loft blend")
	outline := flag.Bool("outline", true, "draw the curve outline")
	logFile := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	// The terminal belongs to tcell, so logs only go to a file.
	if *logFile != "" {
		cfg := logger.DefaultFileConfig(*logFile)
		if err := logger.InitWithFileConfig("debug", cfg, false); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	opts := preview.Options{
		Seed:             *seed,
		FeathersPerLayer: *count,
		Outline:          *outline,
	}
	if *literal {
		opts.Mode = wing.Literal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	preview.Run(screen, preview.New(opts))
}
