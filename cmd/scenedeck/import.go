package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/scenedeck/internal/config"
	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/director"
	"github.com/ivlev/scenedeck/internal/source"
	"github.com/ivlev/scenedeck/internal/system"
)

const inputDir = "input"

func runImport(args []string) error {
	c := newCLI("import")
	def := config.Default()
	var inputPath, outputPath, title string
	c.fs.StringVar(&inputPath, "input", "", "PDF or image folder (default: newest PDF in input/)")
	c.fs.StringVar(&outputPath, "output", "", "Deck file to write (default: timestamped file in -deck-dir)")
	c.fs.StringVar(&title, "title", "", "Deck title (default: input file name)")
	c.fs.IntVar(&c.flags.Workers, "workers", def.Workers, "Parallel page readers")
	c.fs.Float64Var(&c.flags.SlideDuration, "slide-duration", def.SlideDuration, "Target seconds per slide, spread across its items")

	cfg, err := c.parse(args)
	if err != nil {
		return err
	}

	logger := c.logger(cfg)
	defer logger.Close()
	logger.Info("scenedeck starting", "version", cfg.BuildVersion, "command", "import")

	if inputPath == "" {
		latest, err := system.FindLatestFile(inputDir, ".pdf")
		if err != nil {
			return fmt.Errorf("%w (pass -input or put a PDF into %s/)", err, inputDir)
		}
		inputPath = latest
		fmt.Printf("[*] Selected file: %s\n", inputPath)
	}

	var src source.Source
	if strings.HasSuffix(strings.ToLower(inputPath), ".pdf") {
		src, err = source.NewFitzPDFSource(inputPath)
	} else {
		src, err = source.NewImageSource(inputPath)
	}
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	if title == "" {
		base := filepath.Base(inputPath)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("[*] Reading %d pages with %d workers...\n", src.PageCount(), cfg.Workers)
	d, err := director.NewDirector().Import(ctx, src, title, cfg.Workers, cfg.SlideDuration, logger.Logger)
	if err != nil {
		return err
	}

	if outputPath == "" {
		if err := system.EnsureDir(cfg.DeckDir); err != nil {
			return err
		}
		outputPath = system.GenerateDeckPath(cfg.DeckDir, time.Now())
	}
	if err := deck.Write(d, outputPath); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}

	fmt.Printf("[+] Deck saved: %s (%d slides)\n", outputPath, len(d.Slides))
	return nil
}
