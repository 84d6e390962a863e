package director

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/source"
)

// ReadPages extracts every page of src using up to workers goroutines.
// A page that fails to extract is logged and imported empty.
func ReadPages(ctx context.Context, src source.Source, workers int, log *slog.Logger) ([]source.Page, error) {
	pageCount := src.PageCount()
	if pageCount == 0 {
		return nil, fmt.Errorf("source has no pages")
	}

	if workers < 1 {
		workers = 1
	}
	if workers > pageCount {
		workers = pageCount
	}

	pages := make([]source.Page, pageCount)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < pageCount; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			page, err := src.Page(i)
			if err != nil {
				log.Warn("page extraction failed", "page", i+1, "error", err)
				page = source.Page{Index: i}
			}
			pages[i] = page
			log.Debug("page ready", "page", i+1, "of", pageCount)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// Import reads every page of src and builds a starter deck from them
func (d *Director) Import(ctx context.Context, src source.Source, title string, workers int, slideDuration float64, log *slog.Logger) (*deck.Deck, error) {
	pages, err := ReadPages(ctx, src, workers, log)
	if err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}

	out := d.GenerateDeck(title, pages, slideDuration)
	log.Info("deck generated", "title", title, "slides", len(out.Slides))
	return out, nil
}
