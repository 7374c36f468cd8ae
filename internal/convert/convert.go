// Package convert runs the whole pipeline: read positioned words, detect the
// strikethrough rules on each page raster, and write the reconstructed
// markup stream.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/thywilljoshua/redline/internal/extract"
	"github.com/thywilljoshua/redline/internal/markup"
	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/source"
	"github.com/thywilljoshua/redline/internal/strike"
	"github.com/thywilljoshua/redline/internal/verify"
	"github.com/thywilljoshua/redline/internal/words"
)

// pageScan is what strike detection produced for one page.
type pageScan struct {
	index   *strike.Index
	raster  *raster.Raster // kept only for the verification overlay
	missing bool
	struck  []words.Box
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	log := cfg.logger()
	var res Result
	if cfg.Output == nil {
		return res, errors.New("no output configured")
	}

	if cfg.Extract != nil {
		ws, err := extract.NewWorkspace(cfg.WorkDir)
		if err != nil {
			return res, err
		}
		if err := cfg.Extract.Run(ctx, cfg.Input, ws, log); err != nil {
			// the error names a log inside the work dir
			log.WithField("path", ws.Dir).Warn("Extraction failed, keeping work dir")
			return res, err
		}
		if cfg.KeepWorkDir {
			log.WithField("path", ws.Dir).Info("Keeping work dir")
		} else {
			defer ws.Remove()
		}
		cfg.Input, cfg.Format, cfg.Rasters = ws.CSV, source.FormatCSV, ws.Rasters
	}

	src, err := openSource(cfg, log)
	if err != nil {
		return res, err
	}
	ws, err := src.Words(ctx)
	if err != nil {
		return res, err
	}
	kept := words.Filter(ws, cfg.Ignore)
	res.Words, res.Ignored = len(kept), len(ws)-len(kept)

	pages, err := words.GroupByPage(kept)
	if err != nil {
		return res, err
	}
	res.Pages = len(pages)
	log.WithFields(logrus.Fields{"words": res.Words, "pages": res.Pages}).Info("Read content")

	log.Info("Getting strikethrough data")
	scans, err := scanPages(ctx, cfg, pages, log)
	if err != nil {
		return res, err
	}
	for _, s := range scans {
		res.Segments += s.index.Len()
		if s.missing {
			res.MissingRasters++
		}
	}

	// With an enhancer the front matter depends on the finished text, so
	// the body is held back until it is known.
	var body bytes.Buffer
	out := cfg.Output
	if cfg.Enhancer != nil {
		out = &body
	} else if cfg.Title != "" {
		if err := writeFrontMatter(cfg.Output, frontMatter{Title: cfg.Title}); err != nil {
			return res, err
		}
	}

	doc := markup.NewDocument(out, &markup.Reconstructor{HeaderThreshold: cfg.HeaderThreshold})
	for i, pw := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		page := i + 1
		plog := log.WithField("page", page)
		plog.Infof("Processing page %d/%d", page, len(pages))

		rec := &recorder{index: scans[i].index}
		err := doc.WritePage(page, pw, rec)
		if errors.Is(err, markup.ErrEmptyPage) {
			res.EmptyPages++
			plog.Warn("page has no words, skipping")
			continue
		}
		if err != nil {
			return res, fmt.Errorf("page %d: %w", page, err)
		}
		scans[i].struck = rec.struck
		res.Struck += len(rec.struck)
	}

	if cfg.Enhancer != nil {
		fm := enhance(ctx, cfg, body.String(), log)
		if err := writeFrontMatter(cfg.Output, fm); err != nil {
			return res, err
		}
		if _, err := body.WriteTo(cfg.Output); err != nil {
			return res, err
		}
	}

	if cfg.VerifyPath != "" {
		if err := writeVerify(cfg.VerifyPath, scans); err != nil {
			return res, err
		}
		res.Verify = cfg.VerifyPath
		log.WithField("path", cfg.VerifyPath).Info("Wrote verification overlay")
	}
	return res, nil
}

func openSource(cfg Config, log logrus.FieldLogger) (source.Source, error) {
	if cfg.Source != nil {
		return cfg.Source, nil
	}
	format := cfg.Format
	if format == "" {
		f, err := source.DetectFormat(cfg.Input)
		if err != nil {
			return nil, err
		}
		format = f
	}
	log.WithFields(logrus.Fields{"source": format, "path": cfg.Input}).Info("Reading in content")
	return source.New(format, cfg.Input, source.Options{
		Scale:     cfg.Scale,
		Rasters:   cfg.Rasters,
		Languages: cfg.Languages,
	})
}

// scanPages builds the strike index of every page with words, cfg.Workers at
// a time. A raster that cannot be loaded leaves its page without strike data.
func scanPages(ctx context.Context, cfg Config, pages [][]words.Word, log logrus.FieldLogger) ([]pageScan, error) {
	scans := make([]pageScan, len(pages))
	det := strike.Detector{Masks: cfg.Masks, Threshold: cfg.DarkThreshold}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for i := range pages {
		if len(pages[i]) == 0 {
			continue
		}
		page := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := cfg.Rasters.Load(page)
			if err != nil {
				var de *raster.DecodeError
				if !errors.As(err, &de) {
					return err
				}
				log.WithError(err).WithField("page", page).Warn("no strike data for page")
				scans[i].missing = true
				return nil
			}
			if cfg.VerifyPath != "" {
				// the overlay shows the page before masking
				scans[i].raster = r.Clone()
			}
			segs := det.Detect(r)
			scans[i].index = strike.NewIndex(segs)
			log.WithFields(logrus.Fields{"page": page, "segments": len(segs)}).Debug("strike data ready")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scans, nil
}

// recorder answers strike queries from a page index and keeps the boxes it
// reported as struck.
type recorder struct {
	index  *strike.Index
	struck []words.Box
}

func (r *recorder) Struck(box words.Box) bool {
	if !r.index.Struck(box) {
		return false
	}
	r.struck = append(r.struck, box)
	return true
}

func writeVerify(path string, scans []pageScan) error {
	var pages []verify.Page
	for _, s := range scans {
		if s.raster == nil {
			continue
		}
		pages = append(pages, verify.Page{Raster: s.raster, Segments: s.index.Segments(), Struck: s.struck})
	}
	if len(pages) == 0 {
		return errors.New("verification overlay: no page rasters were loaded")
	}
	return verify.WriteFile(path, pages)
}
