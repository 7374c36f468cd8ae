package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thywilljoshua/redline/internal/ai"
	"github.com/thywilljoshua/redline/internal/convert"
	"github.com/thywilljoshua/redline/internal/extract"
	"github.com/thywilljoshua/redline/internal/source"
)

type convertFlags struct {
	configPath    string
	format        string
	rasters       string
	rasterPattern string
	out           string
	scale         float64
	threshold     uint8
	headerSize    float64
	workers       int
	languages     []string
	noMasks       bool
	noIgnore      bool
	verify        string
	title         string
	aiProvider    string
	aiModel       string
	extract       bool
	workDir       string
	keepWorkDir   bool
}

func convertCmd(log *logrus.Logger) *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Reconstruct a document from positioned words and page rasters",
		Long: `Reads positioned words (textricator CSV, a PDF text layer, hOCR, or
Tesseract run on the rasters), finds the strikethrough rules on each page
raster and writes the text with **bold**, _italic_, ~~struck~~ and # header
markers.

With --extract the input is a PDF that is first run through pdf2htmlEX and
textricator, as the bill pipeline does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd.Flags(), args[0])
			if err != nil {
				return err
			}
			cfg.Logger = log

			if strings.EqualFold(f.aiProvider, "gemini") {
				g, err := ai.NewGemini(cmd.Context(), os.Getenv("GOOGLE_API_KEY"), f.aiModel)
				if err != nil {
					return err
				}
				cfg.Enhancer = g
			} else if f.aiProvider != "" && !strings.EqualFold(f.aiProvider, "off") {
				return fmt.Errorf("unknown AI provider %q", f.aiProvider)
			}

			// stdout carries the markup unless --out is given, so the
			// summary goes to stderr in that case
			report := cmd.OutOrStdout()
			var file *os.File
			if f.out == "" || f.out == "-" {
				cfg.Output = cmd.OutOrStdout()
				report = cmd.ErrOrStderr()
			} else {
				if file, err = os.Create(f.out); err != nil {
					return err
				}
				defer file.Close()
				cfg.Output = file
			}

			res, err := convert.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if file != nil {
				if err := file.Close(); err != nil {
					return err
				}
			}
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(report, string(b))
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func (f *convertFlags) register(fl *pflag.FlagSet) {
	fl.StringVar(&f.configPath, "config", "", "YAML file with pipeline settings")
	fl.StringVar(&f.format, "format", "", "input format: csv|pdf|hocr|ocr (default: by extension)")
	fl.StringVar(&f.rasters, "rasters", "", "directory holding the page rasters (default: current directory)")
	fl.StringVar(&f.rasterPattern, "raster-pattern", "", "printf pattern of raster file names (default bg%x.png)")
	fl.StringVarP(&f.out, "out", "o", "", "write markup to this file instead of stdout")
	fl.Float64Var(&f.scale, "scale", convert.DefaultScale, "multiplier from word coordinates to raster pixels")
	fl.Uint8Var(&f.threshold, "threshold", 0, "luma below which a pixel counts as ink (default 200)")
	fl.Float64Var(&f.headerSize, "header-threshold", 0, "font sizes above this become headers (default 12)")
	fl.IntVar(&f.workers, "workers", 0, "pages scanned for strikethroughs in parallel (default: CPU count)")
	fl.StringSliceVar(&f.languages, "lang", nil, "Tesseract languages for --format ocr")
	fl.BoolVar(&f.noMasks, "no-masks", false, "do not white out the seal and bottom edge before scanning")
	fl.BoolVar(&f.noIgnore, "no-ignore", false, "keep words in the page number and footer regions")
	fl.StringVar(&f.verify, "verify", "", "also write a PDF overlay of the detected rules to this file")
	fl.StringVar(&f.title, "title", "", "document title written as front matter")
	fl.StringVar(&f.aiProvider, "ai", "off", "AI provider for title and summary front matter: off|gemini")
	fl.StringVar(&f.aiModel, "ai-model", ai.DefaultModel, "model used with --ai gemini")
	fl.BoolVar(&f.extract, "extract", false, "input is a PDF: run pdf2htmlEX and textricator first")
	fl.StringVar(&f.workDir, "work-dir", "", "parent directory for --extract output (default: system temp)")
	fl.BoolVar(&f.keepWorkDir, "keep-work-dir", false, "keep the --extract output")
}

// config layers defaults, the YAML file and the flags that were set.
func (f convertFlags) config(flags *pflag.FlagSet, input string) (convert.Config, error) {
	cfg := convert.DefaultConfig()
	if f.configPath != "" {
		if err := convert.LoadConfig(f.configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.Input = input

	changed := flags.Changed
	if changed("format") {
		cfg.Format = source.Format(strings.ToLower(f.format))
	}
	if changed("rasters") {
		cfg.Rasters.Dir = f.rasters
	}
	if changed("raster-pattern") {
		cfg.Rasters.Pattern = f.rasterPattern
	}
	if changed("scale") {
		if f.scale <= 0 {
			return cfg, fmt.Errorf("--scale must be positive")
		}
		cfg.Scale = f.scale
	}
	if changed("threshold") {
		cfg.DarkThreshold = f.threshold
	}
	if changed("header-threshold") {
		cfg.HeaderThreshold = f.headerSize
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("lang") {
		cfg.Languages = f.languages
	}
	if f.noMasks {
		cfg.Masks = nil
	}
	if f.noIgnore {
		cfg.Ignore = nil
	}
	cfg.VerifyPath = f.verify
	cfg.Title = f.title
	if f.extract {
		cfg.Extract = &extract.Tools{}
		cfg.WorkDir = f.workDir
		cfg.KeepWorkDir = f.keepWorkDir
	}
	return cfg, nil
}
