package convert

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/redline/internal/ai"
	"github.com/thywilljoshua/redline/internal/extract"
	"github.com/thywilljoshua/redline/internal/markup"
	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/source"
	"github.com/thywilljoshua/redline/internal/strike"
	"github.com/thywilljoshua/redline/internal/words"
)

// DefaultScale maps textricator's PDF points onto rasters rendered at 2x.
const DefaultScale = 2.0

// DefaultSummaryWords bounds the generated summary.
const DefaultSummaryWords = 25

type Result struct {
	Pages          int    `json:"pages"`
	Words          int    `json:"words"`
	Ignored        int    `json:"ignored_words"`
	Struck         int    `json:"struck_words"`
	Segments       int    `json:"segments"`
	EmptyPages     int    `json:"empty_pages"`
	MissingRasters int    `json:"missing_rasters"`
	Verify         string `json:"verify,omitempty"`
}

type Config struct {
	// Input is the word file handed to the source named by Format. An empty
	// Format is detected from the extension. Source, when set, replaces both.
	Input     string
	Format    source.Format
	Source    source.Source
	Scale     float64
	Languages []string

	// Extract, when set, treats Input as a PDF and runs the external
	// extraction tools into a work dir under WorkDir first.
	Extract     *extract.Tools
	WorkDir     string
	KeepWorkDir bool

	Rasters         raster.Locator
	Masks           []raster.Region
	DarkThreshold   uint8
	HeaderThreshold float64
	Ignore          []words.Box
	Workers         int

	Output     io.Writer
	VerifyPath string

	// Title is written as front matter. With an Enhancer the title is
	// proposed by the model when empty and a summary is added.
	Title        string
	Enhancer     ai.Enhancer
	SummaryWords int

	Logger logrus.FieldLogger
}

// DefaultConfig returns the settings tuned for legislative bill pages.
func DefaultConfig() Config {
	return Config{
		Scale:           DefaultScale,
		Rasters:         raster.Locator{Pattern: raster.DefaultPattern},
		Masks:           raster.DefaultMasks(),
		DarkThreshold:   strike.DefaultDarkThreshold,
		HeaderThreshold: markup.DefaultHeaderThreshold,
		Ignore:          words.DefaultIgnore(),
		Workers:         runtime.NumCPU(),
		SummaryWords:    DefaultSummaryWords,
	}
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
