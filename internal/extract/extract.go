// Package extract runs the external tools that turn a PDF into the inputs
// reconstruction needs: pdf2htmlEX for the page background rasters and
// textricator for the per-word CSV.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/redline/internal/raster"
)

// Tools names the binaries to run. Empty fields use the default names found
// on PATH.
type Tools struct {
	PDF2HTMLEX  string
	Textricator string
}

// Workspace is a directory holding one extracted PDF.
type Workspace struct {
	Dir     string
	CSV     string
	Rasters raster.Locator
}

// NewWorkspace creates a timestamped directory under parent (the system temp
// dir when parent is empty).
func NewWorkspace(parent string) (Workspace, error) {
	dir, err := os.MkdirTemp(parent, time.Now().Format("2006-01-02-150405_"))
	if err != nil {
		return Workspace{}, err
	}
	return Workspace{
		Dir:     dir,
		CSV:     filepath.Join(dir, "contents.csv"),
		Rasters: raster.Locator{Dir: dir, Pattern: raster.DefaultPattern},
	}, nil
}

// Remove deletes the workspace directory.
func (w Workspace) Remove() error { return os.RemoveAll(w.Dir) }

// Run extracts pdfPath into ws. Each tool's output goes to <tool>.log and
// <tool>.err inside the workspace.
func (t Tools) Run(ctx context.Context, pdfPath string, ws Workspace, log logrus.FieldLogger) error {
	pdf2html := or(t.PDF2HTMLEX, "pdf2htmlEX")
	textricator := or(t.Textricator, "textricator")

	log.WithField("path", ws.Dir).Info("Extracting images with pdf2htmlEX")
	if err := run(ctx, ws.Dir, "pdf2htmlEX", pdf2html,
		"--dest-dir", ws.Dir, "--embed-image", "0", pdfPath); err != nil {
		return err
	}

	log.WithField("path", ws.CSV).Info("Extracting text with textricator")
	return run(ctx, ws.Dir, "textricator", textricator,
		"text", "--input-format=pdf.pdfbox", pdfPath, ws.CSV)
}

func run(ctx context.Context, dir, name, bin string, args ...string) error {
	stdout, err := os.Create(filepath.Join(dir, name+".log"))
	if err != nil {
		return err
	}
	defer stdout.Close()
	stderr, err := os.Create(filepath.Join(dir, name+".err"))
	if err != nil {
		return err
	}
	defer stderr.Close()

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed (see %s): %w", name, stderr.Name(), err)
	}
	return nil
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
