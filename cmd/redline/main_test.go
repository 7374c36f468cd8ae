package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/redline/internal/convert"
	"github.com/thywilljoshua/redline/internal/raster"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	log, _ := test.NewNullLogger()
	root := rootCmd(log)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// writeRaster writes a 100x100 page with one rule on row 55.
func writeRaster(t *testing.T, path string) {
	t.Helper()
	r := raster.New(100, 100)
	for x := 48; x <= 85; x++ {
		r.Set(x, 55, 0)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, r.Image()))
	require.NoError(t, f.Close())
}

func TestLines(t *testing.T) {
	img := filepath.Join(t.TempDir(), "bg1.png")
	writeRaster(t, img)

	out, _, err := execute(t, "lines", "--no-masks", img)
	require.NoError(t, err)
	assert.Equal(t, img+": 1\n  (48, 55, 85, 55)\n", out)
}

func TestLinesMissingFile(t *testing.T) {
	_, _, err := execute(t, "lines", filepath.Join(t.TempDir(), "nope.png"))
	var de *raster.DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	writeRaster(t, filepath.Join(dir, "bg1.png"))
	input := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"page,ulx,uly,lrx,lry,content,font,fontSize\n"+
			"1,5,50,20,60,keep,Times,10\n"+
			"1,50,50,80,60,gone,Times,10\n"), 0o644))
	outFile := filepath.Join(dir, "bill.md")

	stdout, _, err := execute(t, "convert", input,
		"--rasters", dir, "--scale", "1", "--no-masks", "--no-ignore", "--out", outFile, "--title", "HB 1")
	require.NoError(t, err)

	var res convert.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 1, res.Struck)

	md, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: \"HB 1\"\n---\n\n   \nkeep ~~gone~~ \n", string(md))
}

func TestConvertStdoutReportsOnStderr(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"page,ulx,uly,lrx,lry,content,font,fontSize\n1,5,25,20,30,alone,Times,10\n"), 0o644))

	stdout, stderr, err := execute(t, "convert", input, "--rasters", dir, "--no-ignore")
	require.NoError(t, err)
	assert.Equal(t, "   \nalone \n", stdout)
	assert.Contains(t, stderr, `"missing_rasters": 1`)
}

func TestConvertRejectsUnknownProvider(t *testing.T) {
	_, _, err := execute(t, "convert", "words.csv", "--ai", "bard")
	assert.ErrorContains(t, err, "unknown AI provider")
}

func TestConvertConfigLayering(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "redline.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("scale: 3\nworkers: 2\nraster_dir: from-file\n"), 0o644))

	var f convertFlags
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--config", conf, "--workers", "5", "--no-masks"}))

	cfg, err := f.config(fs, "in.csv")
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Scale, "file beats default")
	assert.Equal(t, 5, cfg.Workers, "flag beats file")
	assert.Equal(t, "from-file", cfg.Rasters.Dir)
	assert.Equal(t, raster.DefaultPattern, cfg.Rasters.Pattern)
	assert.Nil(t, cfg.Masks)
	assert.NotEmpty(t, cfg.Ignore)
	assert.Equal(t, "in.csv", cfg.Input)
	assert.Nil(t, cfg.Extract)
}

func TestConvertFlagsRejectBadScale(t *testing.T) {
	var f convertFlags
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--scale", "0"}))
	_, err := f.config(fs, "in.csv")
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "lines", "x.png")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a valid logrus Level"))
}
