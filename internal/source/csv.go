package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/thywilljoshua/redline/internal/words"
)

// csvColumns are the textricator "text" columns reconstruction needs.
// Any other column (width, height, fontColor, ...) is ignored.
var csvColumns = []string{"page", "ulx", "uly", "lrx", "lry", "content", "font", "fontSize"}

// CSVSource reads the per-word CSV written by `textricator text`.
type CSVSource struct {
	Path  string
	Scale float64
}

// Words implements Source.
func (s *CSVSource) Words(ctx context.Context) ([]words.Word, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := ReadCSV(f, s.Scale)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return ws, nil
}

// ReadCSV parses textricator rows. Rows keep their file order, which is
// already reading order. Box coordinates are multiplied by scale.
func ReadCSV(r io.Reader, scale float64) ([]words.Word, error) {
	scale = scaleOrOne(scale)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range csvColumns {
		if _, ok := cols[name]; !ok {
			return nil, &words.MalformedWordError{Index: -1, Field: name, Reason: "column missing from header"}
		}
	}

	var out []words.Word
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		w, err := parseRow(rec, cols, row, scale)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func parseRow(rec []string, cols map[string]int, row int, scale float64) (words.Word, error) {
	var w words.Word
	cell := func(name string) (string, bool) {
		i := cols[name]
		if i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}
	bad := func(field, reason string) error {
		return &words.MalformedWordError{Page: w.Page, Index: row, Field: field, Reason: reason}
	}
	number := func(name string) (float64, error) {
		v, ok := cell(name)
		if !ok || strings.TrimSpace(v) == "" {
			return 0, bad(name, "missing")
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, bad(name, fmt.Sprintf("not a number: %q", v))
		}
		return f, nil
	}

	page, err := number("page")
	if err != nil {
		return w, err
	}
	if page != math.Trunc(page) || page < 1 || page > words.MaxPage {
		return w, bad("page", fmt.Sprintf("not a page number: %v", page))
	}
	w.Page = int(page)

	var box [4]float64
	for i, name := range []string{"ulx", "uly", "lrx", "lry"} {
		if box[i], err = number(name); err != nil {
			return w, err
		}
	}
	w.Box = words.Box{X1: box[0], Y1: box[1], X2: box[2], Y2: box[3]}.Scale(scale)

	if w.FontSize, err = number("fontSize"); err != nil {
		return w, err
	}
	var ok bool
	if w.Text, ok = cell("content"); !ok {
		return w, bad("content", "missing")
	}
	if w.Font, ok = cell("font"); !ok {
		return w, bad("font", "missing")
	}
	w.Bold, w.Italic = words.Classify(w.Font)

	if err := words.Validate(w, row); err != nil {
		return w, err
	}
	return w, nil
}
