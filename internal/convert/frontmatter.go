package convert

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Title   string
	Summary string
}

// writeFrontMatter writes a YAML header block with double-quoted values.
// Nothing is written when both fields are empty.
func writeFrontMatter(w io.Writer, fm frontMatter) error {
	if fm.Title == "" && fm.Summary == "" {
		return nil
	}
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key, value string) {
		if value == "" {
			return
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: oneLine(value)},
		)
	}
	add("title", fm.Title)
	add("summary", fm.Summary)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("front matter: %w", err)
	}
	_, err = fmt.Fprintf(w, "---\n%s---\n\n", data)
	return err
}

// enhance asks the enhancer for a title (unless one was given) and a
// summary. Failures are logged and leave the field empty.
func enhance(ctx context.Context, cfg Config, text string, log logrus.FieldLogger) frontMatter {
	fm := frontMatter{Title: cfg.Title}
	if strings.TrimSpace(text) == "" {
		return fm
	}
	if fm.Title == "" {
		t, err := cfg.Enhancer.Title(ctx, text)
		if err != nil {
			log.WithError(err).Warn("could not generate a title")
		}
		fm.Title = strings.TrimSpace(t)
	}
	n := cfg.SummaryWords
	if n <= 0 {
		n = DefaultSummaryWords
	}
	s, err := cfg.Enhancer.Summarize(ctx, text, n)
	if err != nil {
		log.WithError(err).Warn("could not generate a summary")
	}
	fm.Summary = strings.TrimSpace(s)
	return fm
}

// oneLine joins the lines of s with single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
