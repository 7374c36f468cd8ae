package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// DefaultModel is used when NewGemini is given no model name.
const DefaultModel = "gemini-2.5-flash"

// maxPromptRunes bounds how much of a document is sent to the model.
const maxPromptRunes = 60000

const markupPreamble = "The following document uses Markdown-style markers: **bold**, _italic_, " +
	"# headers, and ~~struck~~ for text that was crossed out (deleted) in the source. " +
	"Treat struck text as removed and describe the document as amended.\n\n"

type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini connects with apiKey, normally read from GOOGLE_API_KEY.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model}, nil
}

func (g *Gemini) prompt(ctx context.Context, text string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	return res.Text(), nil
}

func (g *Gemini) Summarize(ctx context.Context, text string, maxWords int) (string, error) {
	if g.client == nil {
		return "", nil
	}
	if maxWords <= 0 {
		maxWords = 25
	}
	prompt := fmt.Sprintf("%sSummarize in one sentence (max %d words). Return only the sentence, no code fences.\n\n%s",
		markupPreamble, maxWords, truncate(text, maxPromptRunes))
	out, err := g.prompt(ctx, prompt)
	if err != nil {
		return "", err
	}
	return singleLine(stripCodeFences(out)), nil
}

func (g *Gemini) Title(ctx context.Context, text string) (string, error) {
	if g.client == nil {
		return "", nil
	}
	prompt := markupPreamble + "Propose a title of at most 8 words for this document. Return only the title, no quotes, no code fences.\n\n" +
		truncate(text, maxPromptRunes)
	out, err := g.prompt(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.Trim(singleLine(stripCodeFences(out)), `"'`), nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	// opening fence, possibly with a language tag
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// singleLine joins the model's answer onto one line so it can be written as a
// front matter scalar.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
