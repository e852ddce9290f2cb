// Package caption generates social captions for rendered content. Caption
// generation is strictly best-effort: the orchestrator falls back to the
// source text whenever a generator fails, so an outage here never blocks a
// render result.
package caption

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Request carries the source text plus listing context for one caption.
type Request struct {
	// SourceText is the scraped text the caption is derived from and the
	// fallback caption when generation fails.
	SourceText string
	// Kind names the content flow: property, tip or review.
	Kind string
	// Locale is the requester's resolved locale; captions should be written
	// in that language.
	Locale string
	// Context holds named listing facts (headline, address, price...).
	Context map[string]string
}

// Generator produces a caption for a Request.
type Generator interface {
	Caption(ctx context.Context, req Request) (string, error)
}

// Fallback is the caption used when every generator fails: the source text,
// unchanged.
func Fallback(req Request) string {
	return req.SourceText
}

// StaticGenerator produces a deterministic templated caption without calling
// any external service. Used when no API key is configured.
type StaticGenerator struct{}

// Caption implements Generator.
func (StaticGenerator) Caption(_ context.Context, req Request) (string, error) {
	text := strings.TrimSpace(req.SourceText)
	if text == "" {
		return "", fmt.Errorf("caption: empty source text")
	}
	titler := cases.Title(language.Make(req.Locale))
	switch req.Kind {
	case "property":
		if headline := req.Context["headline"]; headline != "" {
			return fmt.Sprintf("%s — %s", titler.String(headline), text), nil
		}
	case "review":
		if reviewer := req.Context["reviewer"]; reviewer != "" {
			return fmt.Sprintf("%q — %s", text, titler.String(reviewer)), nil
		}
	}
	return text, nil
}

var _ Generator = StaticGenerator{}
