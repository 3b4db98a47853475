// Package extract reads kata data out of captured Codewars pages.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/inovacc/katasync/internal/model"
)

// ErrEmptyPage is returned for a tab without HTML
var ErrEmptyPage = errors.New("page has no content")

// strategy produces one field from a page; "" means no match.
type strategy func(p *page) string

type page struct {
	doc  *goquery.Document
	path []string
}

// Extractor pulls a model.Solution out of a rendered kata page.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{logger: logger}
}

var (
	slugStrategies = []strategy{
		segmentAfter("kata"),
	}

	languageStrategies = []strategy{
		segmentAfter("train"),
		segmentAfter("solutions"),
		func(p *page) string {
			return strings.ToLower(strings.TrimSpace(p.doc.Find("#language_dd .active").First().Text()))
		},
	}

	titleStrategies = []strategy{
		func(p *page) string {
			return strings.TrimSpace(p.doc.Find("h4.ml-2.mb-3").First().Text())
		},
		func(p *page) string {
			title, _, _ := strings.Cut(p.doc.Find("title").First().Text(), "|")

			return strings.TrimSpace(title)
		},
	}

	rankStrategies = []strategy{
		func(p *page) string {
			badge := p.doc.Find(".inner-small-hex").First()
			if badge.Length() == 0 {
				return ""
			}

			return strings.TrimSpace(strings.Replace(badge.Text(), "kyu", "", 1)) + " kyu"
		},
		func(p *page) string {
			tag := strings.TrimSpace(p.doc.Find("div.tag").First().Text())
			if strings.Contains(tag, "kyu") {
				return tag
			}

			return ""
		},
	}

	codeStrategies = []strategy{
		linesOf(".CodeMirror-code .CodeMirror-line"),
		linesOf(".view-lines .view-line"),
		func(p *page) string {
			return p.doc.Find("textarea#code").First().Text()
		},
	}
)

// Extract parses the tab's HTML. The first strategy that yields a value
// wins for each field.
func (e *Extractor) Extract(_ context.Context, tab *model.Tab) (*model.Solution, error) {
	if tab == nil || strings.TrimSpace(tab.HTML) == "" {
		return nil, ErrEmptyPage
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tab.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	p := &page{doc: doc, path: pathSegments(tab.URL)}

	sol := &model.Solution{
		Slug:     firstOf(p, slugStrategies, model.UnknownSlug),
		Language: firstOf(p, languageStrategies, model.UnknownLanguage),
		Title:    firstOf(p, titleStrategies, ""),
		Rank:     model.NormalizeRank(firstOf(p, rankStrategies, model.UnknownRank)),
		Code:     strings.ReplaceAll(firstOf(p, codeStrategies, ""), "\u200b", ""),
	}

	e.logger.Debug("extracted kata",
		slog.String("slug", sol.Slug),
		slog.String("language", sol.Language),
		slog.String("rank", sol.Rank),
		slog.Int("code_bytes", len(sol.Code)),
	)

	return sol, nil
}

func firstOf(p *page, strategies []strategy, fallback string) string {
	for _, s := range strategies {
		if v := s(p); v != "" {
			return v
		}
	}

	return fallback
}

func segmentAfter(marker string) strategy {
	return func(p *page) string {
		for i, seg := range p.path {
			if seg == marker && i+1 < len(p.path) {
				return p.path[i+1]
			}
		}

		return ""
	}
}

func linesOf(selector string) strategy {
	return func(p *page) string {
		lines := p.doc.Find(selector).Map(func(_ int, s *goquery.Selection) string {
			return s.Text()
		})

		return strings.Join(lines, "\n")
	}
}

func pathSegments(raw string) []string {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}

	var out []string

	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}

	return out
}
